package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/errors"
)

type routeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRouteRepository(db *DB) repository.RouteRepository {
	return &routeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *routeRepository) Create(ctx context.Context, route *domain.Route, stopIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO routes (id, name, direction)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query, route.ID, route.Name, route.Direction).
		Scan(&route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create route", zap.String("name", route.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}

	linkQuery := `
		INSERT INTO route_stops (route_id, stop_id, position)
		VALUES ($1, $2, $3)
	`
	for i, stopID := range stopIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, route.ID, stopID, i); err != nil {
			r.logger.Error("Failed to link stop to route",
				zap.String("route_id", route.ID.String()),
				zap.String("stop_id", stopID.String()),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit route creation", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	query := `
		SELECT id, name, direction, created_at, updated_at
		FROM routes
		WHERE id = $1
	`

	var route domain.Route
	err := r.db.GetContext(ctx, &route, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrRouteNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get route by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	stops, err := r.stopsForRoutes(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	route.Stops = stops[id]

	return &route, nil
}

func (r *routeRepository) List(ctx context.Context) ([]*domain.Route, error) {
	query := `
		SELECT id, name, direction, created_at, updated_at
		FROM routes
		ORDER BY name
	`

	var routes []*domain.Route
	if err := r.db.SelectContext(ctx, &routes, query); err != nil {
		r.logger.Error("Failed to list routes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	ids := make([]uuid.UUID, 0, len(routes))
	for _, route := range routes {
		ids = append(ids, route.ID)
	}

	stops, err := r.stopsForRoutes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, route := range routes {
		route.Stops = stops[route.ID]
	}

	return routes, nil
}

func (r *routeRepository) ListServingStop(
	ctx context.Context,
	stopID uuid.UUID,
	direction domain.RouteDirection,
) ([]*domain.Route, error) {
	query := `
		SELECT rt.id, rt.name, rt.direction, rt.created_at, rt.updated_at
		FROM routes rt
		JOIN route_stops rs ON rs.route_id = rt.id
		WHERE rs.stop_id = $1 AND rt.direction = $2
		ORDER BY rt.name
	`

	var routes []*domain.Route
	if err := r.db.SelectContext(ctx, &routes, query, stopID, direction); err != nil {
		r.logger.Error("Failed to list routes serving stop",
			zap.String("stop_id", stopID.String()),
			zap.String("direction", string(direction)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	ids := make([]uuid.UUID, 0, len(routes))
	for _, route := range routes {
		ids = append(ids, route.ID)
	}

	stops, err := r.stopsForRoutes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, route := range routes {
		route.Stops = stops[route.ID]
	}

	return routes, nil
}

// stopsForRoutes loads the ordered stop sequence of each route in one query.
func (r *routeRepository) stopsForRoutes(ctx context.Context, routeIDs []uuid.UUID) (map[uuid.UUID][]*domain.Stop, error) {
	result := make(map[uuid.UUID][]*domain.Stop, len(routeIDs))
	if len(routeIDs) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(routeIDs))
	for _, id := range routeIDs {
		ids = append(ids, id.String())
	}

	query := `
		SELECT rs.route_id, s.id, s.name, s.lat, s.lng, s.created_at, s.updated_at
		FROM route_stops rs
		JOIN stops s ON s.id = rs.stop_id
		WHERE rs.route_id = ANY($1)
		ORDER BY rs.route_id, rs.position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load route stops", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var routeID uuid.UUID
		var stop domain.Stop
		if err := rows.Scan(&routeID, &stop.ID, &stop.Name, &stop.Lat, &stop.Lng, &stop.CreatedAt, &stop.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan route stop", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		result[routeID] = append(result[routeID], &stop)
	}

	return result, nil
}
