package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/errors"
)

type scheduleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewScheduleRepository(db *DB) repository.ScheduleRepository {
	return &scheduleRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const scheduleDetailsColumns = `
	sc.id, sc.route_id, sc.bus_id, sc.driver_id, sc.direction,
	sc.service_date, sc.status, sc.created_at, sc.updated_at,
	b.bus_number AS bus_number, b.capacity AS bus_capacity,
	rt.name AS route_name
`

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		INSERT INTO schedules (id, route_id, bus_id, driver_id, direction, service_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		schedule.ID, schedule.RouteID, schedule.BusID, schedule.DriverID,
		schedule.Direction, schedule.ServiceDate, schedule.Status,
	).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		// Partial unique index on open schedules per (bus, day, direction)
		// backs the overlap invariant against concurrent creates.
		if isUniqueViolation(err) {
			return errors.ErrScheduleConflict
		}
		r.logger.Error("Failed to create schedule",
			zap.String("route_id", schedule.RouteID.String()),
			zap.String("bus_id", schedule.BusID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	query := `
		SELECT id, route_id, bus_id, driver_id, direction, service_date, status, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	var schedule domain.Schedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrScheduleNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get schedule by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &schedule, nil
}

func (r *scheduleRepository) GetDetails(ctx context.Context, id uuid.UUID) (*domain.ScheduleDetails, error) {
	query := `
		SELECT ` + scheduleDetailsColumns + `
		FROM schedules sc
		JOIN buses b ON b.id = sc.bus_id
		JOIN routes rt ON rt.id = sc.route_id
		WHERE sc.id = $1
	`

	var details domain.ScheduleDetails
	err := r.db.GetContext(ctx, &details, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrScheduleNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get schedule details", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &details, nil
}

func (r *scheduleRepository) ReassignBus(ctx context.Context, id uuid.UUID, busID uuid.UUID) error {
	query := `
		UPDATE schedules
		SET bus_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, busID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrScheduleConflict
		}
		r.logger.Error("Failed to reassign bus",
			zap.String("schedule_id", id.String()),
			zap.String("bus_id", busID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read rows affected", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrScheduleNotFound
	}

	return nil
}

func (r *scheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ScheduleStatus) error {
	query := `
		UPDATE schedules
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update schedule status",
			zap.String("id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read rows affected", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrScheduleNotFound
	}

	return nil
}

func (r *scheduleRepository) FindOpenForBus(
	ctx context.Context,
	busID uuid.UUID,
	day time.Time,
	direction domain.RouteDirection,
) (*domain.Schedule, error) {
	query := `
		SELECT id, route_id, bus_id, driver_id, direction, service_date, status, created_at, updated_at
		FROM schedules
		WHERE bus_id = $1
		  AND service_date = $2::date
		  AND direction = $3
		  AND status IN ('IDLE', 'ACTIVE')
		LIMIT 1
	`

	var schedule domain.Schedule
	err := r.db.GetContext(ctx, &schedule, query, busID, day, direction)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find open schedule for bus",
			zap.String("bus_id", busID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &schedule, nil
}

func (r *scheduleRepository) FindTodayForDriver(
	ctx context.Context,
	driverID uuid.UUID,
	day time.Time,
) (*domain.ScheduleDetails, error) {
	query := `
		SELECT ` + scheduleDetailsColumns + `
		FROM schedules sc
		JOIN buses b ON b.id = sc.bus_id
		JOIN routes rt ON rt.id = sc.route_id
		WHERE sc.driver_id = $1
		  AND sc.service_date = $2::date
		  AND sc.status IN ('IDLE', 'ACTIVE')
		LIMIT 1
	`

	var details domain.ScheduleDetails
	err := r.db.GetContext(ctx, &details, query, driverID, day)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find today's schedule for driver",
			zap.String("driver_id", driverID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &details, nil
}

func (r *scheduleRepository) ListActive(ctx context.Context) ([]*domain.ScheduleDetails, error) {
	query := `
		SELECT ` + scheduleDetailsColumns + `
		FROM schedules sc
		JOIN buses b ON b.id = sc.bus_id
		JOIN routes rt ON rt.id = sc.route_id
		WHERE sc.status = 'ACTIVE'
	`

	var details []*domain.ScheduleDetails
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		r.logger.Error("Failed to list active schedules", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return details, nil
}

func (r *scheduleRepository) ListForStopOnDate(
	ctx context.Context,
	stopID uuid.UUID,
	day time.Time,
	direction domain.RouteDirection,
) ([]*domain.ScheduleDetails, error) {
	query := `
		SELECT ` + scheduleDetailsColumns + `
		FROM schedules sc
		JOIN buses b ON b.id = sc.bus_id
		JOIN routes rt ON rt.id = sc.route_id
		JOIN route_stops rs ON rs.route_id = rt.id
		WHERE rs.stop_id = $1
		  AND sc.service_date = $2::date
		  AND sc.direction = $3
		  AND sc.status IN ('IDLE', 'ACTIVE')
		ORDER BY b.bus_number
	`

	var details []*domain.ScheduleDetails
	if err := r.db.SelectContext(ctx, &details, query, stopID, day, direction); err != nil {
		r.logger.Error("Failed to list schedules for stop",
			zap.String("stop_id", stopID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return details, nil
}
