package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/domain"
)

// RouteRepository manages routes and their ordered stop sequences.
type RouteRepository interface {
	// Create inserts a route together with its ordered stop links, atomically.
	Create(ctx context.Context, route *domain.Route, stopIDs []uuid.UUID) error

	// GetByID returns the route with stops in sequence order, or ErrRouteNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)

	// List returns all routes with their stops, ordered by name.
	List(ctx context.Context) ([]*domain.Route, error)

	// ListServingStop returns routes of the given direction that pass through the stop.
	ListServingStop(ctx context.Context, stopID uuid.UUID, direction domain.RouteDirection) ([]*domain.Route, error)
}

// StopRepository manages the named pickup/drop-off points.
type StopRepository interface {
	// GetByID returns the stop or ErrStopNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Stop, error)

	// List returns all known stops.
	List(ctx context.Context) ([]*domain.Stop, error)
}
