package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/domain"
)

// ScheduleRepository manages bus/route assignments.
type ScheduleRepository interface {
	// Create inserts a schedule. The caller checks the overlap invariant
	// first; the repository enforces it again with a partial unique index.
	Create(ctx context.Context, schedule *domain.Schedule) error

	// GetByID returns the schedule or ErrScheduleNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)

	// GetDetails returns the schedule joined with bus and route data.
	GetDetails(ctx context.Context, id uuid.UUID) (*domain.ScheduleDetails, error)

	// ReassignBus points an existing schedule slot at a different bus.
	ReassignBus(ctx context.Context, id uuid.UUID, busID uuid.UUID) error

	// UpdateStatus transitions the schedule lifecycle state.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ScheduleStatus) error

	// FindOpenForBus returns the bus's open (IDLE or ACTIVE) schedule on the
	// given day and direction, or nil when the slot is free.
	FindOpenForBus(ctx context.Context, busID uuid.UUID, day time.Time, direction domain.RouteDirection) (*domain.Schedule, error)

	// FindTodayForDriver returns the driver's schedule for the current day,
	// or nil when none is assigned.
	FindTodayForDriver(ctx context.Context, driverID uuid.UUID, day time.Time) (*domain.ScheduleDetails, error)

	// ListActive returns all ACTIVE schedules with bus and route data.
	ListActive(ctx context.Context) ([]*domain.ScheduleDetails, error)

	// ListForStopOnDate returns schedules of the given direction whose route
	// serves the stop on the given service date.
	ListForStopOnDate(ctx context.Context, stopID uuid.UUID, day time.Time, direction domain.RouteDirection) ([]*domain.ScheduleDetails, error)
}
