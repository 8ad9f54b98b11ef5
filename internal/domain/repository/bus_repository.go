package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/domain"
)

// BusRepository manages the fleet reference data.
type BusRepository interface {
	// Create inserts a bus; duplicate bus numbers fail with ErrDuplicateBus.
	Create(ctx context.Context, bus *domain.Bus) error

	// GetByID returns the bus or ErrBusNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bus, error)

	// GetByNumber returns the bus with the given display number or ErrBusNotFound.
	GetByNumber(ctx context.Context, busNumber string) (*domain.Bus, error)

	// List returns the whole fleet ordered by bus number.
	List(ctx context.Context) ([]*domain.Bus, error)

	// UpdateStatus moves the bus between IDLE/ACTIVE/MAINTENANCE.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BusStatus) error
}
