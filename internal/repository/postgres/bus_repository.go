package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/errors"
)

type busRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBusRepository(db *DB) repository.BusRepository {
	return &busRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *busRepository) Create(ctx context.Context, bus *domain.Bus) error {
	query := `
		INSERT INTO buses (id, bus_number, capacity, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, bus.ID, bus.BusNumber, bus.Capacity, bus.Status).
		Scan(&bus.CreatedAt, &bus.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicateBus
		}
		r.logger.Error("Failed to create bus", zap.String("bus_number", bus.BusNumber), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *busRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bus, error) {
	query := `
		SELECT id, bus_number, capacity, status, created_at, updated_at
		FROM buses
		WHERE id = $1
	`

	var bus domain.Bus
	err := r.db.GetContext(ctx, &bus, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBusNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get bus by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &bus, nil
}

func (r *busRepository) GetByNumber(ctx context.Context, busNumber string) (*domain.Bus, error) {
	query := `
		SELECT id, bus_number, capacity, status, created_at, updated_at
		FROM buses
		WHERE bus_number = $1
	`

	var bus domain.Bus
	err := r.db.GetContext(ctx, &bus, query, busNumber)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBusNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get bus by number", zap.String("bus_number", busNumber), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &bus, nil
}

func (r *busRepository) List(ctx context.Context) ([]*domain.Bus, error) {
	query := `
		SELECT id, bus_number, capacity, status, created_at, updated_at
		FROM buses
		ORDER BY bus_number
	`

	var buses []*domain.Bus
	if err := r.db.SelectContext(ctx, &buses, query); err != nil {
		r.logger.Error("Failed to list buses", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return buses, nil
}

func (r *busRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BusStatus) error {
	query := `
		UPDATE buses
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update bus status",
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
		return errors.ErrBusNotFound
	}

	return nil
}
