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

type stopRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStopRepository(db *DB) repository.StopRepository {
	return &stopRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *stopRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stop, error) {
	query := `
		SELECT id, name, lat, lng, created_at, updated_at
		FROM stops
		WHERE id = $1
	`

	var stop domain.Stop
	err := r.db.GetContext(ctx, &stop, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrStopNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get stop by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &stop, nil
}

func (r *stopRepository) List(ctx context.Context) ([]*domain.Stop, error) {
	query := `
		SELECT id, name, lat, lng, created_at, updated_at
		FROM stops
		ORDER BY name
	`

	var stops []*domain.Stop
	if err := r.db.SelectContext(ctx, &stops, query); err != nil {
		r.logger.Error("Failed to list stops", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stops, nil
}
