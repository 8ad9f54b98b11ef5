package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/domain"
)

type UserRepository interface {
	// Create inserts a user; duplicate emails fail with ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail returns the user or ErrInvalidCredentials.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID returns the user or ErrUnauthorized.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
