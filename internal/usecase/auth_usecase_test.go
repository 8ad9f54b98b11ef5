package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/usecase"
	"github.com/campus-commute-service/internal/usecase/dto"
)

const testSecret = "test-secret"

func userFixture(t *testing.T, password string, role domain.UserRole) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "driver@campus.edu",
		PasswordHash: string(hash),
		FullName:     "Test Driver",
		Role:         role,
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a parseable token", func(t *testing.T) {
		user := userFixture(t, "secret123", domain.RoleDriver)

		mockUsers := &MockUserRepository{}
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil)

		uc := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), testSecret, time.Hour)

		resp, err := uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "DRIVER", resp.Role)
		require.NotEmpty(t, resp.AccessToken)

		claims, err := uc.ParseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.Equal(t, "DRIVER", claims.Role)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		user := userFixture(t, "secret123", domain.RoleStudent)

		mockUsers := &MockUserRepository{}
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil)

		uc := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), testSecret, time.Hour)

		_, err := uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockUsers.On("GetByEmail", ctx, "nobody@campus.edu").Return(nil, errors.ErrInvalidCredentials)

		uc := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), testSecret, time.Hour)

		_, err := uc.Login(ctx, dto.LoginRequest{Email: "nobody@campus.edu", Password: "secret123"})
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})
}

func TestAuthUseCase_ParseToken(t *testing.T) {
	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		user := userFixture(t, "secret123", domain.RoleAdmin)

		mockUsers := &MockUserRepository{}
		mockUsers.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		issuer := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), "other-secret", time.Hour)
		resp, err := issuer.Login(context.Background(), dto.LoginRequest{
			Email: user.Email, Password: "secret123",
		})
		require.NoError(t, err)

		verifier := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), testSecret, time.Hour)
		_, err = verifier.ParseToken(resp.AccessToken)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(&MockUserRepository{}, zap.NewNop(), testSecret, time.Hour)
		_, err := uc.ParseToken("not.a.jwt")
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
	})
}

func TestAuthUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hash, never the raw password", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@campus.edu" &&
				u.Role == domain.RoleStudent &&
				u.PasswordHash != "secret123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
		})).Return(nil)

		uc := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), testSecret, time.Hour)

		user, err := uc.Register(ctx, dto.RegisterRequest{
			Email:    "new@campus.edu",
			Password: "secret123",
			FullName: "New Student",
			Role:     "STUDENT",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@campus.edu", user.Email)
		mockUsers.AssertExpectations(t)
	})

	t.Run("duplicate email surfaces the conflict", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		mockUsers.On("Create", ctx, mock.Anything).Return(errors.ErrDuplicateEmail)

		uc := usecase.NewAuthUseCase(mockUsers, zap.NewNop(), testSecret, time.Hour)

		_, err := uc.Register(ctx, dto.RegisterRequest{
			Email:    "dup@campus.edu",
			Password: "secret123",
			FullName: "Dup",
			Role:     "STUDENT",
		})
		assert.ErrorIs(t, err, errors.ErrDuplicateEmail)
	})
}
