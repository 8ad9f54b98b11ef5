package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/usecase"
)

const (
	// Locals keys set by RequireAuth for downstream handlers.
	LocalUserID = "userID"
	LocalRole   = "role"
)

// RequireAuth validates the bearer token and stores the caller's identity.
func RequireAuth(authUC *usecase.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, err := authUC.ParseToken(token)
		if err != nil {
			return utils.SendError(c, err)
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RequireRole gates a route group on the caller's role. Must run after
// RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return utils.SendError(c, errors.ErrForbidden)
	}
}

// UserID extracts the authenticated caller's id from request locals.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalUserID).(uuid.UUID)
	return id, ok
}
