package middleware

import (
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireAdmin rejects callers whose directory row does not carry the Admin
// role. Must run after Identity.
func RequireAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerEmail(c)
		if caller == "" {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "No caller identity",
				Type:    "admin.authorization",
			}
		}

		ok, err := services.IsAdmin(db, caller)
		if err != nil {
			return err
		}
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Only admins can perform this operation.",
				Type:    "admin.authorization",
			}
		}

		return c.Next()
	}
}
