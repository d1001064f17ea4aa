package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/denotehq/denote/internal/middleware"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/utils"
)

// ProfileHandler handles the caller profile route.
type ProfileHandler struct {
	DB *gorm.DB
}

// GetProfile handles GET /api/profile
// @Summary Get the caller's profile
// @Description Get the caller's directory row, creating it on first access
// @Tags Profile
// @Produce json
// @Success 200 {object} models.User
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	user, err := services.GetUserProfile(h.DB, middleware.CallerEmail(c))
	if err != nil {
		return respondError(c, err, "getProfile")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
