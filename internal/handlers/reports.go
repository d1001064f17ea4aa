package handlers

import (
	"github.com/denotehq/denote/internal/middleware"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportHandler handles coaching report routes
type ReportHandler struct {
	DB *gorm.DB
}

// GetLatestReport handles GET /api/reports/latest
// @Summary Get the latest coaching report
// @Description Get the caller's most recent daily coaching report
// @Tags Reports
// @Produce json
// @Success 200 {object} services.ReportResult
// @Router /reports/latest [get]
func (h *ReportHandler) GetLatestReport(c *fiber.Ctx) error {
	// LatestReport never fails; missing data and internal failures both
	// come back as a not-found result with a message.
	result := services.LatestReport(h.DB, middleware.CallerEmail(c))
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
