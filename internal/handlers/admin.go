package handlers

import (
	"context"
	"time"

	"github.com/denotehq/denote/internal/middleware"
	"github.com/denotehq/denote/internal/secrets"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles admin-only routes. Routes are additionally gated by
// middleware.RequireAdmin; the services re-check the caller's role so the
// authorization holds even for direct service use.
type AdminHandler struct {
	DB        *gorm.DB
	Secrets   *secrets.Store
	Generator services.TextGenerator
}

// ListUsers handles GET /api/admin/users
// @Summary List users
// @Tags Admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB, middleware.CallerEmail(c))
	if err != nil {
		return respondError(c, err, "listUsers")
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// AddUser handles POST /api/admin/users
// @Summary Add a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body object true "New user email"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/users [post]
func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "admin.users.validation")
	}

	caller := middleware.CallerEmail(c)

	user, err := services.AddUser(h.DB, caller, body.Email)
	if err != nil {
		return respondError(c, err, "addUser")
	}

	services.LogActivity(h.DB, services.ActivityInput{
		UserEmail:    caller,
		ActivityType: services.ActivityAddUser,
		Details:      "Added user " + user.Email,
	})

	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// GetSettings handles GET /api/admin/settings
// @Summary Get system settings
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := services.GetSettings(h.DB, middleware.CallerEmail(c))
	if err != nil {
		return respondError(c, err, "getSettings")
	}
	return utils.SuccessResponse(c, settings, fiber.StatusOK)
}

// UpdateSetting handles PUT /api/admin/settings/:name
// @Summary Update a system setting
// @Description Update one setting; reserved API-key names go to the secret store
// @Tags Admin
// @Accept json
// @Produce json
// @Param name path string true "Setting name"
// @Param body body object true "New value"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/settings/{name} [put]
func (h *AdminHandler) UpdateSetting(c *fiber.Ctx) error {
	name := c.Params("name")

	var body struct {
		Value string `json:"value"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "admin.settings.validation")
	}

	caller := middleware.CallerEmail(c)

	if err := services.UpdateSetting(h.DB, h.Secrets, caller, name, body.Value); err != nil {
		return respondError(c, err, "updateSetting")
	}

	services.LogActivity(h.DB, services.ActivityInput{
		UserEmail:    caller,
		ActivityType: services.ActivityUpdateSetting,
		Details:      "Updated setting " + name,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":        true,
		"message":   name + " updated.",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// RunDailyAnalysis handles POST /api/admin/reports/run
// @Summary Trigger the daily coaching analysis
// @Description Run the daily coaching report batch outside its schedule
// @Tags Admin
// @Produce json
// @Success 202 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/reports/run [post]
func (h *AdminHandler) RunDailyAnalysis(c *fiber.Ctx) error {
	// The batch can take minutes with many users; detach it from the
	// request lifetime.
	go services.RunDailyAnalysis(context.Background(), h.DB, h.Generator)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"ok":        true,
		"message":   "Daily analysis started",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
