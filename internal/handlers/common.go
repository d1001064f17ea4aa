package handlers

import (
	"errors"

	"github.com/denotehq/denote/internal/types"
	"github.com/denotehq/denote/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the standard error envelope.
// CustomError carries its own status code and type; anything else is a 500.
func respondError(c *fiber.Ctx, err error, fallbackType string) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, fallbackType)
}
