package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/denotehq/denote/web"
)

const appTitle = "DeNote"

// PageHandler serves the embedded web page.
type PageHandler struct{}

// GetIndex handles GET /
// @Summary Serve the application page
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *PageHandler) GetIndex(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := web.RenderIndex(&buf, fiber.Map{"Title": appTitle}); err != nil {
		zap.L().Error("index page render", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "page unavailable")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
