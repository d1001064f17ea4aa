package handlers

import (
	"strings"
	"time"

	"github.com/denotehq/denote/internal/gateway"
	"github.com/denotehq/denote/internal/middleware"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/types"
	"github.com/denotehq/denote/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ChatHandler handles the AI chat route
type ChatHandler struct {
	DB      *gorm.DB
	Gateway *gateway.Gateway
}

// ProcessPrompt handles POST /api/chat
// @Summary Process a chat message
// @Description Send a prompt to the AI assistant, optionally augmented with web search
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body object true "User prompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /chat [post]
func (h *ChatHandler) ProcessPrompt(c *fiber.Ctx) error {
	var body struct {
		UserPrompt   string         `json:"userPrompt"`
		ProjectID    string         `json:"projectId"`
		SearchOnline types.FlexBool `json:"searchOnline"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "chat.validation.input")
	}

	if strings.TrimSpace(body.UserPrompt) == "" {
		return utils.ErrorResponse(c, "Prompt cannot be empty", fiber.StatusBadRequest, "chat.validation.input")
	}

	caller := middleware.CallerEmail(c)

	// Failures inside the gateway surface as degraded text, never as an
	// error, so the chat endpoint always answers 200.
	result := h.Gateway.ProcessUserPrompt(c.Context(), gateway.PromptRequest{
		UserPrompt:   body.UserPrompt,
		SearchOnline: body.SearchOnline.Bool(),
	})

	services.LogActivity(h.DB, services.ActivityInput{
		UserEmail:    caller,
		ProjectID:    body.ProjectID,
		ActivityType: services.ActivityChatMessage,
		Details: map[string]interface{}{
			"prompt":       body.UserPrompt,
			"searchOnline": body.SearchOnline.Bool(),
		},
		APICallCount:  result.APICalls,
		APITokenCount: result.TokenCount,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":        true,
		"response":  result.Text,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
