package middleware

import (
	"fmt"
	"strings"

	"github.com/denotehq/denote/internal/config"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/types"
	"github.com/gofiber/fiber/v2"
)

// Header set by the fronting auth proxy when Authorizer is not configured.
const trustedEmailHeader = "X-Auth-Request-Email"

// LocalsUserEmail is the fiber.Ctx Locals key holding the caller's email.
const LocalsUserEmail = "userEmail"

// Identity resolves the caller's email for every request and stores it in
// the request context. Identity comes from a validated Authorizer session
// cookie when AUTHZ_URL is configured, otherwise from the trusted header set
// by the fronting auth proxy. Requests without identity are rejected; no
// handler runs anonymously.
func Identity(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := resolveEmail(cfg, c)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: err.Error(),
				Type:    "identity.unresolved",
			}
		}

		c.Locals(LocalsUserEmail, email)
		return c.Next()
	}
}

func resolveEmail(cfg *config.Config, c *fiber.Ctx) (string, error) {
	if cfg.AuthzURL != "" {
		// Authorizer initialization is deferred to the first request so the
		// redirect URL can be derived from the request itself.
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				return "", fmt.Errorf("authorizer unavailable: %v", err)
			}
		}

		session := c.Cookies("cookie_session")
		if session == "" {
			return "", fmt.Errorf("session cookie %q not found", "cookie_session")
		}

		email, err := services.ValidateSession(session)
		if err != nil {
			return "", fmt.Errorf("invalid session: %v", err)
		}
		return email, nil
	}

	email := strings.TrimSpace(c.Get(trustedEmailHeader))
	if email == "" {
		return "", fmt.Errorf("no caller identity: header %q is empty", trustedEmailHeader)
	}
	return email, nil
}

// CallerEmail returns the email resolved by Identity for this request.
func CallerEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(LocalsUserEmail).(string); ok {
		return email
	}
	return ""
}
