package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/authorizerdev/authorizer-go"
	"github.com/denotehq/denote/internal/config"
	"github.com/denotehq/denote/internal/utils"
	"go.uber.org/zap"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingService(cfg.AuthzURL, 1500*time.Millisecond); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		zap.L().Info("initializing authorizer",
			zap.String("authorizerURL", cfg.AuthzURL),
			zap.String("clientID", cfg.AuthzClientID),
			zap.String("redirectURL", redirectURL))

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie and returns the caller's email.
func ValidateSession(cookie string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("authorizer client not initialized")
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid {
		return "", fmt.Errorf("session is not valid")
	}
	if res.User.Email == "" {
		return "", fmt.Errorf("session has no email identity")
	}

	return res.User.Email, nil
}
