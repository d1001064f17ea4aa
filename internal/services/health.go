package services

import (
	"fmt"

	"github.com/denotehq/denote/internal/config"
	"github.com/denotehq/denote/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	AIEndpoint   string            `json:"aiEndpoint"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		zap.L().Warn("health check failed - database connection", zap.Error(err))
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			zap.L().Warn("health check failed - database ping", zap.Error(err))
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check generative model endpoint connectivity
	if err := utils.PingGenerateEndpoint(cfg.GenerateURL); err != nil {
		result.Status = "unhealthy"
		result.AIEndpoint = "unreachable"
		result.Details["ai_endpoint_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("AI endpoint ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; AI endpoint ping failed: %v", err)
		}
		zap.L().Warn("health check failed - AI endpoint ping", zap.Error(err))
	} else {
		result.AIEndpoint = "ok"
		result.Details["ai_endpoint_url"] = cfg.GenerateURL
	}

	return result
}
