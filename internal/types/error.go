package types

import (
	"fmt"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError builds a 400 error for malformed or empty input.
func ValidationError(message, errorType string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: errorType}
}

// AuthorizationError builds a 403 error for non-admin callers on admin-only paths.
func AuthorizationError(message, errorType string) *CustomError {
	return &CustomError{Code: 403, Message: message, Type: errorType}
}

// NotFoundError builds a 404 error.
func NotFoundError(message, errorType string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: errorType}
}

// ConflictError builds a 409 error for duplicate users and folder collisions.
func ConflictError(message, errorType string) *CustomError {
	return &CustomError{Code: 409, Message: message, Type: errorType}
}

// UpstreamError builds a 502 error for external API failures and malformed responses.
func UpstreamError(message, errorType string) *CustomError {
	return &CustomError{Code: 502, Message: message, Type: errorType}
}
