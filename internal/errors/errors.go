package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error raised by handlers
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes one rejected request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

var (
	ErrInvalidRequest    = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed  = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrNotFound          = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrPayloadTooLarge   = New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body exceeds maximum allowed size")
	ErrInternalServer    = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// InvalidRequestWithError creates an invalid request error carrying the decode failure
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// NewValidationErrors creates a validation error listing every rejected field
func NewValidationErrors(errs []ValidationError) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", errs)
}

// ErrPanic creates a panic recovery error
func ErrPanic(rec interface{}) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error",
		fmt.Sprintf("%v", rec))
}
