package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeValidation               = "VALIDATION_ERROR"
	ErrCodeNotFound                 = "NOT_FOUND"
	ErrCodeInternal                 = "INTERNAL_ERROR"
	ErrCodeConfigurationLocked      = "CONFIGURATION_LOCKED"
	ErrCodeMissingStandardSelection = "MISSING_STANDARD_SELECTION"
	ErrCodeVersionConflict          = "VERSION_CONFLICT"
)

// RequestIDHeader carries the caller's request id, echoed back in every body
const RequestIDHeader = "X-Request-ID"

// AppError is an error with a stable code the handlers map to an HTTP status
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation AppError
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewNotFoundError creates a not-found AppError
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId"`
}

// ErrorDetail is the error part of an ErrorResponse
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse wraps every error payload
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"requestId"`
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader(RequestIDHeader); id != "" {
		return id
	}
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()
}

// SendSuccess writes data wrapped in a SuccessResponse
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data, RequestID: requestID(c)})
}

// SendError writes an ErrorResponse
func SendError(c *gin.Context, status int, code, message string) {
	SendErrorWithDetails(c, status, code, message, "")
}

// SendErrorWithDetails writes an ErrorResponse carrying details
func SendErrorWithDetails(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     ErrorDetail{Code: code, Message: message, Details: details},
		RequestID: requestID(c),
	})
}
