package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"project-config-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses.
// The error is attached to the context so the request logger records it.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		details := appErr.Details
		// internal details stay in the log
		if status == http.StatusInternalServerError {
			details = ""
		}
		response.SendErrorWithDetails(c, status, appErr.Code, appErr.Message, details)
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeVersionConflict:
		return http.StatusConflict
	case response.ErrCodeMissingStandardSelection:
		return http.StatusUnprocessableEntity
	case response.ErrCodeConfigurationLocked:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}
