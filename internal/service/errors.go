package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"project-config-api/internal/domain"
	"project-config-api/internal/repository"
	"project-config-api/internal/response"
	"project-config-api/internal/wizard"
)

func errConfigurationLocked(id string) *response.AppError {
	return response.NewAppError(response.ErrCodeConfigurationLocked, "Configuration is locked", id)
}

func errConfigurationNotFound(id string) *response.AppError {
	return response.NewNotFoundError("Configuration not found", id)
}

func errMissingStandards(missing []domain.Category) *response.AppError {
	names := make([]string, 0, len(missing))
	for _, c := range missing {
		names = append(names, c.Name)
	}
	return response.NewAppError(response.ErrCodeMissingStandardSelection,
		"A standard item must be selected in every category that offers one",
		strings.Join(names, ", "))
}

// toAppError converts repository and wizard errors into AppErrors.
// action completes the internal error message, e.g. "save configuration".
func toAppError(err error, id string, action string) error {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *wizard.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return response.NewValidationError(validationErr.Message, validationErr.Field)
	case errors.Is(err, repository.ErrConfigurationLocked), errors.Is(err, wizard.ErrConfigurationLocked):
		return errConfigurationLocked(id)
	case errors.Is(err, repository.ErrVersionConflict):
		return response.NewAppError(response.ErrCodeVersionConflict, "Configuration was changed by another session", id)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errConfigurationNotFound(id)
	default:
		return response.NewAppError(response.ErrCodeInternal, "Failed to "+action, err.Error())
	}
}
