package repository

import "errors"

var (
	// ErrConfigurationLocked is returned when a write hits a locked configuration
	ErrConfigurationLocked = errors.New("configuration is locked")
	// ErrVersionConflict is returned when the stored version differs from the expected one
	ErrVersionConflict = errors.New("configuration version conflict")
)
