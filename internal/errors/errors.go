package errors

import (
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType int

const (
	ErrorTypeConfig ErrorType = iota
	ErrorTypeValidation
	ErrorTypePersistence
	ErrorTypeCorrupt
	ErrorTypeInit
	ErrorTypeLaunch
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypePersistence:
		return "persistence"
	case ErrorTypeCorrupt:
		return "corrupt"
	case ErrorTypeInit:
		return "init"
	case ErrorTypeLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err wraps an *AppError of the given type.
func IsType(err error, et ErrorType) bool {
	for err != nil {
		if ae, ok := err.(*AppError); ok && ae.Type == et {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(operation, path, message string) *AppError {
	return &AppError{
		Type:      ErrorTypeValidation,
		Operation: operation,
		Path:      path,
		Message:   message,
	}
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypePersistence,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewCorruptError creates a new corrupt-state error
func NewCorruptError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeCorrupt,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewInitError creates a new initialization error
func NewInitError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeInit,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewLaunchError creates a new launch error
func NewLaunchError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeLaunch,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}
