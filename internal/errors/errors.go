package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType identifies which pipeline stage produced an error.
type ErrorType string

const (
	ErrTypeDataLoad   ErrorType = "DATA_LOAD"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeEmptyInput ErrorType = "EMPTY_INPUT"
	ErrTypeWrite      ErrorType = "WRITE"
	ErrTypeRender     ErrorType = "RENDER"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper constructors for each stage's error kind

// NewDataLoadError reports a source file that is missing, unreadable,
// malformed, or containing null/missing values.
func NewDataLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataLoad, message, cause)
}

// NewSchemaError reports a required column that is absent or unusable.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewEmptyInputError reports a table with zero data rows.
func NewEmptyInputError(message string) *AppError {
	return NewAppError(ErrTypeEmptyInput, message, nil)
}

// NewWriteError reports a failure persisting the summary table.
func NewWriteError(message string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, message, cause)
}

// NewRenderError reports a failure producing or saving the chart image.
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Predicates so callers can branch on error kind without string inspection.

func IsDataLoadError(err error) bool   { return IsType(err, ErrTypeDataLoad) }
func IsSchemaError(err error) bool     { return IsType(err, ErrTypeSchema) }
func IsEmptyInputError(err error) bool { return IsType(err, ErrTypeEmptyInput) }
func IsWriteError(err error) bool      { return IsType(err, ErrTypeWrite) }
func IsRenderError(err error) bool     { return IsType(err, ErrTypeRender) }
