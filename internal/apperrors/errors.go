package apperrors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
	ErrorTypeDecoding          ErrorType = "decoding"
	ErrorTypeEmptyInput        ErrorType = "empty_input"
	ErrorTypeEmptyContent      ErrorType = "empty_content"
	ErrorTypeParse             ErrorType = "parse"
	ErrorTypeEngine            ErrorType = "engine"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeNetwork           ErrorType = "network"
	ErrorTypeTimeout           ErrorType = "timeout"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeInternal          ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewUnsupportedFormatError reports a rejected file extension along with the
// accepted set.
func NewUnsupportedFormatError(message string, allowed []string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedFormat,
		Message:    message,
		Details:    fmt.Sprintf("supported formats: %v", allowed),
		StatusCode: http.StatusBadRequest,
	}
}

// NewDecodingError reports that no supported character encoding could decode
// the payload.
func NewDecodingError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecoding,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewEmptyInputError reports empty or whitespace-only analyzer input.
func NewEmptyInputError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeEmptyInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewEmptyContentError reports that extraction stripped away all content.
func NewEmptyContentError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeEmptyContent,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewParseError reports a malformed container such as a corrupt EPUB archive.
func NewParseError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeParse,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewEngineError reports an OCR engine or cloud provider failure.
func NewEngineError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeEngine,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
