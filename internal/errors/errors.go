package errors

import (
	"fmt"
)

// SeekerError is the structured error type for Star-Seeker.
// It provides context for error handling, logging, and user presentation.
type SeekerError struct {
	// Code is the unique error code (e.g., "ERR_302_GITHUB_API").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *SeekerError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SeekerError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with SeekerError.
func (e *SeekerError) Is(target error) bool {
	if t, ok := target.(*SeekerError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SeekerError) WithDetail(key, value string) *SeekerError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *SeekerError) WithSuggestion(suggestion string) *SeekerError {
	e.Suggestion = suggestion
	return e
}

// New creates a new SeekerError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *SeekerError {
	return &SeekerError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a SeekerError from an existing error.
// The error's message becomes the SeekerError message.
func Wrap(code string, err error) *SeekerError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SeekerError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *SeekerError {
	return New(ErrCodeFileNotFound, message, cause)
}

// NetworkError creates a network-related error.
func NetworkError(message string, cause error) *SeekerError {
	return New(ErrCodeNetworkTimeout, message, cause)
}

// ProviderError creates an embedding-provider error.
// Provider failures downgrade the session, they never abort it.
func ProviderError(message string, cause error) *SeekerError {
	return New(ErrCodeProviderFailure, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *SeekerError {
	return New(ErrCodeInvalidInput, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a SeekerError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*SeekerError); ok {
		return se.Retryable
	}
	return false
}

// GetCode extracts the error code from a SeekerError.
// Returns empty string if not a SeekerError.
func GetCode(err error) string {
	if se, ok := err.(*SeekerError); ok {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from a SeekerError.
// Returns empty string if not a SeekerError.
func GetCategory(err error) Category {
	if se, ok := err.(*SeekerError); ok {
		return se.Category
	}
	return ""
}
