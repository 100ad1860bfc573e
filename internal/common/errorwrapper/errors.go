package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrExternalTool indicates a media-tool subprocess failure
	ErrExternalTool = errors.New("external tool failure")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ExternalToolError represents a failed media-tool subprocess invocation.
// ChunkIndex is -1 when the failure is not tied to a specific diff chunk.
type ExternalToolError struct {
	Tool       string
	Operation  string
	Video      string
	ChunkIndex int
	Stderr     string
	Wrapped    error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Tool, e.Operation)
	if e.Video != "" {
		msg += fmt.Sprintf(" for '%s'", e.Video)
	}
	if e.ChunkIndex >= 0 {
		msg += fmt.Sprintf(" (chunk %d)", e.ChunkIndex)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error {
	return e.Wrapped
}

// NewExternalToolError creates a new external tool error
func NewExternalToolError(tool, operation, video string, wrapped error) *ExternalToolError {
	return &ExternalToolError{
		Tool:       tool,
		Operation:  operation,
		Video:      video,
		ChunkIndex: -1,
		Wrapped:    wrapped,
	}
}

// WithChunkIndex attaches the failing chunk index to the error
func (e *ExternalToolError) WithChunkIndex(index int) *ExternalToolError {
	e.ChunkIndex = index
	return e
}

// WithStderr attaches captured subprocess stderr to the error
func (e *ExternalToolError) WithStderr(stderr string) *ExternalToolError {
	e.Stderr = stderr
	return e
}
