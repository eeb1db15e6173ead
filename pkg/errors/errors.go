package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an absent entity.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFound creates a new not found error.
func NewNotFound(resource, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: message}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError represents a uniqueness violation, such as a duplicate email.
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflict creates a new conflict error.
func NewConflict(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// ValidationError represents a validation failure with field-level details.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidation creates a new validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// UpstreamError represents a failed call to a peer service.
type UpstreamError struct {
	Message string
	Err     error
}

// NewUpstream creates a new upstream error.
func NewUpstream(message string, err error) *UpstreamError {
	return &UpstreamError{Message: message, Err: err}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InternalError represents an unexpected failure with context.
type InternalError struct {
	Message string
	Err     error
}

// NewInternal creates a new internal error.
func NewInternal(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
