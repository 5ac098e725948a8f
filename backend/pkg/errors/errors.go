package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed input rejected before any store is touched
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents a referenced entity that does not exist
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeMirror represents a graph mirror write/delete failure
	ErrorTypeMirror ErrorType = "mirror"
	// ErrorTypeUpstream represents a graph store read failure
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeStore represents a relational store failure
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// errorType is promoted into every error embedding BaseError, so IsErrorType
// sees through the concrete wrapper types.
func (e *BaseError) errorType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrSelfFollow is returned when a user attempts to follow themselves
var ErrSelfFollow = NewBaseError(ErrorTypeValidation, "users cannot follow themselves", nil)

// ErrInvalidHashtag is returned when a hashtag fails syntactic validation
type ErrInvalidHashtag struct {
	*BaseError
	Tag string
}

func NewInvalidHashtag(tag string) *ErrInvalidHashtag {
	return &ErrInvalidHashtag{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid hashtag: %s", tag), nil),
		Tag:       tag,
	}
}

// ErrInvalidUserID is returned when an identifier is not a well-formed UUID
type ErrInvalidUserID struct {
	*BaseError
	ID string
}

func NewInvalidUserID(id string) *ErrInvalidUserID {
	return &ErrInvalidUserID{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid user id: %s", id), nil),
		ID:        id,
	}
}

// Upstream Errors

// ErrGraphQueryFailed is returned when a graph store read fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeUpstream, fmt.Sprintf("graph query failed: %s", operation), err),
		Operation: operation,
	}
}

// Mirror Errors

// ErrMirrorWriteFailed is returned at the mirror boundary; it is logged there
// and never propagated to the primary operation's caller.
type ErrMirrorWriteFailed struct {
	*BaseError
	Operation string
}

func NewMirrorWriteFailed(operation string, err error) *ErrMirrorWriteFailed {
	return &ErrMirrorWriteFailed{
		BaseError: NewBaseError(ErrorTypeMirror, fmt.Sprintf("mirror write failed: %s", operation), err),
		Operation: operation,
	}
}

// Store Errors

// ErrStoreQueryFailed is returned when a relational store operation fails
type ErrStoreQueryFailed struct {
	*BaseError
	Operation string
}

func NewStoreQueryFailed(operation string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store query failed: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing.
// There is no safe fallback, so it always propagates.
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if typed, ok := err.(interface{ errorType() ErrorType }); ok {
		return typed.errorType() == errType
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		inner := wrapped.Unwrap()
		if inner == nil {
			return false
		}
		return IsErrorType(inner, errType)
	}
	return false
}
