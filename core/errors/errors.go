// Package errors provides standardized error types and helpers for the CedarFabric codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// UnknownBookError reports a book label that matched no canonical name or
// alias after normalization. Input carries the original, pre-normalization
// string for diagnostics. There is no fuzzy-match recovery: an unrecognized
// label always surfaces as this error.
type UnknownBookError struct {
	Input string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book name: %q", e.Input)
}

func (e *UnknownBookError) Unwrap() error {
	return ErrNotFound
}

// ReferenceError reports a numeric reference field (chapter, verse,
// end-verse) that violated its positivity or ordering constraint.
type ReferenceError struct {
	Field   string // Field that failed validation (e.g., "chapter", "verse")
	Value   int    // Value that failed validation
	Message string // Human-readable error message
}

func (e *ReferenceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid reference: %s %d: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid reference: %s %d", e.Field, e.Value)
}

func (e *ReferenceError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "dataset", "feature", "node")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "fetch")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "reference", "OSIS", "notebook")
	Input   string // Offending input, if short enough to carry
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need to import both this package and the
// standard errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
