package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrReferentialGap reports a foreign key (customer, technician, job, item)
	// that does not resolve to an existing entity.
	ErrReferentialGap = errors.New("referential gap")

	// ErrRecompute reports that a stale view could not be refreshed because
	// a store read failed.
	ErrRecompute = errors.New("view recompute failed")

	// ErrCompoundWrite reports that the paired usage-record create and stock
	// decrement could not both be committed.
	ErrCompoundWrite = errors.New("compound write failed")

	// ErrUnknownView reports a view key that has no registered computation.
	ErrUnknownView = errors.New("unknown view")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ReferenceError identifies which foreign key failed to resolve.
type ReferenceError struct {
	Kind EntityKind
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referential gap: %s %s", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrReferentialGap }

// NewReferenceError creates a ReferenceError for the given kind and id.
func NewReferenceError(kind EntityKind, id fmt.Stringer) *ReferenceError {
	return &ReferenceError{Kind: kind, ID: id.String()}
}
