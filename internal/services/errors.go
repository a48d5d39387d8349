package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/uams/internal/validation"
)

// ValidationError reports that the input did not satisfy field, format or
// range rules. It is recoverable by correcting the input and is produced
// before the store is touched.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %v", e.Violations.Fields())
}

// NotFoundError reports a missing operation target or a dangling reference.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness violation. Unlike ValidationError it
// requires a store round-trip to detect.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already in use", e.Field, e.Value)
}

// StoreError wraps an unclassified persistence failure. It is always surfaced
// to the caller; this layer does not retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func notFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// classifyStore translates recognizable store failures into the typed
// taxonomy; everything else becomes a StoreError.
func classifyStore(op string, err error, uniqueField, uniqueValue string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) && uniqueField != "" {
		return &ConflictError{Field: uniqueField, Value: uniqueValue}
	}
	return &StoreError{Op: op, Err: err}
}
