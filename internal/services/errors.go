package services

import (
	"fmt"
	"strings"
)

// ValidationError is a single-message input failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// FieldError names one failing input field so the UI can highlight it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationError aggregates every failing field of one call.
type FieldValidationError struct {
	Fields []FieldError
}

func (e *FieldValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects failures during validation; nil result when clean.
type fieldErrors []FieldError

func (fe *fieldErrors) add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

func (fe fieldErrors) asError() error {
	if len(fe) == 0 {
		return nil
	}
	return &FieldValidationError{Fields: fe}
}

// NotFoundError names the missing entity and its identifier.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// EmailExistsError reports a duplicate among active records.
type EmailExistsError struct {
	Email string
}

func (e *EmailExistsError) Error() string {
	return fmt.Sprintf("email %s is already in use", e.Email)
}

// InvariantViolationError marks a should-never-happen state detected by a
// defensive re-check, e.g. more than one ACTIVE contract after a swap.
type InvariantViolationError struct {
	Message string
}

func (e *InvariantViolationError) Error() string { return e.Message }
