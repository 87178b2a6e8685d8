package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when a business rule rejects the request
	ErrValidation = errors.New("validation error")
	// ErrExternalDependency is returned when an upstream service is unreachable or returns bad data
	ErrExternalDependency = errors.New("external dependency failure")
)

// Kind names the entity a NotFoundError refers to.
type Kind string

const (
	KindAccount Kind = "account"
	KindUser    Kind = "user"
)

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Kind Kind
	ID   string
}

// NewNotFound returns a NotFoundError for the given entity.
func NewNotFound(kind Kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError carries the human readable reason a rule failed.
type ValidationError struct {
	Reason string
}

// NewValidation returns a ValidationError with the given reason.
func NewValidation(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// NewValidationf formats the reason like fmt.Sprintf.
func NewValidationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ExternalDependencyError wraps a failure of an upstream collaborator.
type ExternalDependencyError struct {
	Source string
	Err    error
}

// NewExternalDependency wraps err as a failure of source.
func NewExternalDependency(source string, err error) *ExternalDependencyError {
	return &ExternalDependencyError{Source: source, Err: err}
}

func (e *ExternalDependencyError) Error() string {
	if e.Err == nil {
		return e.Source + " unavailable"
	}
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *ExternalDependencyError) Unwrap() error { return e.Err }

func (e *ExternalDependencyError) Is(target error) bool { return target == ErrExternalDependency }

// Reason returns the validation reason carried by err, if any.
func Reason(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}
