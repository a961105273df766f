// Package errors defines the error kinds of the note store. The HTTP layer
// and the CLI branch on these kinds through errors.Is, never on messages.
package errors

import (
	"errors"
	"fmt"
)

// New, Is and As are the standard library helpers, re-exported so callers
// need a single errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched by the typed errors below.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrStoreRead     = errors.New("store read failed")
	ErrStoreParse    = errors.New("store parse failed")
	ErrStoreWrite    = errors.New("store write failed")
	ErrCanceled      = errors.New("operation canceled")
)

// NotFoundError reports a lookup by name that matched nothing.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError returns a NotFoundError for the named resource.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with name %s not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports a missing, malformed or duplicate input value.
// Duplicate failures also match ErrAlreadyExists.
type ValidationError struct {
	Field     string
	Value     any
	Message   string
	Duplicate bool
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NewDuplicateError returns a ValidationError for a value that is already
// taken.
func NewDuplicateError(field string, value any) *ValidationError {
	return &ValidationError{
		Field:     field,
		Value:     value,
		Message:   fmt.Sprintf("%v already exists", value),
		Duplicate: true,
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput, and ErrAlreadyExists for duplicates.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput || (e.Duplicate && target == ErrAlreadyExists)
}

// ParseError reports a notes file whose content cannot be decoded.
type ParseError struct {
	Format  string
	File    string
	Message string
	Err     error
}

// NewParseError returns a ParseError for file in the given format.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrStoreParse.
func (e *ParseError) Is(target error) bool { return target == ErrStoreParse }

// IOError reports a failed read or write of the notes file. Operation
// "read" matches ErrStoreRead and "write" matches ErrStoreWrite.
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

// NewIOError returns an IOError for operation on path.
func NewIOError(operation, path string, err error) *IOError {
	e := &IOError{Operation: operation, Path: path, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is matches the store sentinel for the operation.
func (e *IOError) Is(target error) bool {
	switch e.Operation {
	case "read":
		return target == ErrStoreRead
	case "write":
		return target == ErrStoreWrite
	default:
		return false
	}
}

// ResourceError adds the failed step to an underlying error, such as
// loading the config file.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Message   string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
	}
	return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err is a duplicate ValidationError.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsValidationError reports whether err is any ValidationError.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsCanceled reports whether err came from a cancelled context.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsStoreError reports whether err came from reading, parsing or writing
// the notes file.
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStoreRead) ||
		errors.Is(err, ErrStoreParse) ||
		errors.Is(err, ErrStoreWrite)
}

// WrapIO wraps err as an IOError. A nil err stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps err as a ParseError. A nil err stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapResource wraps err as a ResourceError. A nil err stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   err.Error(),
		Err:       err,
	}
}

// WrapCanceled wraps a context error so it matches both ErrCanceled and
// the original context error.
func WrapCanceled(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, ErrCanceled, err)
}
