package model

import (
	"errors"
	"strings"

	"github.com/rickchristie/piece/schema"
)

// Construction errors.
var (
	ErrInvalidKind   = errors.New("invalid kind definition")
	ErrInvalidFields = errors.New("invalid field values")
	ErrUnknownKind   = errors.New("unknown kind")
	ErrDuplicateKind = errors.New("kind already registered")
	ErrEmptyDocument = errors.New("document is empty")
)

// FieldErrors is returned when field values fail validation. No piece is built.
type FieldErrors struct {
	// Kind is the name of the kind being constructed.
	Kind string

	// Errors lists every failing field, sorted by path.
	Errors []schema.FieldError

	// Err is the underlying cause when one exists (schema or builder error).
	Err error
}

func (e *FieldErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid ")
	if e.Kind != "" {
		sb.WriteString(e.Kind)
	} else {
		sb.WriteString("document")
	}
	sb.WriteString(": ")
	for i, f := range e.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrInvalidFields and the underlying cause.
func (e *FieldErrors) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidFields, e.Err}
	}
	return []error{ErrInvalidFields}
}

func newFieldErrors(kind string, errs []schema.FieldError, cause error) *FieldErrors {
	schema.SortFieldErrors(errs)
	return &FieldErrors{Kind: kind, Errors: errs, Err: cause}
}

// fieldErrorsOf returns the field errors carried by err, under prefix.
// Errors that carry no field information become a single error at prefix.
func fieldErrorsOf(err error, prefix string) []schema.FieldError {
	var fe *FieldErrors
	if errors.As(err, &fe) {
		return prefixFieldErrors(fe.Errors, prefix)
	}
	return []schema.FieldError{{Path: prefix, Message: err.Error()}}
}

func prefixFieldErrors(errs []schema.FieldError, prefix string) []schema.FieldError {
	out := make([]schema.FieldError, len(errs))
	for i, f := range errs {
		out[i] = schema.FieldError{Path: schema.JoinPath(prefix, f.Path), Message: f.Message}
	}
	return out
}
