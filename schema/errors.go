package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FieldError describes one field that failed validation.
type FieldError struct {
	// Path is the dotted location of the field ("text", "items.2"). Empty for errors
	// about the object as a whole.
	Path string

	// Message describes what is wrong with the value.
	Message string
}

func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationError wraps a JSON Schema validation error with a cleaner message and
// the per-field failures extracted from it.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("schema validation failed: %v", e.Err)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error) *ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Err: err}
	}
	fields := collectFieldErrors(ve, nil)
	SortFieldErrors(fields)
	return &ValidationError{Fields: fields, Err: err}
}

// collectFieldErrors flattens the leaves of a validation error tree.
func collectFieldErrors(ve *jsonschema.ValidationError, out []FieldError) []FieldError {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			out = collectFieldErrors(cause, out)
		}
		return out
	}

	if req, ok := ve.ErrorKind.(*kind.Required); ok {
		for _, name := range req.Missing {
			out = append(out, FieldError{
				Path:    JoinPath(JoinPath(ve.InstanceLocation...), name),
				Message: "field is required",
			})
		}
		return out
	}

	return append(out, FieldError{
		Path:    JoinPath(ve.InstanceLocation...),
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}

// JoinPath joins path segments with dots, skipping empty segments.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ".")
}

// SortFieldErrors orders errors by path, then message, so output is deterministic.
func SortFieldErrors(fields []FieldError) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Path != fields[j].Path {
			return fields[i].Path < fields[j].Path
		}
		return fields[i].Message < fields[j].Message
	})
}
