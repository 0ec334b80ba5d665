package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "no fields falls back to wrapped error",
			err:      &ValidationError{Err: errors.New("boom")},
			expected: "schema validation failed: boom",
		},
		{
			name: "fields are listed",
			err: &ValidationError{Fields: []FieldError{
				{Path: "level", Message: "must be <= 6"},
				{Path: "", Message: "object invalid"},
			}},
			expected: "schema validation failed: level: must be <= 6; object invalid",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	outer := &ValidationError{Err: inner}

	assert.ErrorIs(t, outer, inner)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "", JoinPath())
	assert.Equal(t, "a", JoinPath("", "a", ""))
	assert.Equal(t, "pieces.1.text", JoinPath("pieces", "1", "text"))
}

func TestSortFieldErrors(t *testing.T) {
	fields := []FieldError{
		{Path: "text", Message: "b"},
		{Path: "level", Message: "z"},
		{Path: "text", Message: "a"},
	}

	SortFieldErrors(fields)

	assert.Equal(t, []FieldError{
		{Path: "level", Message: "z"},
		{Path: "text", Message: "a"},
		{Path: "text", Message: "b"},
	}, fields)
}
