package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rickchristie/piece"
	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------
// Render Assertion Helpers
// -----------------------------------------------------------------------------

// AssertRender asserts that p renders to expected.
// On mismatch the failure includes a line-by-line unified diff, which is easier to read
// than testify's quoted strings for multi-line documents.
func AssertRender(t *testing.T, expected string, p piece.Piece) bool {
	t.Helper()
	return AssertText(t, expected, piece.Generate(p))
}

// AssertText asserts that two rendered documents are equal, reporting a unified diff.
func AssertText(t *testing.T, expected, actual string) bool {
	t.Helper()
	if expected == actual {
		return true
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return assert.Equal(t, expected, actual)
	}
	return assert.Fail(t, "rendered text mismatch",
		"expected: %q\nactual:   %q\n\n%s", expected, actual, diff)
}

// AssertIdempotent renders p twice and asserts both renders match.
func AssertIdempotent(t *testing.T, p piece.Piece) bool {
	t.Helper()
	first := piece.Generate(p)
	second := piece.Generate(p)
	return assert.Equal(t, first, second, "render drifted between calls")
}
