package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/internal/tt"
	"github.com/rickchristie/piece/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// title renders a markdown heading; the builder records how often it ran.
type title struct {
	text  string
	level int
}

func (t title) Render() string {
	return strings.Repeat("#", t.level) + " " + t.text
}

// wrapper is a composite holding one piece and a list of pieces.
type wrapper struct {
	head  piece.Piece
	items []piece.Piece
}

func (w wrapper) Render() string {
	parts := []string{w.head.Render()}
	for _, item := range w.items {
		parts = append(parts, "* "+item.Render())
	}
	return strings.Join(parts, "\n")
}

func newTitleKind(builds *int) *Kind {
	return MustKind("title", "A heading",
		func(f Fields) (piece.Piece, error) {
			*builds++
			return title{text: f.String("text"), level: f.Int("level")}, nil
		},
		Value("text", schema.String("Heading text").MinLength(1)).Required(),
		Value("level", schema.Integer("Heading level").Min(1).Max(6).Default(1)),
	)
}

func newWrapperKind() *Kind {
	return MustKind("wrapper", "Head and items",
		func(f Fields) (piece.Piece, error) {
			return wrapper{head: f.Piece("head"), items: f.Pieces("items")}, nil
		},
		Piece("head", "Leading piece").Required(),
		PieceList("items", "Following pieces"),
	)
}

func TestKind_New(t *testing.T) {
	type expected struct {
		render string
		errs   []string // paths of expected field errors
	}

	tests := []struct {
		name     string
		values   map[string]any
		expected expected
	}{
		{
			name:     "all fields",
			values:   map[string]any{"text": "Title", "level": 2},
			expected: expected{render: "## Title"},
		},
		{
			name:     "default applied",
			values:   map[string]any{"text": "Title"},
			expected: expected{render: "# Title"},
		},
		{
			name:     "unknown keys ignored",
			values:   map[string]any{"text": "Title", "color": "red"},
			expected: expected{render: "# Title"},
		},
		{
			name:     "float64 integer accepted",
			values:   map[string]any{"text": "T", "level": float64(3)},
			expected: expected{render: "### T"},
		},
		{
			name:     "missing required",
			values:   map[string]any{"level": 2},
			expected: expected{errs: []string{"text"}},
		},
		{
			name:     "wrong type",
			values:   map[string]any{"text": 42},
			expected: expected{errs: []string{"text"}},
		},
		{
			name:     "constraint violation",
			values:   map[string]any{"text": "T", "level": 7},
			expected: expected{errs: []string{"level"}},
		},
		{
			name:     "explicit null is not absent",
			values:   map[string]any{"text": "T", "level": nil},
			expected: expected{errs: []string{"level"}},
		},
		{
			name:     "all failures reported together",
			values:   map[string]any{"text": "", "level": 0},
			expected: expected{errs: []string{"level", "text"}},
		},
		{
			name:     "nil map",
			values:   nil,
			expected: expected{errs: []string{"text"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			builds := 0
			kind := newTitleKind(&builds)

			p, err := kind.New(tc.values)

			if tc.expected.errs == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.expected.render, p.Render())
				assert.Equal(t, 1, builds)
				return
			}

			assert.Nil(t, p)
			assert.Equal(t, 0, builds, "builder must not run on invalid fields")
			require.ErrorIs(t, err, ErrInvalidFields)

			var fe *FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "title", fe.Kind)
			paths := make([]string, len(fe.Errors))
			for i, f := range fe.Errors {
				paths[i] = f.Path
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tc.expected.errs, paths)
		})
	}
}

func TestKind_New_PieceFields(t *testing.T) {
	kind := newWrapperKind()

	tests := []struct {
		name     string
		values   map[string]any
		render   string
		errPaths []string
	}{
		{
			name:   "head only",
			values: map[string]any{"head": tt.Leaf("H")},
			render: "H",
		},
		{
			name:   "typed piece list",
			values: map[string]any{"head": tt.Leaf("H"), "items": []piece.Piece{tt.Leaf("a"), tt.Leaf("b")}},
			render: "H\n* a\n* b",
		},
		{
			name:   "any list of pieces",
			values: map[string]any{"head": tt.Leaf("H"), "items": []any{tt.Leaf("a")}},
			render: "H\n* a",
		},
		{
			name:   "slice of concrete pieces",
			values: map[string]any{"head": tt.Leaf("H"), "items": []tt.Leaf{"a", "b"}},
			render: "H\n* a\n* b",
		},
		{
			name:   "slice of pointer pieces",
			values: map[string]any{"head": tt.Leaf("H"), "items": []*tt.Box{{Items: tt.Leaves("x")}}},
			render: "H\n* x",
		},
		{
			name:     "missing required piece",
			values:   map[string]any{},
			errPaths: []string{"head"},
		},
		{
			name:     "non-piece value",
			values:   map[string]any{"head": "just text"},
			errPaths: []string{"head"},
		},
		{
			name:     "bad list item reported by index",
			values:   map[string]any{"head": tt.Leaf("H"), "items": []any{tt.Leaf("a"), 3}},
			errPaths: []string{"items.1"},
		},
		{
			name:     "nil in typed list",
			values:   map[string]any{"head": tt.Leaf("H"), "items": []piece.Piece{nil}},
			errPaths: []string{"items.0"},
		},
		{
			name:     "nil pointer in concrete list",
			values:   map[string]any{"head": tt.Leaf("H"), "items": []*tt.Box{{Items: tt.Leaves("x")}, nil}},
			errPaths: []string{"items.1"},
		},
		{
			name:     "slice of non-pieces",
			values:   map[string]any{"head": tt.Leaf("H"), "items": []string{"a"}},
			errPaths: []string{"items"},
		},
		{
			name:     "list of wrong shape",
			values:   map[string]any{"head": tt.Leaf("H"), "items": "a,b"},
			errPaths: []string{"items"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := kind.New(tc.values)

			if tc.errPaths == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.render, p.Render())
				return
			}

			var fe *FieldErrors
			require.ErrorAs(t, err, &fe)
			paths := make([]string, len(fe.Errors))
			for i, f := range fe.Errors {
				paths[i] = f.Path
			}
			assert.Equal(t, tc.errPaths, paths)
		})
	}
}

func TestKind_New_BuilderError(t *testing.T) {
	errBuild := errors.New("level and text disagree")
	kind := MustKind("strict", "",
		func(f Fields) (piece.Piece, error) { return nil, errBuild },
		Value("text", schema.String("text")),
	)

	p, err := kind.New(map[string]any{"text": "x"})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, errBuild)
	assert.ErrorIs(t, err, ErrInvalidFields)
	assert.Equal(t, "invalid strict: level and text disagree", err.Error())
}

func TestKind_New_BuilderReturnsNil(t *testing.T) {
	kind := MustKind("empty", "", func(f Fields) (piece.Piece, error) { return nil, nil })

	_, err := kind.New(nil)

	assert.ErrorIs(t, err, ErrInvalidFields)
}

func TestKind_MustNew(t *testing.T) {
	builds := 0
	kind := newTitleKind(&builds)

	assert.Equal(t, "# ok", kind.MustNew(map[string]any{"text": "ok"}).Render())
	assert.Panics(t, func() { kind.MustNew(map[string]any{}) })
}

func TestNewKind_InvalidDefinitions(t *testing.T) {
	build := func(f Fields) (piece.Piece, error) { return tt.Leaf(""), nil }

	tests := []struct {
		name   string
		kind   string
		build  BuildFunc
		fields []Field
	}{
		{name: "empty name", kind: "", build: build},
		{name: "nil build", kind: "k", build: nil},
		{name: "unnamed field", kind: "k", build: build, fields: []Field{Piece("", "")}},
		{name: "reserved field", kind: "k", build: build, fields: []Field{Piece(KindKey, "")}},
		{
			name:   "duplicate field",
			kind:   "k",
			build:  build,
			fields: []Field{Piece("a", ""), PieceList("a", "")},
		},
		{name: "value without property", kind: "k", build: build, fields: []Field{Value("a", nil)}},
		{
			name:   "property does not compile",
			kind:   "k",
			build:  build,
			fields: []Field{Value("a", schema.String("a").Pattern("(unclosed"))},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, err := NewKind(tc.kind, "", tc.build, tc.fields...)

			assert.Nil(t, k)
			assert.ErrorIs(t, err, ErrInvalidKind)
		})
	}
}

func TestKind_Schema(t *testing.T) {
	kind := newWrapperKind()

	s := kind.Schema()

	assert.Equal(t, "wrapper", s["title"])
	assert.Equal(t, "Head and items", s["description"])
	assert.Equal(t, []string{"head"}, s["required"])
	props := s["properties"].(map[string]any)
	assert.Equal(t, true, props["head"].(map[string]any)["x-piece"])
	assert.Equal(t, "array", props["items"].(map[string]any)["type"])
}

func TestKind_Describe(t *testing.T) {
	builds := 0
	kind := newTitleKind(&builds)

	out := kind.Describe()

	assert.Contains(t, out, "title: title")
	assert.Contains(t, out, "description: Heading text")
	assert.Contains(t, out, "maximum: 6")
	assert.Contains(t, out, "- text")
}

func TestKind_Accessors(t *testing.T) {
	kind := newWrapperKind()

	assert.Equal(t, "wrapper", kind.Name())
	assert.Equal(t, "Head and items", kind.Description())
	require.Len(t, kind.Fields(), 2)

	f, ok := kind.Field("items")
	require.True(t, ok)
	assert.Equal(t, PieceListField, f.Type())
	assert.False(t, f.IsRequired())
	assert.Equal(t, "Following pieces", f.Description())

	_, ok = kind.Field("missing")
	assert.False(t, ok)
}
