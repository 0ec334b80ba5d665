package pieces

import (
	"testing"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/internal/tt"
	"github.com/rickchristie/piece/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorPaths(t *testing.T, err error) []string {
	t.Helper()
	var fe *model.FieldErrors
	require.ErrorAs(t, err, &fe)
	paths := make([]string, len(fe.Errors))
	for i, f := range fe.Errors {
		paths[i] = f.Path
	}
	return paths
}

func TestText_Render(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain", content: "hello"},
		{name: "empty", content: ""},
		{name: "whitespace kept", content: "  padded\n\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := NewText(tc.content)

			tt.AssertRender(t, tc.content, text)
			assert.Equal(t, tc.content, text.Content())
		})
	}
}

func TestHeading(t *testing.T) {
	type input struct {
		text  string
		level int
	}

	tests := []struct {
		name     string
		input    input
		expected string
		errPaths []string
	}{
		{name: "level 1", input: input{"Title", 1}, expected: "# Title"},
		{name: "level 6", input: input{"Deep", 6}, expected: "###### Deep"},
		{name: "level 0", input: input{"T", 0}, errPaths: []string{"level"}},
		{name: "level 7", input: input{"T", 7}, errPaths: []string{"level"}},
		{name: "empty text", input: input{"", 1}, errPaths: []string{"text"}},
		{name: "multi-line text", input: input{"a\nb", 1}, errPaths: []string{"text"}},
		{name: "both invalid", input: input{"", 9}, errPaths: []string{"level", "text"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := NewHeading(tc.input.text, tc.input.level)

			if tc.errPaths != nil {
				assert.Nil(t, h)
				assert.ErrorIs(t, err, model.ErrInvalidFields)
				assert.Equal(t, tc.errPaths, errorPaths(t, err))
				return
			}
			require.NoError(t, err)
			tt.AssertRender(t, tc.expected, h)
			assert.Equal(t, tc.input.text, h.Text())
			assert.Equal(t, tc.input.level, h.Level())
		})
	}

	assert.Panics(t, func() { MustHeading("", 1) })
}

func TestCodeBlock_Render(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		expected string
	}{
		{
			name:     "with language",
			code:     `fmt.Println("hi")`,
			language: "go",
			expected: "```go\nfmt.Println(\"hi\")\n```",
		},
		{
			name:     "no language",
			code:     "ls -la",
			expected: "```\nls -la\n```",
		},
		{
			name:     "trailing newline not doubled",
			code:     "a\nb\n",
			expected: "```\na\nb\n```",
		},
		{
			name:     "empty code",
			code:     "",
			expected: "```\n```",
		},
		{
			name:     "nested fence gets a longer fence",
			code:     "```go\nx\n```",
			language: "markdown",
			expected: "````markdown\n```go\nx\n```\n````",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCodeBlock(tc.code, tc.language)
			require.NoError(t, err)

			tt.AssertRender(t, tc.expected, c)
		})
	}
}

func TestCodeBlock_InvalidLanguage(t *testing.T) {
	_, err := NewCodeBlock("x", "go lang")

	assert.Equal(t, []string{"language"}, errorPaths(t, err))
}

func TestList_Render(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (*List, error)
		expected string
	}{
		{
			name:     "unordered",
			build:    func() (*List, error) { return NewList(NewText("a"), NewText("b")) },
			expected: "- a\n- b",
		},
		{
			name:     "ordered from one",
			build:    func() (*List, error) { return NewOrderedList(1, NewText("a"), NewText("b")) },
			expected: "1. a\n2. b",
		},
		{
			name:     "ordered from zero",
			build:    func() (*List, error) { return NewOrderedList(0, NewText("a")) },
			expected: "0. a",
		},
		{
			name:     "multi-line items are indented",
			build:    func() (*List, error) { return NewList(NewText("first\nsecond"), NewText("x\n\ny")) },
			expected: "- first\n  second\n- x\n\n  y",
		},
		{
			name: "ordered indent follows marker width",
			build: func() (*List, error) {
				return NewOrderedList(9, NewText("a"), NewText("b\nc"))
			},
			expected: "9. a\n10. b\n    c",
		},
		{
			name: "nested list",
			build: func() (*List, error) {
				inner, err := NewList(NewText("x"), NewText("y"))
				if err != nil {
					return nil, err
				}
				return NewList(NewText("top"), inner)
			},
			expected: "- top\n- - x\n  - y",
		},
		{
			name:     "empty",
			build:    func() (*List, error) { return NewList() },
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := tc.build()
			require.NoError(t, err)

			tt.AssertRender(t, tc.expected, l)
		})
	}
}

func TestList_Errors(t *testing.T) {
	_, err := NewList(NewText("a"), nil)
	assert.Equal(t, []string{"items.1"}, errorPaths(t, err))

	_, err = NewOrderedList(-1, NewText("a"))
	assert.Equal(t, []string{"start"}, errorPaths(t, err))
}

func TestList_Children(t *testing.T) {
	a, b := NewText("a"), NewText("b")
	l, err := NewList(a, b)
	require.NoError(t, err)

	children := l.Children()
	assert.Equal(t, []piece.Piece{a, b}, children)

	children[0] = nil
	assert.Equal(t, "- a\n- b", l.Render(), "children are a copy")
	assert.False(t, l.Ordered())
}

func TestSection(t *testing.T) {
	body := piece.MustStack(NewText("one"), NewText("two"))

	s, err := NewSection("Usage", 2, body)
	require.NoError(t, err)

	tt.AssertRender(t, "## Usage\n\none\ntwo", s)
	assert.Equal(t, "Usage", s.Heading().Text())
	assert.Equal(t, body, s.Body())
	assert.Len(t, s.Children(), 2)

	_, err = NewSection("", 0, nil)
	assert.Equal(t, []string{"body", "level", "title"}, errorPaths(t, err))
}

func TestSection_Nested(t *testing.T) {
	inner := MustSection("Inner", 3, NewText("body"))
	outer := MustSection("Outer", 2, piece.MustStack(NewText("intro"), inner).WithSeparator("\n\n"))

	tt.AssertRender(t, "## Outer\n\nintro\n\n### Inner\n\nbody", outer)
}

func TestTag(t *testing.T) {
	tag, err := NewTag("thinking", NewText("step one"))
	require.NoError(t, err)
	tt.AssertRender(t, "<thinking>\nstep one\n</thinking>", tag)
	assert.Equal(t, "thinking", tag.Name())

	empty := MustTag("empty", NewText(""))
	tt.AssertRender(t, "<empty>\n\n</empty>", empty)

	for _, name := range []string{"", "1st", "has space", "a>b"} {
		_, err := NewTag(name, NewText("x"))
		assert.Equal(t, []string{"name"}, errorPaths(t, err), "name %q", name)
	}
}

func TestData(t *testing.T) {
	type plan struct {
		Goal  string   `yaml:"goal" json:"goal"`
		Steps []string `yaml:"steps" json:"steps"`
	}
	v := plan{Goal: "ship", Steps: []string{"build", "test"}}

	y, err := NewYAML(v)
	require.NoError(t, err)
	tt.AssertRender(t, "goal: ship\nsteps:\n    - build\n    - test", y)
	assert.Equal(t, FormatYAML, y.Format())

	j, err := NewJSON(v, "  ")
	require.NoError(t, err)
	tt.AssertRender(t, "{\n  \"goal\": \"ship\",\n  \"steps\": [\n    \"build\",\n    \"test\"\n  ]\n}", j)

	compact, err := NewJSON(v, "")
	require.NoError(t, err)
	tt.AssertRender(t, `{"goal":"ship","steps":["build","test"]}`, compact)

	v.Goal = "changed"
	assert.Contains(t, y.Render(), "ship", "value is captured at construction")
}

func TestData_MarshalError(t *testing.T) {
	_, err := NewJSON(func() {}, "")
	assert.ErrorContains(t, err, "failed to marshal JSON")
}
