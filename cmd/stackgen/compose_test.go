package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/pieces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_Session(t *testing.T) {
	type step struct {
		line    string
		out     string
		wantErr string
	}

	steps := []step{
		{line: "heading {text: Title}", out: "added heading (1 piece(s))"},
		{line: "text {content: Body text}", out: "added text (2 piece(s))"},
		{line: ":render", out: "# Title\nBody text"},
		{line: `:sep "\n\n"`, out: `separator: "\n\n"`},
		{line: ":render", out: "# Title\n\nBody text"},
		{line: "heading {level: 9}", wantErr: "field is required"},
		{line: "banner", wantErr: "unknown kind"},
		{line: "text [a, b]", wantErr: "fields must be a YAML mapping"},
		{line: ":undo", out: "1 piece(s)"},
		{line: ":render", out: "# Title"},
		{line: ":clear", out: "0 piece(s)"},
		{line: ":undo", wantErr: "nothing to undo"},
		{line: ":render", out: ""},
		{line: ":bogus", wantErr: "unknown command"},
		{line: "   ", out: ""},
	}

	c := newComposer(pieces.NewRegistry(), "\n")

	for _, s := range steps {
		out, quit, err := c.exec(s.line)

		assert.False(t, quit, s.line)
		if s.wantErr != "" {
			assert.ErrorContains(t, err, s.wantErr, s.line)
			continue
		}
		require.NoError(t, err, s.line)
		assert.Equal(t, s.out, out, s.line)
	}
}

func TestComposer_Quit(t *testing.T) {
	c := newComposer(pieces.NewRegistry(), "\n")

	for _, line := range []string{":quit", ":q", ":exit"} {
		_, quit, err := c.exec(line)
		require.NoError(t, err)
		assert.True(t, quit, line)
	}
}

func TestComposer_Separator(t *testing.T) {
	c := newComposer(pieces.NewRegistry(), "\n")

	out, _, err := c.exec(":sep")
	require.NoError(t, err)
	assert.Equal(t, `separator: "\n"`, out)

	out, _, err = c.exec(":sep ', '")
	require.NoError(t, err)
	assert.Equal(t, `separator: ", "`, out)

	_, _, err = c.exec(":sep [1, 2]")
	assert.ErrorContains(t, err, "separator must be a YAML string")
}

func TestComposer_Write(t *testing.T) {
	c := newComposer(pieces.NewRegistry(), " ")
	path := filepath.Join(t.TempDir(), "doc.md")

	_, _, err := c.exec("text {content: hello}")
	require.NoError(t, err)
	_, _, err = c.exec("text {content: world}")
	require.NoError(t, err)

	out, _, err := c.exec(":write " + path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 11 bytes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, _, err = c.exec(":write")
	assert.ErrorContains(t, err, "needs a path")
}

func TestComposer_Kinds(t *testing.T) {
	c := newComposer(pieces.NewRegistry(), "\n")

	out, _, err := c.exec(":kinds")

	require.NoError(t, err)
	assert.Contains(t, out, "heading")
	assert.Contains(t, out, "stack")
}

func TestFormatComposeError(t *testing.T) {
	c := newComposer(pieces.NewRegistry(), "\n")
	_, _, err := c.exec("heading {text: '', level: 0}")
	require.Error(t, err)

	assert.Equal(t, "invalid heading:\n  level: "+fieldMessage(t, err, "level")+"\n  text: "+fieldMessage(t, err, "text"),
		formatComposeError(err))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: `\n`, expected: "\n"},
		{input: `\t|\t`, expected: "\t|\t"},
		{input: "\n\n", expected: "\n\n"},
		{input: `say "hi"`, expected: `say "hi"`},
		{input: `say \"hi\"`, expected: `say "hi"`},
		{input: `a\\b`, expected: `a\b`},
		{input: `\\"`, expected: `\"`},
		{input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := unescape(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func fieldMessage(t *testing.T, err error, path string) string {
	t.Helper()
	var fe *model.FieldErrors
	require.ErrorAs(t, err, &fe)
	for _, f := range fe.Errors {
		if f.Path == path {
			return f.Message
		}
	}
	t.Fatalf("no error at %s", path)
	return ""
}
