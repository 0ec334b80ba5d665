package pieces

import (
	"strings"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/schema"
)

// CodeBlock renders a fenced markdown code block.
//
// The fence is three backticks, or one more than the longest backtick run inside
// the code, so code containing fences of its own stays intact:
//
//	```go
//	fmt.Println("hi")
//	```
type CodeBlock struct {
	code     string
	language string
}

// CodeKind builds CodeBlock from {code, language}.
var CodeKind = model.MustKind("code", "A fenced code block",
	func(f model.Fields) (piece.Piece, error) {
		return &CodeBlock{code: f.String("code"), language: f.String("language")}, nil
	},
	model.Value("code", schema.String("Code content")).Required(),
	model.Value("language", schema.String("Info string after the opening fence").
		Pattern(`^[^\s`+"`"+`]*$`).
		Default("")),
)

// NewCodeBlock creates a CodeBlock. The language may be empty; otherwise it must not
// contain whitespace or backticks.
func NewCodeBlock(code, language string) (*CodeBlock, error) {
	return construct[*CodeBlock](CodeKind, map[string]any{"code": code, "language": language})
}

// MustCodeBlock is like NewCodeBlock but panics on error.
func MustCodeBlock(code, language string) *CodeBlock {
	return must(NewCodeBlock(code, language))
}

// Code returns the block content.
func (c *CodeBlock) Code() string { return c.code }

// Language returns the info string.
func (c *CodeBlock) Language() string { return c.language }

// Render returns the fenced block.
func (c *CodeBlock) Render() string {
	fence := strings.Repeat("`", max(3, longestRun(c.code, '`')+1))

	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteString(c.language)
	sb.WriteString("\n")
	sb.WriteString(c.code)
	if c.code != "" && !strings.HasSuffix(c.code, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence)
	return sb.String()
}

func longestRun(s string, r rune) int {
	longest, current := 0, 0
	for _, c := range s {
		if c != r {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}

var _ piece.Piece = (*CodeBlock)(nil)
