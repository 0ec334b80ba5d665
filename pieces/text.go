package pieces

import (
	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/schema"
)

// Text is a leaf piece that renders its content as-is.
//
// Text is the simplest piece. Its content is never trimmed or escaped, so an empty
// Text renders "" and still takes its slot in a Stack.
//
// Example:
//
//	doc := piece.MustStack(
//	    pieces.NewText("First paragraph."),
//	    pieces.NewText("Second paragraph."),
//	).WithSeparator("\n\n")
type Text struct {
	content string
}

// TextKind builds Text from {content}.
var TextKind = model.MustKind("text", "Literal text rendered as-is",
	func(f model.Fields) (piece.Piece, error) {
		return NewText(f.String("content")), nil
	},
	model.Value("content", schema.String("Text content")).Required(),
)

// NewText creates a Text piece. Any string is valid content.
func NewText(content string) *Text {
	return &Text{content: content}
}

// Content returns the text content.
func (t *Text) Content() string {
	return t.content
}

// Render returns the content unchanged.
func (t *Text) Render() string {
	return t.content
}

// Compile-time check that Text implements piece.Piece.
var _ piece.Piece = (*Text)(nil)
