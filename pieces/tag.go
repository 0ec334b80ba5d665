package pieces

import (
	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/schema"
)

// tagNamePattern matches XML-style names: a letter or underscore, then letters,
// digits, underscores, dots or hyphens.
const tagNamePattern = `^[A-Za-z_][A-Za-z0-9_.-]*$`

// Tag wraps its body in XML-style tags, each on its own line:
//
//	<thinking>
//	I need to search for the weather...
//	</thinking>
//
// The body is not escaped.
type Tag struct {
	name string
	body piece.Piece
}

// TagKind builds Tag from {name, body}.
var TagKind = model.MustKind("tag", "A body wrapped in XML-style tags",
	func(f model.Fields) (piece.Piece, error) {
		return &Tag{name: f.String("name"), body: f.Piece("body")}, nil
	},
	model.Value("name", schema.String("Tag name").Pattern(tagNamePattern)).Required(),
	model.Piece("body", "Tagged content").Required(),
)

// NewTag creates a Tag. Returns a *model.FieldErrors if name is not a valid tag name
// or body is nil.
func NewTag(name string, body piece.Piece) (*Tag, error) {
	return construct[*Tag](TagKind, map[string]any{"name": name, "body": body})
}

// MustTag is like NewTag but panics on error.
func MustTag(name string, body piece.Piece) *Tag {
	return must(NewTag(name, body))
}

// Name returns the tag name.
func (t *Tag) Name() string { return t.name }

// Children returns the body.
func (t *Tag) Children() []piece.Piece {
	return []piece.Piece{t.body}
}

// Render returns the opening tag, the body and the closing tag on separate lines.
func (t *Tag) Render() string {
	return "<" + t.name + ">\n" + t.body.Render() + "\n</" + t.name + ">"
}

var (
	_ piece.Piece  = (*Tag)(nil)
	_ piece.Parent = (*Tag)(nil)
)
