package pieces

import (
	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
)

// Section is a titled block: a heading line, a blank line, then the body.
//
//	## Usage
//
//	Run the tool with a document path.
//
// The body may be any piece, including a Stack of further sections.
type Section struct {
	heading *Heading
	body    piece.Piece
}

// SectionKind builds Section from {title, level, body}. Level defaults to 2.
var SectionKind = model.MustKind("section", "A heading followed by a body",
	func(f model.Fields) (piece.Piece, error) {
		return &Section{
			heading: &Heading{text: f.String("title"), level: f.Int("level")},
			body:    f.Piece("body"),
		}, nil
	},
	model.Value("title", headingText("Section title")).Required(),
	model.Value("level", headingLevel().Default(2)),
	model.Piece("body", "Section content").Required(),
)

// NewSection creates a Section. Returns a *model.FieldErrors if the title is not a
// valid heading, the level is outside 1..6, or body is nil.
func NewSection(title string, level int, body piece.Piece) (*Section, error) {
	return construct[*Section](SectionKind, map[string]any{"title": title, "level": level, "body": body})
}

// MustSection is like NewSection but panics on error.
func MustSection(title string, level int, body piece.Piece) *Section {
	return must(NewSection(title, level, body))
}

// Heading returns the section heading.
func (s *Section) Heading() *Heading { return s.heading }

// Body returns the section body.
func (s *Section) Body() piece.Piece { return s.body }

// Children returns the heading and the body.
func (s *Section) Children() []piece.Piece {
	return []piece.Piece{s.heading, s.body}
}

// Render returns the heading line, a blank line, and the rendered body.
func (s *Section) Render() string {
	return s.heading.Render() + "\n\n" + s.body.Render()
}

var (
	_ piece.Piece  = (*Section)(nil)
	_ piece.Parent = (*Section)(nil)
)
