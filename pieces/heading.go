package pieces

import (
	"strings"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/schema"
)

// Heading levels accepted by Heading and Section.
const (
	MinLevel = 1
	MaxLevel = 6
)

// Heading renders a single-line markdown heading: "#" repeated level times, a space,
// then the text.
type Heading struct {
	text  string
	level int
}

// HeadingKind builds Heading from {text, level}. Level defaults to 1.
var HeadingKind = model.MustKind("heading", "A markdown heading line",
	func(f model.Fields) (piece.Piece, error) {
		return &Heading{text: f.String("text"), level: f.Int("level")}, nil
	},
	model.Value("text", headingText("Heading text")).Required(),
	model.Value("level", headingLevel().Default(MinLevel)),
)

// NewHeading creates a Heading. Returns a *model.FieldErrors if text is empty or spans
// several lines, or if level is outside 1..6.
func NewHeading(text string, level int) (*Heading, error) {
	return construct[*Heading](HeadingKind, map[string]any{"text": text, "level": level})
}

// MustHeading is like NewHeading but panics on error.
func MustHeading(text string, level int) *Heading {
	return must(NewHeading(text, level))
}

// Text returns the heading text.
func (h *Heading) Text() string { return h.text }

// Level returns the heading level.
func (h *Heading) Level() int { return h.level }

// Render returns the markdown heading line.
func (h *Heading) Render() string {
	return strings.Repeat("#", h.level) + " " + h.text
}

func headingText(description string) *schema.Property {
	return schema.String(description).Pattern(`^[^\r\n]+$`)
}

func headingLevel() *schema.Property {
	return schema.Integer("Heading level").Min(MinLevel).Max(MaxLevel)
}

var _ piece.Piece = (*Heading)(nil)
