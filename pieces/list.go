package pieces

import (
	"strconv"
	"strings"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/schema"
)

// List renders its items as a markdown list, one item per line.
//
// Unordered items are prefixed "- ", ordered items "1. ", "2. " and so on from the
// start number. Continuation lines of a multi-line item are indented to line up
// with the item text:
//
//   - first
//   - second item
//     spans two lines
//
// An empty list renders "".
type List struct {
	items   []piece.Piece
	ordered bool
	start   int
}

// ListKind builds List from {items, ordered, start}.
var ListKind = model.MustKind("list", "A markdown list of pieces",
	func(f model.Fields) (piece.Piece, error) {
		return &List{
			items:   f.Pieces("items"),
			ordered: f.Bool("ordered"),
			start:   f.Int("start"),
		}, nil
	},
	model.PieceList("items", "List items, rendered in order"),
	model.Value("ordered", schema.Boolean("Number the items instead of bulleting them").Default(false)),
	model.Value("start", schema.Integer("First number of an ordered list").Min(0).Default(1)),
)

// NewList creates an unordered list. Returns a *model.FieldErrors if an item is nil.
func NewList(items ...piece.Piece) (*List, error) {
	return construct[*List](ListKind, map[string]any{"items": items})
}

// NewOrderedList creates a list numbered from start. Start must not be negative.
func NewOrderedList(start int, items ...piece.Piece) (*List, error) {
	return construct[*List](ListKind, map[string]any{"items": items, "ordered": true, "start": start})
}

// Items returns a copy of the list items.
func (l *List) Items() []piece.Piece {
	return append([]piece.Piece(nil), l.items...)
}

// Children returns the list items.
func (l *List) Children() []piece.Piece {
	return l.Items()
}

// Ordered reports whether the list is numbered.
func (l *List) Ordered() bool { return l.ordered }

// Render returns the list, one item per line.
func (l *List) Render() string {
	var sb strings.Builder
	for i, item := range l.items {
		if i > 0 {
			sb.WriteString("\n")
		}
		marker := "- "
		if l.ordered {
			marker = strconv.Itoa(l.start+i) + ". "
		}
		sb.WriteString(marker)
		sb.WriteString(indent(item.Render(), strings.Repeat(" ", len(marker))))
	}
	return sb.String()
}

// indent prefixes every line after the first with pad. Empty lines stay empty.
func indent(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

var (
	_ piece.Piece  = (*List)(nil)
	_ piece.Parent = (*List)(nil)
)
