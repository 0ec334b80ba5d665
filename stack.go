package piece

import (
	"fmt"
	"strings"
)

// DefaultSeparator is the separator used by stacks that do not set one.
const DefaultSeparator = "\n"

// Stack is the generic composite piece: an ordered list of pieces joined by a separator.
//
// A Stack is immutable. Methods that "modify" it (WithSeparator, Append, Insert) return
// a new Stack and leave the receiver untouched, so a Stack can be shared between trees
// and rendered from several goroutines at once.
//
// Example:
//
//	doc := piece.MustStack(
//	    pieces.MustHeading("Title", 1),
//	    pieces.NewText("Body text"),
//	).WithSeparator("\n\n")
//
//	piece.Generate(doc) // "# Title\n\nBody text"
type Stack struct {
	pieces    []Piece
	separator string
}

// NewStack creates a Stack from the given pieces using DefaultSeparator.
// The pieces slice is copied. Returns an error wrapping ErrNilPiece if any piece is nil.
func NewStack(pieces ...Piece) (*Stack, error) {
	if err := checkPieces(pieces, 0); err != nil {
		return nil, err
	}
	return &Stack{
		pieces:    clonePieces(pieces),
		separator: DefaultSeparator,
	}, nil
}

// MustStack is like NewStack but panics on error.
// Use this for stacks built from pieces known to be non-nil.
func MustStack(pieces ...Piece) *Stack {
	s, err := NewStack(pieces...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithSeparator returns a copy of the stack that joins its pieces with sep.
// An empty separator concatenates pieces directly.
func (s *Stack) WithSeparator(sep string) *Stack {
	return &Stack{
		pieces:    s.Pieces(),
		separator: sep,
	}
}

// Append returns a new stack with the given pieces added after the existing ones.
func (s *Stack) Append(pieces ...Piece) (*Stack, error) {
	if err := checkPieces(pieces, s.Len()); err != nil {
		return nil, err
	}
	next := make([]Piece, 0, s.Len()+len(pieces))
	next = append(next, s.Pieces()...)
	next = append(next, pieces...)
	return &Stack{pieces: next, separator: s.Separator()}, nil
}

// Insert returns a new stack with p placed before position index.
//
// A negative index counts from the end (-1 inserts before the last piece).
// Indexes past either end clamp, so Insert never fails on position alone.
func (s *Stack) Insert(index int, p Piece) (*Stack, error) {
	if p == nil {
		return nil, fmt.Errorf("%w at index %d", ErrNilPiece, index)
	}
	n := s.Len()
	if index < 0 {
		index += n
	}
	index = max(0, min(index, n))

	next := make([]Piece, 0, n+1)
	next = append(next, s.Pieces()[:index]...)
	next = append(next, p)
	next = append(next, s.Pieces()[index:]...)
	return &Stack{pieces: next, separator: s.Separator()}, nil
}

// Pieces returns a copy of the stack's pieces in render order.
func (s *Stack) Pieces() []Piece {
	if s == nil {
		return nil
	}
	return clonePieces(s.pieces)
}

// Children implements Parent.
func (s *Stack) Children() []Piece {
	return s.Pieces()
}

// Separator returns the text placed between consecutive pieces.
func (s *Stack) Separator() string {
	if s == nil {
		return DefaultSeparator
	}
	return s.separator
}

// Len returns the number of pieces in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pieces)
}

// Render renders every piece in order and joins the results with the separator.
//
// The separator goes strictly between consecutive results: n pieces produce n-1
// separators. A piece that renders to "" still takes its slot, so consecutive
// separators can appear in the output. An empty stack renders as "".
func (s *Stack) Render() string {
	if s.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	for i, p := range s.pieces {
		if i > 0 {
			sb.WriteString(s.separator)
		}
		sb.WriteString(p.Render())
	}
	return sb.String()
}

func checkPieces(pieces []Piece, offset int) error {
	for i, p := range pieces {
		if p == nil {
			return fmt.Errorf("%w at index %d", ErrNilPiece, offset+i)
		}
	}
	return nil
}

func clonePieces(pieces []Piece) []Piece {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]Piece, len(pieces))
	copy(out, pieces)
	return out
}

// Compile-time check that Stack implements Piece and Parent.
var (
	_ Piece  = (*Stack)(nil)
	_ Parent = (*Stack)(nil)
)
