package piece

// Piece is anything that can render itself to text.
//
// Render must be a pure function of the piece's own field values and, for composite
// pieces, of its children's rendered output. Calling Render twice on the same piece
// returns the same text.
//
// Render never validates. Field values are checked once, when the piece is constructed
// (see the model package); by the time Render is called the piece is known to be valid.
//
// Composite pieces must call their children's Render methods rather than inspecting
// the children's concrete types. That keeps every composite usable at any depth and
// with any mix of child types:
//
//	type Section struct {
//	    title string
//	    body  piece.Piece
//	}
//
//	func (s *Section) Render() string {
//	    return "## " + s.title + "\n" + s.body.Render()
//	}
type Piece interface {
	Render() string
}

// Parent is implemented by composite pieces that expose their direct children.
// It is only used by DetectCycle; rendering never needs it.
type Parent interface {
	Children() []Piece
}

// Func adapts a plain function into a leaf Piece.
//
//	greeting := piece.Func(func() string { return "Hello" })
type Func func() string

// Render calls f.
func (f Func) Render() string {
	return f()
}

// Generate renders the root piece and returns the result unchanged.
//
// The root is commonly a [Stack], but any Piece works. A nil root renders as "".
func Generate(root Piece) string {
	if root == nil {
		return ""
	}
	return root.Render()
}

// GenerateChecked is Generate preceded by DetectCycle. Use it when the tree was
// assembled from untrusted or user-defined composites that may reference themselves.
func GenerateChecked(root Piece) (string, error) {
	if err := DetectCycle(root); err != nil {
		return "", err
	}
	return Generate(root), nil
}

// Compile-time check that Func implements Piece.
var _ Piece = Func(nil)
