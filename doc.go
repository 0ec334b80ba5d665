// Package piece builds text documents out of typed, nested pieces.
//
// A document is a tree. Every node in it is a [Piece]: a value that, once constructed,
// never changes and knows how to render itself to a string. Leaf pieces produce their
// text directly. Composite pieces hold other pieces and assemble their children's
// rendered text. [Stack] is the stock composite: an ordered list of pieces joined by
// a separator.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/rickchristie/piece"
//	    "github.com/rickchristie/piece/pieces"
//	)
//
//	func main() {
//	    // 1. Build leaves first
//	    title := pieces.MustHeading("Release notes", 1)
//	    intro := pieces.NewText("This release adds nested stacks.")
//
//	    // 2. Compose them, bottom-up
//	    changes := piece.MustStack(
//	        pieces.NewText("- nested stacks"),
//	        pieces.NewText("- cycle detection"),
//	    )
//
//	    // 3. Assemble the root
//	    doc := piece.MustStack(title, intro, changes).WithSeparator("\n\n")
//
//	    // 4. Render top-down
//	    fmt.Println(piece.Generate(doc))
//	}
//
// Output:
//
//	# Release notes
//
//	This release adds nested stacks.
//
//	- nested stacks
//	- cycle detection
//
// # Defining Pieces
//
// Any type with a Render() string method is a Piece. Composite pieces hold children
// typed as [Piece] and call their Render methods:
//
//	type Quote struct {
//	    Author string
//	    Body   piece.Piece
//	}
//
//	func (q Quote) Render() string {
//	    return "> " + q.Body.Render() + "\n> -- " + q.Author
//	}
//
// # Construction and Validation
//
// Pieces are validated when they are constructed, never when they render. The
// [github.com/rickchristie/piece/model] package defines kinds with JSON Schema field
// declarations and builds pieces from field maps, returning structured field errors
// when values do not match. Documents can also be decoded from YAML or JSON through a
// [github.com/rickchristie/piece/model.Registry].
//
// # Rendering
//
// [Generate] is the entry point: it renders any root piece and returns the text.
// Rendering is synchronous, depth-first and free of side effects; the same tree can be
// rendered repeatedly or from several goroutines without coordination.
//
// Render depth equals tree depth. A piece that contains itself never finishes
// rendering; use [DetectCycle] or [GenerateChecked] when trees come from code you do
// not control.
package piece
