// Package model constructs validated pieces from field maps.
//
// # Overview
//
// Rendering assumes every piece is valid, so validation happens once, at construction.
// A [Kind] declares a piece type's fields and compiles the value fields into a JSON
// Schema. [Kind.New] applies defaults, validates, and either returns the built piece or
// a [*FieldErrors] naming every failing field. The builder only ever sees valid fields.
//
// # Field Types
//
//   - [Value]: a JSON value checked by a [schema.Property]
//   - [Piece]: one nested piece
//   - [PieceList]: an ordered list of nested pieces
//
// # Defining Kinds
//
//	section := model.MustKind("section", "A titled block",
//	    func(f model.Fields) (piece.Piece, error) {
//	        return pieces.NewSection(f.String("title"), f.Int("level"), f.Piece("body"))
//	    },
//	    model.Value("title", schema.String("Section title").MinLength(1)).Required(),
//	    model.Value("level", schema.Integer("Heading level").Min(1).Max(6).Default(2)),
//	    model.Piece("body", "Section content").Required(),
//	)
//
// For leaf pieces whose fields map onto a Go struct, [DefineStruct] derives the kind
// from struct tags.
//
// # Documents
//
// A [Registry] builds whole trees from YAML or JSON documents. Every node names its
// kind; nested nodes in piece fields are built bottom-up before their parent:
//
//	reg := model.NewRegistry()
//	pieces.MustRegister(reg)
//
//	doc, err := reg.DecodeYAML([]byte(`
//	kind: stack
//	separator: "\n\n"
//	pieces:
//	  - {kind: heading, text: Title}
//	  - {kind: text, content: Body text}
//	`))
//	if err != nil {
//	    var fe *model.FieldErrors
//	    if errors.As(err, &fe) {
//	        for _, f := range fe.Errors {
//	            fmt.Println(f.Path, f.Message) // e.g. "pieces.1.content field is required"
//	        }
//	    }
//	    return err
//	}
//	fmt.Println(piece.Generate(doc)) // "# Title\n\nBody text"
package model
