// Package pieces provides stock piece types for markdown-style documents.
//
// # Overview
//
// Each piece type has a validating Go constructor and a [model.Kind], so the same
// pieces can be built in code or from YAML/JSON documents. Both paths share one
// validation: a failed constructor returns a [*model.FieldErrors].
//
// # Available Pieces
//
//   - [Text] ("text"): literal content
//   - [Heading] ("heading"): a "#"-prefixed heading line, level 1..6
//   - [CodeBlock] ("code"): a fenced code block
//   - [List] ("list"): bulleted or numbered items
//   - [Section] ("section"): heading, blank line, body
//   - [Tag] ("tag"): body wrapped in XML-style tags
//   - [Data] ("yaml", "json"): a serialized value
//
// # Building in Code
//
//	doc := piece.MustStack(
//	    pieces.MustHeading("Release notes", 1),
//	    pieces.MustSection("Fixes", 2, pieces.NewText("Render no longer trims output.")),
//	).WithSeparator("\n\n")
//
// # Building from Documents
//
//	reg := pieces.NewRegistry()
//	doc, err := reg.DecodeYAML([]byte(`
//	- {kind: heading, text: Release notes}
//	- kind: section
//	  title: Fixes
//	  body: {kind: text, content: Render no longer trims output.}
//	`))
//
// # Choosing Between Tag and Section
//
// Use [Section] for documents read by people. Use [Tag] when the output is a prompt
// and the model should see unambiguous boundaries around each part.
package pieces
