package pieces

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/schema"
	"gopkg.in/yaml.v3"
)

// DataFormat names the serialization a Data piece uses.
type DataFormat string

const (
	FormatYAML DataFormat = "yaml"
	FormatJSON DataFormat = "json"
)

// Data renders a value serialized as YAML or JSON.
//
// The value is marshaled once, at construction, so a value that cannot be encoded is
// a construction error and Render never fails. Later changes to the original value
// do not affect the rendered text. The output has no trailing newline.
//
// Example:
//
//	type Plan struct {
//	    Goal  string   `yaml:"goal" json:"goal"`
//	    Steps []string `yaml:"steps" json:"steps"`
//	}
//
//	d, err := pieces.NewYAML(Plan{Goal: "ship", Steps: []string{"build", "test"}})
type Data struct {
	format  DataFormat
	content string
}

// YAMLKind builds a YAML Data piece from {value}.
var YAMLKind = model.MustKind(string(FormatYAML), "A value rendered as YAML",
	func(f model.Fields) (piece.Piece, error) {
		return NewYAML(plain(f.Value("value")))
	},
	model.Value("value", schema.Any("Value to serialize")).Required(),
)

// JSONKind builds a JSON Data piece from {value, indent}. Indent defaults to two
// spaces; an empty indent gives compact output.
var JSONKind = model.MustKind(string(FormatJSON), "A value rendered as JSON",
	func(f model.Fields) (piece.Piece, error) {
		return NewJSON(f.Value("value"), f.String("indent"))
	},
	model.Value("value", schema.Any("Value to serialize")).Required(),
	model.Value("indent", schema.String("Indentation per nesting level").Pattern(`^[ \t]*$`).Default("  ")),
)

// NewYAML marshals v as YAML.
func NewYAML(v any) (*Data, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return &Data{format: FormatYAML, content: strings.TrimSuffix(string(out), "\n")}, nil
}

// NewJSON marshals v as JSON, indented with indent when it is not empty.
func NewJSON(v any, indent string) (*Data, error) {
	var out []byte
	var err error
	if indent == "" {
		out, err = json.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", indent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return &Data{format: FormatJSON, content: string(out)}, nil
}

// Format returns the serialization format.
func (d *Data) Format() DataFormat { return d.format }

// Render returns the serialized value.
func (d *Data) Render() string {
	return d.content
}

// plain replaces json.Number values with int64 or float64 so YAML output shows
// numbers rather than strings.
func plain(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = plain(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

var _ piece.Piece = (*Data)(nil)
