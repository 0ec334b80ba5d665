package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/schema"
)

// FieldType distinguishes plain values from nested pieces.
type FieldType int

const (
	// ValueField holds a JSON-compatible value validated by a JSON Schema property.
	ValueField FieldType = iota
	// PieceField holds a single nested piece.
	PieceField
	// PieceListField holds an ordered list of nested pieces.
	PieceListField
)

func (t FieldType) String() string {
	switch t {
	case ValueField:
		return "value"
	case PieceField:
		return "piece"
	case PieceListField:
		return "piece list"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field declares one named field of a Kind.
type Field struct {
	name        string
	typ         FieldType
	prop        *schema.Property
	description string
	required    bool
}

// Value declares a value field validated by prop.
//
//	model.Value("level", schema.Integer("Heading level").Min(1).Max(6).Default(1))
func Value(name string, prop *schema.Property) Field {
	f := Field{name: name, typ: ValueField, prop: prop}
	if prop != nil {
		f.description = prop.Description()
	}
	return f
}

// Piece declares a field holding one nested piece.
func Piece(name, description string) Field {
	return Field{name: name, typ: PieceField, description: description}
}

// PieceList declares a field holding an ordered list of nested pieces.
// A missing optional piece list is treated as empty.
func PieceList(name, description string) Field {
	return Field{name: name, typ: PieceListField, description: description}
}

// Required returns a copy of the field that must be present.
func (f Field) Required() Field {
	f.required = true
	return f
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Type returns the field type.
func (f Field) Type() FieldType { return f.typ }

// Description returns the field description.
func (f Field) Description() string { return f.description }

// IsRequired reports whether the field must be present.
func (f Field) IsRequired() bool { return f.required }

// schemaMap returns the documentation schema for the field.
func (f Field) schemaMap() map[string]any {
	switch f.typ {
	case PieceField:
		m := map[string]any{"type": "object", "x-piece": true}
		if f.description != "" {
			m["description"] = f.description
		}
		return m
	case PieceListField:
		m := map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "object", "x-piece": true},
		}
		if f.description != "" {
			m["description"] = f.description
		}
		return m
	default:
		return f.prop.Map()
	}
}

// Fields holds validated field values passed to a BuildFunc.
//
// Value fields hold JSON data (string, bool, json.Number, []any, map[string]any).
// Piece fields hold piece.Piece and piece-list fields hold []piece.Piece.
// The accessors return zero values for missing fields, which only happens for
// optional fields without defaults since the values were validated already.
type Fields map[string]any

// Has reports whether the field is present.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Value returns the raw value of a field.
func (f Fields) Value(name string) any {
	return f[name]
}

// String returns a string field.
func (f Fields) String(name string) string {
	s, _ := f[name].(string)
	return s
}

// Bool returns a boolean field.
func (f Fields) Bool(name string) bool {
	b, _ := f[name].(bool)
	return b
}

// Int returns an integer field.
func (f Fields) Int(name string) int {
	switch v := f[name].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if fl, err := v.Float64(); err == nil {
			return int(math.Round(fl))
		}
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(math.Round(v))
	}
	return 0
}

// Float returns a number field.
func (f Fields) Float(name string) float64 {
	switch v := f[name].(type) {
	case json.Number:
		fl, _ := v.Float64()
		return fl
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Strings returns an array-of-strings field.
func (f Fields) Strings(name string) []string {
	switch v := f[name].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Piece returns a piece field.
func (f Fields) Piece(name string) piece.Piece {
	p, _ := f[name].(piece.Piece)
	return p
}

// Pieces returns a piece-list field.
func (f Fields) Pieces(name string) []piece.Piece {
	ps, _ := f[name].([]piece.Piece)
	return append([]piece.Piece(nil), ps...)
}
