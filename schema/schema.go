// Package schema provides JSON Schema building and validation utilities.
//
// # Quick Start
//
//	kind := model.MustKind("heading", "A markdown heading", buildHeading,
//	    model.Value("text", schema.String("Heading text").MinLength(1)).Required(),
//	    model.Value("level", schema.Integer("Heading level").Min(1).Max(6).Default(1)),
//	)
//
// Kinds validate field values against the compiled schema before a piece is built.
// See [Object], [Property], and individual builder functions for detailed documentation.
package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a JSON Schema definition.
// It provides both the raw map representation (for serialization and documentation)
// and a compiled validator (for construction-time validation).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates the given data against the schema.
// Returns nil if valid, or a *ValidationError listing every failing field.
//
// data must hold JSON-compatible values; use [Normalize] for values that came from
// Go code or a YAML decoder.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	err := s.compiled.Validate(data)
	if err != nil {
		return newValidationError(err)
	}
	return nil
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// Returns an error if the schema is invalid.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	// Marshal the schema to JSON for the compiler
	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	// Unmarshal into the format expected by jsonschema
	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Normalize converts Go values into the JSON data model the validator expects
// (maps with string keys, []any, json.Number, string, bool, nil).
// Integers decoded by YAML and typed slices built in Go both go through a JSON round trip.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	out, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse value: %w", err)
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties.
// Pass property names as variadic arguments to mark them as required.
//
// Example:
//
//	// All properties optional
//	schema.Object(map[string]*schema.Property{
//	    "text":  schema.String("Heading text"),
//	    "level": schema.Integer("Heading level"),
//	})
//
//	// "text" is required
//	schema.Object(map[string]*schema.Property{
//	    "text":  schema.String("Heading text"),
//	    "level": schema.Integer("Heading level"),
//	}, "text")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.Map()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	format      string
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	minItems    *int
	pattern     string
	items       map[string]any
	properties  map[string]any
	required    []string
	def         any // default value
	raw         map[string]any
}

// Map returns the JSON Schema map for the property.
func (p *Property) Map() map[string]any {
	if p.raw != nil {
		m := maps.Clone(p.raw)
		if p.description != "" {
			m["description"] = p.description
		}
		if p.def != nil {
			m["default"] = p.def
		}
		return m
	}

	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.format != "" {
		m["format"] = p.format
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.minItems != nil {
		m["minItems"] = *p.minItems
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.items != nil {
		m["items"] = p.items
	}
	if p.properties != nil {
		m["properties"] = p.properties
	}
	if len(p.required) > 0 {
		m["required"] = p.required
	}
	if p.def != nil {
		m["default"] = p.def
	}

	return m
}

// Description returns the property's description.
func (p *Property) Description() string {
	return p.description
}

// DefaultValue returns the default value and whether one was set.
func (p *Property) DefaultValue() (any, bool) {
	if p.def != nil {
		return p.def, true
	}
	if p.raw != nil {
		def, ok := p.raw["default"]
		return def, ok
	}
	return nil, false
}

// String creates a string property.
//
// Example:
//
//	schema.String("Heading text")
//	schema.String("Language").Pattern(`^[a-z0-9+#-]*$`)
//	schema.String("Tag name").MinLength(1).MaxLength(64)
//	schema.String("Style").Enum("ordered", "bullet")
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
//
// Example:
//
//	schema.Integer("Heading level").Min(1).Max(6).Default(1)
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property (floating point).
//
// Example:
//
//	schema.Number("Weight").Min(0)
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
//
// Example:
//
//	schema.Boolean("Render as a numbered list").Default(false)
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
//
// Example:
//
//	// Array of strings
//	schema.Array("List of tags", map[string]any{"type": "string"})
//
//	// Array of objects
//	schema.Array("Rows", schema.Object(map[string]*schema.Property{
//	    "name": schema.String("Row name"),
//	}))
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Any creates a property that accepts any JSON value.
//
// Example:
//
//	schema.Any("Arbitrary data rendered as YAML")
func Any(description string) *Property {
	return &Property{description: description}
}

// Raw wraps an existing JSON Schema map as a property.
// Builder methods other than Default do not apply to raw properties.
func Raw(description string, m map[string]any) *Property {
	return &Property{description: description, raw: maps.Clone(m)}
}

// Enum sets allowed values for the property.
//
// Example:
//
//	schema.String("Status").Enum("pending", "active", "closed")
//	schema.Integer("Priority").Enum(1, 2, 3)
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Format sets the format for string validation.
//
// Common formats: "email", "date-time", "date", "time", "uri", "uuid", "ipv4", "ipv6"
func (p *Property) Format(format string) *Property {
	p.format = format
	return p
}

// Min sets the minimum value for number/integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum value for number/integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
//
// Example:
//
//	schema.String("Heading text").MinLength(1)
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}

// MinItems sets the minimum number of items for array properties.
func (p *Property) MinItems(min int) *Property {
	p.minItems = &min
	return p
}

// Pattern sets a regex pattern for string validation.
//
// Example:
//
//	schema.String("Tag name").Pattern(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// Default sets the default value for the property.
//
// Example:
//
//	schema.Integer("Level").Default(1)
//	schema.String("Separator").Default("\n")
//	schema.Boolean("Ordered").Default(false)
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
