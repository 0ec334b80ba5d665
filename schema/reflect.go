package schema

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// FromType creates a JSON Schema from a Go type using reflection.
// Supports: primitives, pointers, structs, slices, maps, time.Time, time.Duration.
//
// Struct fields honor these tags:
//   - json: field naming and omitempty (omitempty or pointer fields are optional)
//   - description: adds a description to the field schema
//   - default: default value, parsed according to the field's kind
func FromType(t reflect.Type) map[string]any {
	if t == nil {
		return map[string]any{"type": "null"}
	}

	// Handle pointer types
	if t.Kind() == reflect.Ptr {
		schema := FromType(t.Elem())
		// Pointers are nullable
		if typeVal, ok := schema["type"].(string); ok {
			schema["type"] = []string{typeVal, "null"}
		}
		return schema
	}

	if t == reflect.TypeFor[time.Time]() {
		return map[string]any{
			"type":   "string",
			"format": "date-time",
		}
	}

	if t == reflect.TypeFor[time.Duration]() {
		return map[string]any{
			"type":        "string",
			"description": "Duration string (e.g., '1h30m', '2s')",
		}
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}

	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}

	case reflect.Bool:
		return map[string]any{"type": "boolean"}

	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": FromType(t.Elem()),
		}

	case reflect.Map:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": FromType(t.Elem()),
		}

	case reflect.Struct:
		return structSchema(t)

	default:
		return map[string]any{}
	}
}

// StructField describes one exported struct field as seen by FromType.
type StructField struct {
	Name     string
	Schema   map[string]any
	Required bool
}

// StructFields returns the schema of each exported field of struct type t, in
// declaration order. Non-struct types return nil.
func StructFields(t reflect.Type) []StructField {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fields []StructField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		omitempty := false

		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
			for _, part := range parts[1:] {
				if part == "omitempty" {
					omitempty = true
				}
			}
		}

		fieldSchema := FromType(field.Type)

		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema["description"] = desc
		}

		hasDefault := false
		if raw, ok := field.Tag.Lookup("default"); ok {
			if def, ok := parseDefault(field.Type, raw); ok {
				fieldSchema["default"] = def
				hasDefault = true
			}
		}

		fields = append(fields, StructField{
			Name:     fieldName,
			Schema:   fieldSchema,
			Required: !omitempty && !hasDefault && field.Type.Kind() != reflect.Ptr,
		})
	}
	return fields
}

func structSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := make([]string, 0)

	for _, f := range StructFields(t) {
		properties[f.Name] = f.Schema
		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// parseDefault converts a default tag into a value of the field's JSON type.
func parseDefault(t reflect.Type, raw string) (any, bool) {
	switch t.Kind() {
	case reflect.String:
		return raw, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(raw, 10, 64)
		return v, err == nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		return v, err == nil
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		return v, err == nil
	default:
		return nil, false
	}
}
