package model

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/schema"
)

// DefineStruct derives a Kind from a struct type whose value implements piece.Piece.
//
// Fields come from the struct's exported fields (see schema.FromType for the supported
// json, description and default tags). The built piece is the struct decoded from the
// validated fields, so T may be a struct or a pointer to one.
//
// Example:
//
//	type Callout struct {
//	    Label string `json:"label" description:"Callout label" default:"Note"`
//	    Body  string `json:"body" description:"Callout text"`
//	}
//
//	func (c Callout) Render() string { return "> **" + c.Label + ":** " + c.Body }
//
//	callout := model.MustDefineStruct[Callout]("callout", "A highlighted note")
//
// Struct kinds only hold value fields; use NewKind for pieces with nested children.
func DefineStruct[T piece.Piece](name, description string) (*Kind, error) {
	typ := reflect.TypeFor[T]()
	structFields := schema.StructFields(typ)
	if structFields == nil {
		return nil, fmt.Errorf("%w: %s: %v is not a struct", ErrInvalidKind, name, typ)
	}

	fields := make([]Field, 0, len(structFields))
	for _, sf := range structFields {
		desc, _ := sf.Schema["description"].(string)
		f := Value(sf.Name, schema.Raw(desc, sf.Schema))
		if sf.Required {
			f = f.Required()
		}
		fields = append(fields, f)
	}

	build := func(f Fields) (piece.Piece, error) {
		data, err := json.Marshal(map[string]any(f))
		if err != nil {
			return nil, fmt.Errorf("failed to encode fields: %w", err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode fields: %w", err)
		}
		return v, nil
	}

	return NewKind(name, description, build, fields...)
}

// MustDefineStruct is like DefineStruct but panics on error.
func MustDefineStruct[T piece.Piece](name, description string) *Kind {
	k, err := DefineStruct[T](name, description)
	if err != nil {
		panic(err)
	}
	return k
}
