package model

import (
	"errors"
	"fmt"
	"maps"
	"reflect"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/schema"
	"gopkg.in/yaml.v3"
)

// BuildFunc turns validated fields into a piece.
//
// It runs only after every field passed validation. It may still return an error for
// cross-field rules the schema cannot express; that error is reported as a
// construction failure and no piece is produced.
type BuildFunc func(f Fields) (piece.Piece, error)

// Kind is a named, validated piece definition.
//
// A Kind declares its fields, compiles the value fields into a JSON Schema once, and
// builds pieces from field maps. Kinds are immutable and safe for concurrent use.
//
// Example:
//
//	var Heading = model.MustKind("heading", "A markdown heading",
//	    func(f model.Fields) (piece.Piece, error) {
//	        return pieces.NewHeading(f.String("text"), f.Int("level"))
//	    },
//	    model.Value("text", schema.String("Heading text").MinLength(1)).Required(),
//	    model.Value("level", schema.Integer("Heading level").Min(1).Max(6).Default(1)),
//	)
//
//	p, err := Heading.New(map[string]any{"text": "Intro", "level": 2})
type Kind struct {
	name        string
	description string
	fields      []Field
	byName      map[string]Field
	validator   *schema.Schema
	build       BuildFunc
}

// NewKind creates a Kind. Returns an error wrapping ErrInvalidKind if the definition
// is malformed (empty name, nil builder, duplicate or unnamed fields, value fields
// without a property, or a property that does not compile).
func NewKind(name, description string, build BuildFunc, fields ...Field) (*Kind, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidKind)
	}
	if build == nil {
		return nil, fmt.Errorf("%w: %s: nil build function", ErrInvalidKind, name)
	}

	k := &Kind{
		name:        name,
		description: description,
		fields:      make([]Field, 0, len(fields)),
		byName:      make(map[string]Field, len(fields)),
		build:       build,
	}

	props := make(map[string]*schema.Property)
	var required []string
	for _, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("%w: %s: unnamed field", ErrInvalidKind, name)
		}
		if f.name == KindKey {
			return nil, fmt.Errorf("%w: %s: field name %q is reserved", ErrInvalidKind, name, KindKey)
		}
		if _, dup := k.byName[f.name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidKind, name, f.name)
		}
		if f.typ == ValueField {
			if f.prop == nil {
				return nil, fmt.Errorf("%w: %s: field %q has no property", ErrInvalidKind, name, f.name)
			}
			props[f.name] = f.prop
			if f.required {
				required = append(required, f.name)
			}
		}
		k.fields = append(k.fields, f)
		k.byName[f.name] = f
	}

	validator, err := schema.Compile(schema.Object(props, required...))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidKind, name, err)
	}
	k.validator = validator

	return k, nil
}

// MustKind is like NewKind but panics on error.
// Use this for kinds defined at init time.
func MustKind(name, description string, build BuildFunc, fields ...Field) *Kind {
	k, err := NewKind(name, description, build, fields...)
	if err != nil {
		panic(err)
	}
	return k
}

// Name returns the kind name.
func (k *Kind) Name() string { return k.name }

// Description returns the kind description.
func (k *Kind) Description() string { return k.description }

// Fields returns the declared fields in declaration order.
func (k *Kind) Fields() []Field {
	return append([]Field(nil), k.fields...)
}

// Field returns the declared field with the given name.
func (k *Kind) Field(name string) (Field, bool) {
	f, ok := k.byName[name]
	return f, ok
}

// New validates values and builds a piece.
//
// Declared defaults fill in missing value fields. Keys that are not declared fields
// are ignored. When any field fails, New returns a *FieldErrors listing all failures
// and the BuildFunc is not called.
func (k *Kind) New(values map[string]any) (piece.Piece, error) {
	fields, errs := k.check(values)
	if len(errs) > 0 {
		return nil, newFieldErrors(k.name, errs, nil)
	}

	p, err := k.build(fields)
	if err != nil {
		return nil, newFieldErrors(k.name, fieldErrorsOf(err, ""), err)
	}
	if p == nil {
		return nil, newFieldErrors(k.name, []schema.FieldError{{Message: "build returned no piece"}}, nil)
	}
	return p, nil
}

// MustNew is like New but panics on error.
func (k *Kind) MustNew(values map[string]any) piece.Piece {
	p, err := k.New(values)
	if err != nil {
		panic(err)
	}
	return p
}

// check validates values against the declared fields.
func (k *Kind) check(values map[string]any) (Fields, []schema.FieldError) {
	var errs []schema.FieldError
	fields := make(Fields, len(k.fields))
	instance := make(map[string]any)

	for _, f := range k.fields {
		v, present := values[f.name]

		switch f.typ {
		case ValueField:
			if !present {
				if def, ok := f.prop.DefaultValue(); ok {
					instance[f.name] = def
				}
				continue
			}
			instance[f.name] = v

		case PieceField:
			if !present || v == nil {
				if f.required {
					errs = append(errs, schema.FieldError{Path: f.name, Message: "field is required"})
				}
				continue
			}
			p, ok := v.(piece.Piece)
			if !ok || isNilPiece(p) {
				errs = append(errs, schema.FieldError{Path: f.name, Message: fmt.Sprintf("expected a piece, got %T", v)})
				continue
			}
			fields[f.name] = p

		case PieceListField:
			if !present || v == nil {
				if f.required {
					errs = append(errs, schema.FieldError{Path: f.name, Message: "field is required"})
					continue
				}
				fields[f.name] = []piece.Piece{}
				continue
			}
			list, listErrs := toPieceList(f.name, v)
			errs = append(errs, listErrs...)
			if len(listErrs) == 0 {
				fields[f.name] = list
			}
		}
	}

	normalized, err := schema.Normalize(instance)
	if err != nil {
		errs = append(errs, schema.FieldError{Message: err.Error()})
		return nil, errs
	}
	if err := k.validator.Validate(normalized); err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) && len(ve.Fields) > 0 {
			errs = append(errs, ve.Fields...)
		} else {
			errs = append(errs, schema.FieldError{Message: err.Error()})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if m, ok := normalized.(map[string]any); ok {
		maps.Copy(fields, m)
	}
	return fields, nil
}

func toPieceList(name string, v any) ([]piece.Piece, []schema.FieldError) {
	switch list := v.(type) {
	case []piece.Piece:
		var errs []schema.FieldError
		for i, p := range list {
			if isNilPiece(p) {
				errs = append(errs, schema.FieldError{Path: schema.JoinPath(name, fmt.Sprint(i)), Message: "expected a piece, got nil"})
			}
		}
		return append([]piece.Piece(nil), list...), errs

	case []any:
		out := make([]piece.Piece, 0, len(list))
		var errs []schema.FieldError
		for i, item := range list {
			p, ok := item.(piece.Piece)
			if !ok || isNilPiece(p) {
				errs = append(errs, schema.FieldError{
					Path:    schema.JoinPath(name, fmt.Sprint(i)),
					Message: fmt.Sprintf("expected a piece, got %T", item),
				})
				continue
			}
			out = append(out, p)
		}
		return out, errs

	default:
		rv := reflect.ValueOf(v)
		if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || !rv.Type().Elem().Implements(pieceType) {
			return nil, []schema.FieldError{{Path: name, Message: fmt.Sprintf("expected a list of pieces, got %T", v)}}
		}
		out := make([]piece.Piece, 0, rv.Len())
		var errs []schema.FieldError
		for i := range rv.Len() {
			p, _ := rv.Index(i).Interface().(piece.Piece)
			if isNilPiece(p) {
				errs = append(errs, schema.FieldError{Path: schema.JoinPath(name, fmt.Sprint(i)), Message: "expected a piece, got nil"})
				continue
			}
			out = append(out, p)
		}
		return out, errs
	}
}

var pieceType = reflect.TypeFor[piece.Piece]()

// isNilPiece reports nil interfaces and typed nil pointers.
func isNilPiece(p piece.Piece) bool {
	if p == nil {
		return true
	}
	rv := reflect.ValueOf(p)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Schema returns the JSON Schema describing the kind, including piece fields
// (marked with "x-piece": true).
func (k *Kind) Schema() map[string]any {
	props := make(map[string]any, len(k.fields))
	var required []string
	for _, f := range k.fields {
		props[f.name] = f.schemaMap()
		if f.required {
			required = append(required, f.name)
		}
	}
	s := map[string]any{
		"title":      k.name,
		"type":       "object",
		"properties": props,
	}
	if k.description != "" {
		s["description"] = k.description
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// Describe renders the kind's schema as YAML for documentation.
func (k *Kind) Describe() string {
	data, err := yaml.Marshal(k.Schema())
	if err != nil {
		return fmt.Sprintf("%s: %s\n", k.name, k.description)
	}
	return string(data)
}
