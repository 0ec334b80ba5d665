package model

import (
	"cmp"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/schema"
	"gopkg.in/yaml.v3"
)

const (
	// KindKey is the document key naming a node's kind.
	KindKey = "kind"

	// StackKindName is the name of the built-in stack kind.
	StackKindName = "stack"
)

// Registry maps kind names to kinds and builds piece trees from documents.
//
// A document node is a mapping with a "kind" key plus the kind's fields. Piece and
// piece-list fields may hold nested nodes, which are built first:
//
//	kind: stack
//	separator: "\n\n"
//	pieces:
//	  - kind: heading
//	    text: Release notes
//	  - kind: text
//	    content: Nested stacks are supported.
//
// A top-level sequence is shorthand for a stack of its items.
type Registry struct {
	mu        sync.RWMutex
	kinds     map[string]*Kind
	separator string
}

// NewRegistry creates a registry holding the built-in "stack" kind.
func NewRegistry() *Registry {
	r := &Registry{
		kinds:     make(map[string]*Kind),
		separator: piece.DefaultSeparator,
	}
	stack := StackKind()
	r.kinds[stack.Name()] = stack
	return r
}

// StackKind returns the kind for piece.Stack: an optional "pieces" list and a
// "separator" defaulting to piece.DefaultSeparator.
func StackKind() *Kind {
	return MustKind(StackKindName, "Ordered pieces joined by a separator",
		func(f Fields) (piece.Piece, error) {
			s, err := piece.NewStack(f.Pieces("pieces")...)
			if err != nil {
				return nil, err
			}
			return s.WithSeparator(f.String("separator")), nil
		},
		PieceList("pieces", "Pieces rendered in order"),
		Value("separator", schema.String("Text placed between consecutive pieces").Default(piece.DefaultSeparator)),
	)
}

// WithSequenceSeparator sets the separator used when a document's top level is a
// sequence. Returns self for chaining.
func (r *Registry) WithSequenceSeparator(sep string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.separator = sep
	return r
}

// Register adds kinds to the registry.
// Returns an error wrapping ErrDuplicateKind if a name is already taken; kinds
// before the duplicate stay registered.
func (r *Registry) Register(kinds ...*Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		if k == nil {
			return fmt.Errorf("%w: nil kind", ErrInvalidKind)
		}
		if _, exists := r.kinds[k.Name()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKind, k.Name())
		}
		r.kinds[k.Name()] = k
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kinds ...*Kind) *Registry {
	if err := r.Register(kinds...); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// Kinds returns all registered kinds sorted by name.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Build constructs a piece tree from a document node.
// On failure it returns a *FieldErrors whose paths point into the document
// ("pieces.1.text").
func (r *Registry) Build(doc map[string]any) (piece.Piece, error) {
	return r.build(doc, "")
}

// BuildValue constructs a piece tree from decoded document data: a mapping node or a
// sequence of nodes (an implicit stack).
func (r *Registry) BuildValue(doc any) (piece.Piece, error) {
	switch v := doc.(type) {
	case nil:
		return nil, ErrEmptyDocument
	case map[string]any:
		return r.Build(v)
	case []any:
		r.mu.RLock()
		sep := r.separator
		r.mu.RUnlock()
		return r.Build(map[string]any{
			KindKey:     StackKindName,
			"pieces":    v,
			"separator": sep,
		})
	default:
		return nil, newFieldErrors("", []schema.FieldError{{
			Message: fmt.Sprintf("document must be a mapping or a sequence, got %T", doc),
		}}, nil)
	}
}

// DecodeYAML parses a YAML document and builds its piece tree.
func (r *Registry) DecodeYAML(data []byte) (piece.Piece, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return r.BuildValue(doc)
}

// DecodeJSON parses a JSON document and builds its piece tree.
func (r *Registry) DecodeJSON(data []byte) (piece.Piece, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return r.BuildValue(doc)
}

func (r *Registry) build(doc map[string]any, path string) (piece.Piece, error) {
	kindPath := schema.JoinPath(path, KindKey)
	name, _ := doc[KindKey].(string)
	if name == "" {
		return nil, newFieldErrors("", []schema.FieldError{{Path: kindPath, Message: "field is required"}}, nil)
	}
	k, ok := r.Lookup(name)
	if !ok {
		return nil, newFieldErrors(name, []schema.FieldError{{
			Path:    kindPath,
			Message: fmt.Sprintf("unknown kind %q", name),
		}}, ErrUnknownKind)
	}

	values := make(map[string]any, len(doc))
	var errs []schema.FieldError
	var cause error
	for key, v := range doc {
		if key == KindKey {
			continue
		}
		f, declared := k.Field(key)
		if !declared {
			continue
		}
		fieldPath := schema.JoinPath(path, key)

		switch f.Type() {
		case PieceField:
			node, isNode := v.(map[string]any)
			if !isNode {
				values[key] = v
				continue
			}
			child, err := r.build(node, fieldPath)
			if err != nil {
				errs = append(errs, fieldErrorsOf(err, "")...)
				cause = cmp.Or(cause, err)
				values[key] = failedPiece{}
				continue
			}
			values[key] = child

		case PieceListField:
			items, isList := v.([]any)
			if !isList {
				values[key] = v
				continue
			}
			built := make([]any, len(items))
			for i, item := range items {
				node, isNode := item.(map[string]any)
				if !isNode {
					built[i] = item
					continue
				}
				child, err := r.build(node, schema.JoinPath(fieldPath, fmt.Sprint(i)))
				if err != nil {
					errs = append(errs, fieldErrorsOf(err, "")...)
					cause = cmp.Or(cause, err)
					built[i] = failedPiece{}
					continue
				}
				built[i] = child
			}
			values[key] = built

		default:
			values[key] = v
		}
	}
	if len(errs) > 0 {
		// Children failed, but the node's own fields are still reported.
		_, own := k.check(values)
		errs = append(errs, prefixFieldErrors(own, path)...)
		return nil, newFieldErrors(name, errs, cause)
	}

	p, err := k.New(values)
	if err != nil {
		return nil, newFieldErrors(name, fieldErrorsOf(err, path), err)
	}
	return p, nil
}

// failedPiece stands in for a child that failed to build, so the parent's own
// fields can still be checked.
type failedPiece struct{}

func (failedPiece) Render() string { return "" }
