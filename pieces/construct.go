package pieces

import (
	"fmt"

	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
)

// construct runs values through kind so Go constructors and documents share one
// validation path.
func construct[T piece.Piece](kind *model.Kind, values map[string]any) (T, error) {
	var zero T
	p, err := kind.New(values)
	if err != nil {
		return zero, err
	}
	t, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("kind %s built %T, want %T", kind.Name(), p, zero)
	}
	return t, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
