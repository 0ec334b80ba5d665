package piece

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Construction and cycle-detection errors.
var (
	ErrNilPiece = errors.New("piece is nil")
	ErrCycle    = errors.New("piece contains itself")
)

// CycleError reports a piece reachable from itself through Parent links.
// Path holds the child indexes walked from the root to the repeated piece.
type CycleError struct {
	Path []int
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, idx := range e.Path {
		parts[i] = strconv.Itoa(idx)
	}
	return fmt.Sprintf("%v: root/%s", ErrCycle, strings.Join(parts, "/"))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}
