package piece

import "reflect"

// DetectCycle reports whether root reaches itself through Parent links.
//
// Generate does not check for cycles: a piece that contains itself recurses until the
// goroutine stack is exhausted, which the runtime reports as a fatal error. Call
// DetectCycle (or GenerateChecked) first when that is possible.
//
// A cycle is found when a pointer piece, or the backing array of a non-empty
// Children slice, appears twice on the current path. The second form catches value
// composites whose children slice holds the composite itself. The same piece
// appearing twice in different branches is a shared subtree, not a cycle.
func DetectCycle(root Piece) error {
	if root == nil {
		return nil
	}
	d := &cycleDetector{
		onPath:       make(map[Piece]bool),
		slicesOnPath: make(map[sliceID]bool),
	}
	return d.visit(root, nil)
}

// sliceID identifies a children slice by its backing array and length.
type sliceID struct {
	ptr uintptr
	len int
}

type cycleDetector struct {
	onPath       map[Piece]bool
	slicesOnPath map[sliceID]bool
	// done holds pointer pieces whose subtrees are known to be acyclic.
	done map[Piece]bool
}

func (d *cycleDetector) visit(p Piece, path []int) error {
	tracked := isPointer(p)
	if tracked {
		if d.onPath[p] {
			return &CycleError{Path: append([]int(nil), path...)}
		}
		if d.done[p] {
			return nil
		}
		d.onPath[p] = true
		defer delete(d.onPath, p)
	}

	if parent, ok := p.(Parent); ok {
		children := parent.Children()
		if len(children) > 0 {
			id := sliceID{ptr: reflect.ValueOf(children).Pointer(), len: len(children)}
			if d.slicesOnPath[id] {
				return &CycleError{Path: append([]int(nil), path...)}
			}
			d.slicesOnPath[id] = true
			defer delete(d.slicesOnPath, id)
		}
		for i, child := range children {
			if child == nil {
				continue
			}
			if err := d.visit(child, append(path, i)); err != nil {
				return err
			}
		}
	}

	if tracked {
		if d.done == nil {
			d.done = make(map[Piece]bool)
		}
		d.done[p] = true
	}
	return nil
}

func isPointer(p Piece) bool {
	return reflect.ValueOf(p).Kind() == reflect.Pointer
}
