package main

import (
	"slices"
)

const MaxUndo = 64

type UndoFunc = func()
type UndoableFunction = func() UndoFunc

// History records view state changes so they can be reverted in order.
type History struct {
	undoFuncs []UndoFunc
}

func (h *History) Dispatch(f UndoableFunction) {
	undoFunc := f()
	if undoFunc == nil {
		return
	}
	h.undoFuncs = append(h.undoFuncs, undoFunc)
	if len(h.undoFuncs) > MaxUndo {
		h.undoFuncs = slices.Delete(h.undoFuncs, 0, len(h.undoFuncs)-MaxUndo)
	}
}

func (h *History) Undo() bool {
	if len(h.undoFuncs) == 0 {
		return false
	}
	last := h.undoFuncs[len(h.undoFuncs)-1]
	h.undoFuncs = h.undoFuncs[:len(h.undoFuncs)-1]
	last()
	return true
}

func (h *History) Len() int {
	return len(h.undoFuncs)
}

// SetUndoable returns an action that sets o to v and restores the
// previous value on undo. It records nothing if the value is unchanged.
func SetUndoable[T comparable](o *Observable[T], v T) UndoableFunction {
	return func() UndoFunc {
		prev := o.Get()
		if prev == v {
			return nil
		}
		o.Set(v)
		return func() { o.Set(prev) }
	}
}
