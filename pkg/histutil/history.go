// Package histutil implements a linear undo/redo history of immutable
// snapshots.
package histutil

import "errors"

// Errors returned by History methods.
var (
	ErrNoUndo       = errors.New("nothing to undo")
	ErrNoRedo       = errors.New("nothing to redo")
	ErrEmptyHistory = errors.New("empty history")
)

// History is a stack of snapshots with a current position. The zero value is
// an empty history; use New to start one with an initial snapshot.
//
// History has value semantics: methods return a new History and never modify
// the receiver or any History derived from it.
type History[T any] struct {
	stack []T
	index int
}

// New returns a history containing just the initial snapshot.
func New[T any](initial T) History[T] {
	return History[T]{stack: []T{initial}}
}

// Do discards all snapshots after the current one and appends the given
// snapshot, which becomes the current one.
func (h History[T]) Do(snapshot T) History[T] {
	if len(h.stack) == 0 {
		return New(snapshot)
	}
	// The capacity limit makes append copy instead of overwriting a future
	// that other Histories may still refer to.
	kept := h.stack[: h.index+1 : h.index+1]
	return History[T]{append(kept, snapshot), h.index + 1}
}

// Undo moves to the previous snapshot.
func (h History[T]) Undo() (History[T], error) {
	if !h.CanUndo() {
		return h, ErrNoUndo
	}
	return History[T]{h.stack, h.index - 1}, nil
}

// Redo moves to the next snapshot.
func (h History[T]) Redo() (History[T], error) {
	if !h.CanRedo() {
		return h, ErrNoRedo
	}
	return History[T]{h.stack, h.index + 1}, nil
}

// CanUndo reports whether there is a snapshot before the current one.
func (h History[T]) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether there is a snapshot after the current one.
func (h History[T]) CanRedo() bool { return h.index < len(h.stack)-1 }

// Current returns the current snapshot.
func (h History[T]) Current() (T, error) {
	if len(h.stack) == 0 {
		var zero T
		return zero, ErrEmptyHistory
	}
	return h.stack[h.index], nil
}

// Len returns the number of snapshots, including those that can be redone.
func (h History[T]) Len() int { return len(h.stack) }

// Index returns the position of the current snapshot.
func (h History[T]) Index() int { return h.index }
