// Package list implements persistent list.
package list

// List is a persistent list. The zero value is not usable; start from
// Empty[T]().
type List[T any] interface {
	// Len returns the number of values in the list.
	Len() int
	// Cons returns a new list with an additional value in the front.
	Cons(T) List[T]
	// First returns the first value in the list.
	First() T
	// Rest returns the list after the first value.
	Rest() List[T]
}

// Empty returns an empty list.
func Empty[T any]() List[T] { return &list[T]{} }

type list[T any] struct {
	first T
	rest  *list[T]
	count int
}

func (l *list[T]) Len() int {
	return l.count
}

func (l *list[T]) Cons(val T) List[T] {
	return &list[T]{val, l, l.count + 1}
}

func (l *list[T]) First() T {
	return l.first
}

func (l *list[T]) Rest() List[T] {
	if l.rest == nil {
		return l
	}
	return l.rest
}

// Find returns the first value in the list that satisfies f.
func Find[T any](l List[T], f func(T) bool) (T, bool) {
	for ; l.Len() > 0; l = l.Rest() {
		if v := l.First(); f(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Each calls f with every value in the list, from the front. It stops when f
// returns false.
func Each[T any](l List[T], f func(T) bool) {
	for ; l.Len() > 0; l = l.Rest() {
		if !f(l.First()) {
			return
		}
	}
}
