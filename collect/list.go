package collect

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/errdefs"
)

// List is an ordered, index-addressable collection.
type List[T any] interface {
	// Add appends v and reports whether the list changed.
	Add(v T) bool
	// Insert places v at index i, shifting later elements.
	Insert(i int, v T) error
	// Set replaces the element at index i.
	Set(i int, v T) error
	Get(i int) (T, error)
	RemoveAt(i int) (T, error)
	Len() int
	All() iter.Seq2[int, T]
}

func indexError(i, n int) error {
	return errors.Wrapf(errdefs.ErrInvalidArgument, "collect: index %d out of range [0:%d]", i, n)
}

// ArrayList is a slice-backed List.
type ArrayList[T any] struct {
	elems []T
}

// NewArrayList returns an ArrayList holding elems.
func NewArrayList[T any](elems ...T) *ArrayList[T] {
	return &ArrayList[T]{elems: append([]T(nil), elems...)}
}

func (l *ArrayList[T]) Add(v T) bool {
	l.elems = append(l.elems, v)
	return true
}

func (l *ArrayList[T]) Insert(i int, v T) error {
	if i < 0 || i > len(l.elems) {
		return indexError(i, len(l.elems))
	}
	var zero T
	l.elems = append(l.elems, zero)
	copy(l.elems[i+1:], l.elems[i:])
	l.elems[i] = v
	return nil
}

func (l *ArrayList[T]) Set(i int, v T) error {
	if i < 0 || i >= len(l.elems) {
		return indexError(i, len(l.elems))
	}
	l.elems[i] = v
	return nil
}

func (l *ArrayList[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(l.elems) {
		var zero T
		return zero, indexError(i, len(l.elems))
	}
	return l.elems[i], nil
}

func (l *ArrayList[T]) RemoveAt(i int) (T, error) {
	if i < 0 || i >= len(l.elems) {
		var zero T
		return zero, indexError(i, len(l.elems))
	}
	v := l.elems[i]
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
	return v, nil
}

func (l *ArrayList[T]) Len() int { return len(l.elems) }

func (l *ArrayList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.elems {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements.
func (l *ArrayList[T]) Slice() []T { return append([]T(nil), l.elems...) }

// ConstrainedList wraps a List and drops every element that does not satisfy
// its constraint. Only Add, Insert and Set consult the constraint; every
// other method is passed to the wrapped List unchanged.
type ConstrainedList[T any] struct {
	delegate List[T]
	accept   func(T) bool
}

var _ List[int] = (*ConstrainedList[int])(nil)

// NewConstrainedList wraps delegate. It fails with an
// [errdefs.ErrNullArgument] error if delegate or accept is nil.
func NewConstrainedList[T any](delegate List[T], accept func(T) bool) (*ConstrainedList[T], error) {
	if delegate == nil || accept == nil {
		return nil, errors.Wrap(errdefs.ErrNullArgument, "collect: constrained list")
	}
	return &ConstrainedList[T]{delegate: delegate, accept: accept}, nil
}

// Add appends v if it is accepted and reports whether it was.
func (l *ConstrainedList[T]) Add(v T) bool {
	if !l.accept(v) {
		return false
	}
	return l.delegate.Add(v)
}

// Insert places v at index i if it is accepted. A rejected v is silently
// dropped.
func (l *ConstrainedList[T]) Insert(i int, v T) error {
	if !l.accept(v) {
		return nil
	}
	return l.delegate.Insert(i, v)
}

// Set replaces the element at index i if v is accepted. A rejected v fails
// with [errdefs.ErrInvalidArgument].
func (l *ConstrainedList[T]) Set(i int, v T) error {
	if !l.accept(v) {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "collect: value %v rejected", v)
	}
	return l.delegate.Set(i, v)
}

func (l *ConstrainedList[T]) Get(i int) (T, error)      { return l.delegate.Get(i) }
func (l *ConstrainedList[T]) RemoveAt(i int) (T, error) { return l.delegate.RemoveAt(i) }
func (l *ConstrainedList[T]) Len() int                  { return l.delegate.Len() }
func (l *ConstrainedList[T]) All() iter.Seq2[int, T]    { return l.delegate.All() }
