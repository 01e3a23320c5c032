package lazy

import "iter"

// A List is a random-access view. Get computes only the requested element.
type List[T any] struct {
	n   int
	get func(i int) T
}

// ListOf returns a List over items. The slice is not copied.
func ListOf[T any](items []T) List[T] {
	return List[T]{n: len(items), get: func(i int) T { return items[i] }}
}

// TransformList returns a List whose element i is fn(l.Get(i)). fn is
// called on every Get; results are not cached.
func TransformList[In, Out any](l List[In], fn func(In) Out) List[Out] {
	return List[Out]{n: l.n, get: func(i int) Out { return fn(l.get(i)) }}
}

// Get returns element i. It panics if i is out of range.
func (l List[T]) Get(i int) T {
	if i < 0 || i >= l.n {
		panic("lazy: List index out of range")
	}
	return l.get(i)
}

// Len returns the number of elements.
func (l List[T]) Len() int { return l.n }

// All yields each index and element in order.
func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < l.n; i++ {
			if !yield(i, l.get(i)) {
				return
			}
		}
	}
}

// View returns the elements of l as a View.
func (l List[T]) View() View[T] {
	return From(func(yield func(T) bool) {
		for _, x := range l.All() {
			if !yield(x) {
				return
			}
		}
	})
}
