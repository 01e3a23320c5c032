// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package lazy provides composable, deferred views over sequences.
//
// Building a View does no work: transformations run element by element as
// the view is consumed, so side effects in a mapping function happen only
// for consumed elements and in iteration order. A View can be iterated
// again when its source can.
//
// Cycle and Iterate produce infinite views. They must be bounded with Limit,
// or consumed by a short-circuiting terminal such as First or AnyMatch,
// before any other terminal is called. Collect or Size on an unbounded view
// never returns.
//
// A View is not safe for concurrent iteration unless its source is.
package lazy

import (
	"iter"
	"slices"

	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/collect"
	"github.com/floppywaste/gutil/errdefs"
	"github.com/floppywaste/gutil/strutil"
)

// A View is a lazily evaluated sequence of T.
type View[T any] struct {
	seq iter.Seq[T]
}

// From returns a View over seq. A nil seq is an empty view.
func From[T any](seq iter.Seq[T]) View[T] {
	return View[T]{seq: seq}
}

// Of returns a View over items. The slice is not copied.
func Of[T any](items ...T) View[T] {
	return From(slices.Values(items))
}

// All returns the underlying sequence.
func (v View[T]) All() iter.Seq[T] {
	if v.seq == nil {
		return func(func(T) bool) {}
	}
	return v.seq
}

// Map returns a View that yields fn(x) for each x of v.
func Map[In, Out any](v View[In], fn func(In) Out) View[Out] {
	return From(func(yield func(Out) bool) {
		for in := range v.All() {
			if !yield(fn(in)) {
				return
			}
		}
	})
}

// TryMap is like Map for a fallible fn. The sequence yields the result of
// each element; after the first error it stops.
func TryMap[In, Out any](v View[In], fn func(In) (Out, error)) iter.Seq2[Out, error] {
	return func(yield func(Out, error) bool) {
		for in := range v.All() {
			out, err := fn(in)
			if !yield(out, err) || err != nil {
				return
			}
		}
	}
}

// CollectErr drains seq into a slice, returning the first error.
func CollectErr[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Filter returns a View of the elements of v for which pred holds.
func Filter[T any](v View[T], pred func(T) bool) View[T] {
	return From(func(yield func(T) bool) {
		for x := range v.All() {
			if pred(x) && !yield(x) {
				return
			}
		}
	})
}

// Filter returns a View of the elements of v for which pred holds.
func (v View[T]) Filter(pred func(T) bool) View[T] { return Filter(v, pred) }

// FlatMap returns a View of the concatenation of fn(x) for each x of v.
func FlatMap[In, Out any](v View[In], fn func(In) []Out) View[Out] {
	return From(func(yield func(Out) bool) {
		for in := range v.All() {
			for _, out := range fn(in) {
				if !yield(out) {
					return
				}
			}
		}
	})
}

// Concat returns a View of the elements of each of views in turn.
func Concat[T any](views ...View[T]) View[T] {
	return From(func(yield func(T) bool) {
		for _, v := range views {
			for x := range v.All() {
				if !yield(x) {
					return
				}
			}
		}
	})
}

// Limit returns a View of at most the first n elements of v. It stops
// pulling from v once n elements have been yielded.
func (v View[T]) Limit(n int) View[T] {
	return From(func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for x := range v.All() {
			if !yield(x) {
				return
			}
			if i++; i >= n {
				return
			}
		}
	})
}

// Skip returns a View without the first n elements of v.
func (v View[T]) Skip(n int) View[T] {
	return From(func(yield func(T) bool) {
		i := 0
		for x := range v.All() {
			if i < n {
				i++
				continue
			}
			if !yield(x) {
				return
			}
		}
	})
}

// Cycle returns an infinite View that repeats v. Cycling an empty view
// yields nothing. The result must be bounded, see the package docs.
func (v View[T]) Cycle() View[T] {
	return From(func(yield func(T) bool) {
		for {
			empty := true
			for x := range v.All() {
				empty = false
				if !yield(x) {
					return
				}
			}
			if empty {
				return
			}
		}
	})
}

// Iterate returns the infinite View seed, next(seed), next(next(seed)), ...
// The result must be bounded, see the package docs.
func Iterate[T any](seed T, next func(T) T) View[T] {
	return From(func(yield func(T) bool) {
		for x := seed; yield(x); x = next(x) {
		}
	})
}

// Partition returns a View of consecutive chunks of v of exactly size
// elements; the last chunk may be shorter. Each chunk is a new slice. A size
// <= 0 fails with [errdefs.ErrInvalidArgument].
func Partition[T any](v View[T], size int) (View[[]T], error) {
	if size <= 0 {
		return View[[]T]{}, errors.Wrapf(errdefs.ErrInvalidArgument, "lazy: partition size %d", size)
	}
	return From(func(yield func([]T) bool) {
		chunk := make([]T, 0, size)
		for x := range v.All() {
			chunk = append(chunk, x)
			if len(chunk) == size {
				if !yield(chunk) {
					return
				}
				chunk = make([]T, 0, size)
			}
		}
		if len(chunk) > 0 {
			yield(chunk)
		}
	}), nil
}

// IndexBy returns a map from key(x) to x for each x of v. Two elements with
// the same key fail with [errdefs.ErrDuplicateKey].
func IndexBy[T any, K comparable](v View[T], key func(T) K) (map[K]T, error) {
	m := make(map[K]T)
	for x := range v.All() {
		k := key(x)
		if _, dup := m[k]; dup {
			return nil, errors.Wrapf(errdefs.ErrDuplicateKey, "lazy: index key %v", k)
		}
		m[k] = x
	}
	return m, nil
}

// GroupBy groups the elements of v by key. Elements sharing a key keep
// their order.
func GroupBy[T any, K comparable](v View[T], key func(T) K) *collect.ListMultimap[K, T] {
	m := collect.NewListMultimap[K, T]()
	for x := range v.All() {
		m.Put(key(x), x)
	}
	return m
}

// MapValues returns a new map with fn applied to each value of m. It is
// evaluated immediately: fn runs once per entry.
func MapValues[K comparable, V, W any](m map[K]V, fn func(V) W) map[K]W {
	out := make(map[K]W, len(m))
	for k, v := range m {
		out[k] = fn(v)
	}
	return out
}

// Collect returns the elements of v as a slice.
func (v View[T]) Collect() []T {
	return slices.Collect(v.All())
}

// First returns the first element of v.
func (v View[T]) First() (T, bool) {
	for x := range v.All() {
		return x, true
	}
	var zero T
	return zero, false
}

// AnyMatch reports whether pred holds for some element of v.
func (v View[T]) AnyMatch(pred func(T) bool) bool {
	for x := range v.All() {
		if pred(x) {
			return true
		}
	}
	return false
}

// AllMatch reports whether pred holds for every element of v.
func (v View[T]) AllMatch(pred func(T) bool) bool {
	for x := range v.All() {
		if !pred(x) {
			return false
		}
	}
	return true
}

// Size returns the number of elements in v.
func (v View[T]) Size() int {
	n := 0
	for range v.All() {
		n++
	}
	return n
}

// Join renders the elements of v with j.
func (v View[T]) Join(j strutil.Joiner) (string, error) {
	var parts []any
	for x := range v.All() {
		parts = append(parts, x)
	}
	return j.Join(parts...)
}
