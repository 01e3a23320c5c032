// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package collect provides counting and grouping containers: Multiset,
// ListMultimap and ConstrainedList.
//
// The containers are not safe for concurrent mutation.
package collect

import (
	"iter"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/errdefs"
)

// A Multiset counts occurrences of elements. Elements whose count drops to
// zero are removed, so Distinct never reports them.
type Multiset[T comparable] struct {
	counts map[T]int
	size   int
}

// NewMultiset returns a Multiset holding one occurrence of each of elems.
func NewMultiset[T comparable](elems ...T) *Multiset[T] {
	m := &Multiset[T]{counts: make(map[T]int, len(elems))}
	for _, e := range elems {
		m.Add(e)
	}
	return m
}

func (m *Multiset[T]) init() {
	if m.counts == nil {
		m.counts = make(map[T]int)
	}
}

// Add adds one occurrence of e and returns the previous count.
func (m *Multiset[T]) Add(e T) int {
	prev, _ := m.AddN(e, 1)
	return prev
}

// AddN adds n occurrences of e and returns the previous count. A negative n
// fails with [errdefs.ErrInvalidArgument].
func (m *Multiset[T]) AddN(e T, n int) (int, error) {
	if n < 0 {
		return 0, errors.Wrapf(errdefs.ErrInvalidArgument, "collect: negative occurrences %d", n)
	}
	m.init()
	prev := m.counts[e]
	if n > 0 {
		m.counts[e] = prev + n
		m.size += n
	}
	return prev, nil
}

// Remove removes up to n occurrences of e and returns the previous count.
// A negative n fails with [errdefs.ErrInvalidArgument].
func (m *Multiset[T]) Remove(e T, n int) (int, error) {
	if n < 0 {
		return 0, errors.Wrapf(errdefs.ErrInvalidArgument, "collect: negative occurrences %d", n)
	}
	prev := m.counts[e]
	if prev == 0 || n == 0 {
		return prev, nil
	}
	if n >= prev {
		delete(m.counts, e)
		m.size -= prev
	} else {
		m.counts[e] = prev - n
		m.size -= n
	}
	return prev, nil
}

// SetCount sets the count of e to n. A negative n fails with
// [errdefs.ErrInvalidArgument].
func (m *Multiset[T]) SetCount(e T, n int) error {
	if n < 0 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "collect: negative count %d", n)
	}
	m.init()
	m.size += n - m.counts[e]
	if n == 0 {
		delete(m.counts, e)
	} else {
		m.counts[e] = n
	}
	return nil
}

// Count returns the number of occurrences of e, 0 if absent.
func (m *Multiset[T]) Count(e T) int { return m.counts[e] }

// Contains reports whether e occurs at least once.
func (m *Multiset[T]) Contains(e T) bool { return m.counts[e] > 0 }

// Len returns the total number of occurrences of all elements.
func (m *Multiset[T]) Len() int { return m.size }

// Distinct returns the number of distinct elements.
func (m *Multiset[T]) Distinct() int { return len(m.counts) }

// ElementSet returns the distinct elements as a new set.
func (m *Multiset[T]) ElementSet() mapset.Set[T] {
	s := mapset.NewSet[T]()
	for e := range m.counts {
		s.Add(e)
	}
	return s
}

// All yields each distinct element with its count, in no particular order.
func (m *Multiset[T]) All() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		for e, n := range m.counts {
			if !yield(e, n) {
				return
			}
		}
	}
}

// Equal reports whether m and o hold the same counts.
func (m *Multiset[T]) Equal(o *Multiset[T]) bool {
	if m.size != o.size || len(m.counts) != len(o.counts) {
		return false
	}
	for e, n := range m.counts {
		if o.counts[e] != n {
			return false
		}
	}
	return true
}

// Sum returns a new Multiset whose count of every element is the sum of its
// counts in a and b. Neither input is modified.
func Sum[T comparable](a, b *Multiset[T]) *Multiset[T] {
	m := &Multiset[T]{counts: make(map[T]int, max(len(a.counts), len(b.counts)))}
	for e, n := range a.counts {
		m.counts[e] = n
	}
	for e, n := range b.counts {
		m.counts[e] += n
	}
	m.size = a.size + b.size
	return m
}

// Union returns a new Multiset whose count of every element is the larger of
// its counts in a and b.
func Union[T comparable](a, b *Multiset[T]) *Multiset[T] {
	m := &Multiset[T]{counts: make(map[T]int, max(len(a.counts), len(b.counts)))}
	for e, n := range a.counts {
		m.counts[e] = n
		m.size += n
	}
	for e, n := range b.counts {
		if prev := m.counts[e]; n > prev {
			m.counts[e] = n
			m.size += n - prev
		}
	}
	return m
}
