// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package fn provides small, stateless function combinators.
//
// Every function returned by this package captures only its arguments and
// is safe to share between goroutines when those arguments are.
package fn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/errdefs"
)

type (
	// Function maps a value of type In to a value of type Out.
	Function[In, Out any] func(in In) Out

	// Predicate reports whether a value is accepted.
	Predicate[T any] func(v T) bool
)

// Compose returns the function x -> f(g(x)).
func Compose[A, B, C any](f func(B) C, g func(A) B) Function[A, C] {
	return func(a A) C { return f(g(a)) }
}

// Identity returns the function x -> x.
func Identity[T any]() Function[T, T] {
	return func(v T) T { return v }
}

// Constant returns a function that ignores its argument and returns v.
func Constant[T, V any](v V) Function[T, V] {
	return func(T) V { return v }
}

// ToString returns a function that formats its argument with fmt.Sprint.
func ToString[T any]() Function[T, string] {
	return func(v T) string { return fmt.Sprint(v) }
}

// ForMap returns a function that looks keys up in m, returning def for
// absent keys. Later changes to m are visible through the function.
func ForMap[K comparable, V any](m map[K]V, def V) Function[K, V] {
	return func(k K) V {
		if v, ok := m[k]; ok {
			return v
		}
		return def
	}
}

// ForMapStrict is like ForMap but fails with an
// [errdefs.ErrInvalidArgument] error for absent keys.
func ForMapStrict[K comparable, V any](m map[K]V) func(K) (V, error) {
	return func(k K) (V, error) {
		v, ok := m[k]
		if !ok {
			return v, errors.Wrapf(errdefs.ErrInvalidArgument, "fn: key %v not present in map", k)
		}
		return v, nil
	}
}

// ForPredicate returns p as a Function to bool.
func ForPredicate[T any](p Predicate[T]) Function[T, bool] {
	return Function[T, bool](p)
}

// Not returns the negation of p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool { return !p(v) }
}

// And returns a predicate that holds when every one of ps holds. It
// short-circuits in argument order and is true when ps is empty.
func And[T any](ps ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range ps {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate that holds when any of ps holds. It short-circuits
// in argument order and is false when ps is empty.
func Or[T any](ps ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range ps {
			if p(v) {
				return true
			}
		}
		return false
	}
}
