// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package gutil is a general purpose toolkit of string, collection,
// functional and I/O helpers. The root package holds argument and state
// checks; the helpers live in subpackages:
//
//   - [github.com/floppywaste/gutil/charmatch]: composable rune predicates
//   - [github.com/floppywaste/gutil/strutil]: padding, joining, splitting and case formats
//   - [github.com/floppywaste/gutil/fn]: function composition and predicates
//   - [github.com/floppywaste/gutil/lazy]: lazy views over sequences and lists
//   - [github.com/floppywaste/gutil/collect]: multisets, multimaps and constrained lists
//   - [github.com/floppywaste/gutil/ioutils]: byte and character sources and sinks
//   - [github.com/floppywaste/gutil/baseenc]: base 16, 32 and 64 encodings
//   - [github.com/floppywaste/gutil/csvpipe]: a read, group and average pipeline for delimited text
//
// Failures are reported as errors classified by the kinds in
// [github.com/floppywaste/gutil/errdefs].
package gutil

// BUG(cvieth): Lengths and counts are in runes, not grapheme clusters, so a
// letter followed by a combining mark counts as two.
