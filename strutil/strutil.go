// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package strutil provides padding, joining, splitting and case conversion
// helpers for strings.
//
// Lengths are measured in runes, not bytes.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// PadStart returns s prefixed with enough copies of pad that its length is
// at least minLength runes. If s is already that long it is returned
// unchanged.
func PadStart(s string, minLength int, pad rune) string {
	n := minLength - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(pad), n) + s
}

// PadEnd is like PadStart but appends the padding.
func PadEnd(s string, minLength int, pad rune) string {
	n := minLength - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(string(pad), n)
}

// CommonPrefix returns the longest prefix shared by a and b that does not
// split a multi-byte rune.
func CommonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	for i > 0 && ((i < len(a) && !utf8.RuneStart(a[i])) || (i < len(b) && !utf8.RuneStart(b[i]))) {
		i--
	}
	return a[:i]
}

// CommonSuffix returns the longest suffix shared by a and b that does not
// split a multi-byte rune.
func CommonSuffix(a, b string) string {
	n := min(len(a), len(b))
	j := 0
	for j < n && a[len(a)-j-1] == b[len(b)-j-1] {
		j++
	}
	for j > 0 && (!utf8.RuneStart(a[len(a)-j]) || !utf8.RuneStart(b[len(b)-j])) {
		j--
	}
	return a[len(a)-j:]
}
