// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package charmatch provides composable rune predicates and the bulk string
// operations built on them (count, retain, remove, replace, trim, collapse).
//
// A [Matcher] is an immutable value and is safe for concurrent use. Every
// Matcher carries a precomputed ASCII bitset so that operations over
// ASCII-only strings never call the underlying predicate.
//
// Lengths and counts are in runes. Invalid UTF-8 is treated as one
// [utf8.RuneError] per invalid byte and is copied through unchanged by
// RetainFrom and RemoveFrom.
package charmatch

import (
	"strings"
	"unicode/utf8"

	"github.com/floppywaste/gutil/internal/bytealg"
)

// A Matcher decides whether a rune matches. The zero value matches nothing.
type Matcher struct {
	desc  string
	ascii bytealg.ASCIISet
	fn    func(r rune) bool // consulted for runes >= utf8.RuneSelf
}

func newMatcher(desc string, fn func(r rune) bool) Matcher {
	m := Matcher{desc: desc, fn: fn}
	for c := rune(0); c < utf8.RuneSelf; c++ {
		if fn(c) {
			m.ascii.Add(byte(c))
		}
	}
	return m
}

// Match reports whether r matches.
func (m Matcher) Match(r rune) bool {
	if uint32(r) < utf8.RuneSelf {
		return m.ascii.Contains(byte(r))
	}
	return m.fn != nil && m.fn(r)
}

// String returns a description of how m was built.
func (m Matcher) String() string {
	if m.desc == "" {
		return "None()"
	}
	return m.desc
}

// Negate returns a Matcher that matches the runes m does not.
func (m Matcher) Negate() Matcher {
	return Matcher{
		desc:  m.String() + ".Negate()",
		ascii: m.ascii.Complement(),
		fn:    func(r rune) bool { return !m.Match(r) },
	}
}

// Or returns a Matcher that matches any rune matched by m or o.
func (m Matcher) Or(o Matcher) Matcher {
	return Matcher{
		desc:  m.String() + ".Or(" + o.String() + ")",
		ascii: m.ascii.Union(o.ascii),
		fn:    func(r rune) bool { return m.Match(r) || o.Match(r) },
	}
}

// And returns a Matcher that matches the runes matched by both m and o.
func (m Matcher) And(o Matcher) Matcher {
	return Matcher{
		desc:  m.String() + ".And(" + o.String() + ")",
		ascii: m.ascii.Intersect(o.ascii),
		fn:    func(r rune) bool { return m.Match(r) && o.Match(r) },
	}
}

func isASCII(s string) bool { return bytealg.IndexNonASCII(s) < 0 }

// decode returns the rune at s[i] and its width.
func decode(s string, i int) (rune, int) {
	if c := s[i]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s[i:])
}

// MatchesAnyOf reports whether at least one rune of s matches.
func (m Matcher) MatchesAnyOf(s string) bool {
	return m.IndexIn(s) >= 0
}

// MatchesAllOf reports whether every rune of s matches. It is true for the
// empty string.
func (m Matcher) MatchesAllOf(s string) bool {
	if isASCII(s) {
		return bytealg.IndexNot(s, &m.ascii) < 0
	}
	for _, r := range s {
		if !m.Match(r) {
			return false
		}
	}
	return true
}

// MatchesNoneOf reports whether no rune of s matches.
func (m Matcher) MatchesNoneOf(s string) bool {
	return !m.MatchesAnyOf(s)
}

// IndexIn returns the byte index of the first matching rune in s, or -1.
func (m Matcher) IndexIn(s string) int {
	if isASCII(s) {
		return bytealg.Index(s, &m.ascii)
	}
	for i, r := range s {
		if m.Match(r) {
			return i
		}
	}
	return -1
}

// LastIndexIn returns the byte index of the last matching rune in s, or -1.
func (m Matcher) LastIndexIn(s string) int {
	if isASCII(s) {
		return bytealg.LastIndex(s, &m.ascii)
	}
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		if m.Match(r) {
			return i
		}
	}
	return -1
}

// CountIn returns the number of matching runes in s.
func (m Matcher) CountIn(s string) int {
	if isASCII(s) {
		return bytealg.Count(s, &m.ascii)
	}
	n := 0
	for _, r := range s {
		if m.Match(r) {
			n++
		}
	}
	return n
}

func (m Matcher) filter(s string, keep bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := decode(s, i)
		if m.Match(r) == keep {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// RetainFrom returns s with every non-matching rune removed.
func (m Matcher) RetainFrom(s string) string {
	return m.filter(s, true)
}

// RemoveFrom returns s with every matching rune removed.
func (m Matcher) RemoveFrom(s string) string {
	if m.IndexIn(s) < 0 {
		return s
	}
	return m.filter(s, false)
}

// ReplaceFrom returns s with every matching rune replaced by replacement.
// An empty replacement is equivalent to RemoveFrom.
func (m Matcher) ReplaceFrom(s, replacement string) string {
	if replacement == "" {
		return m.RemoveFrom(s)
	}
	i := m.IndexIn(s)
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		r, size := decode(s, i)
		if m.Match(r) {
			b.WriteString(replacement)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// TrimFrom returns s with all leading and trailing matching runes removed.
func (m Matcher) TrimFrom(s string) string {
	return strings.TrimFunc(s, m.Match)
}

// TrimLeadingFrom returns s with all leading matching runes removed.
func (m Matcher) TrimLeadingFrom(s string) string {
	return strings.TrimLeftFunc(s, m.Match)
}

// TrimTrailingFrom returns s with all trailing matching runes removed.
func (m Matcher) TrimTrailingFrom(s string) string {
	return strings.TrimRightFunc(s, m.Match)
}

// CollapseFrom returns s with each run of consecutive matching runes
// replaced by a single replacement rune.
func (m Matcher) CollapseFrom(s string, replacement rune) string {
	return m.collapse(s, replacement)
}

// TrimAndCollapseFrom is like CollapseFrom but first removes leading and
// trailing matching runes.
func (m Matcher) TrimAndCollapseFrom(s string, replacement rune) string {
	return m.collapse(m.TrimFrom(s), replacement)
}

func (m Matcher) collapse(s string, replacement rune) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); {
		r, size := decode(s, i)
		if m.Match(r) {
			if !inRun {
				b.WriteRune(replacement)
			}
			inRun = true
		} else {
			b.WriteString(s[i : i+size])
			inRun = false
		}
		i += size
	}
	return b.String()
}
