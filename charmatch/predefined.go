// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package charmatch

//go:generate go run ../internal/gentables -output tables.go

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/rangetable"

	"github.com/floppywaste/gutil/errdefs"
	"github.com/floppywaste/gutil/internal/bytealg"
)

// Bits of _asciiClass.
const (
	classDigit uint8 = 1 << iota
	classSpace
	classUpper
	classLower

	classLetter = classUpper | classLower
)

func isClass(r rune, class uint8, slow func(rune) bool) bool {
	if uint32(r) < utf8.RuneSelf {
		return _asciiClass[r]&class != 0
	}
	return slow(r)
}

func isWhitespace(r rune) bool { return unicode.Is(_Whitespace, r) }

var (
	anyMatcher    = newMatcher("Any()", func(rune) bool { return true })
	noneMatcher   = newMatcher("None()", func(rune) bool { return false })
	asciiMatcher  = newMatcher("ASCII()", func(r rune) bool { return uint32(r) < utf8.RuneSelf })
	digitMatcher  = newMatcher("Digit()", func(r rune) bool { return isClass(r, classDigit, unicode.IsDigit) })
	spaceMatcher  = newMatcher("Whitespace()", func(r rune) bool { return isClass(r, classSpace, isWhitespace) })
	letterMatcher = newMatcher("Letter()", func(r rune) bool { return isClass(r, classLetter, unicode.IsLetter) })
	upperMatcher  = newMatcher("Upper()", func(r rune) bool { return isClass(r, classUpper, unicode.IsUpper) })
	lowerMatcher  = newMatcher("Lower()", func(r rune) bool { return isClass(r, classLower, unicode.IsLower) })

	letterOrDigitMatcher = newMatcher("LetterOrDigit()", func(r rune) bool {
		return isClass(r, classLetter|classDigit, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		})
	})
)

// Any matches every rune.
func Any() Matcher { return anyMatcher }

// None matches no rune.
func None() Matcher { return noneMatcher }

// ASCII matches runes in the range [0, 0x7F].
func ASCII() Matcher { return asciiMatcher }

// Digit matches Unicode decimal digits.
func Digit() Matcher { return digitMatcher }

// Whitespace matches the Unicode White_Space runes:
// '\t', '\n', '\v', '\f', '\r', ' ', U+0085, U+00A0, U+1680,
// U+2000..U+200A, U+2028, U+2029, U+202F, U+205F and U+3000.
// The ASCII separators U+001C..U+001F are not White_Space.
func Whitespace() Matcher { return spaceMatcher }

// Letter matches Unicode letters.
func Letter() Matcher { return letterMatcher }

// LetterOrDigit matches Unicode letters and decimal digits.
func LetterOrDigit() Matcher { return letterOrDigitMatcher }

// Upper matches upper case letters.
func Upper() Matcher { return upperMatcher }

// Lower matches lower case letters.
func Lower() Matcher { return lowerMatcher }

// Is matches only r.
func Is(r rune) Matcher {
	return newMatcher("Is("+strconv.QuoteRune(r)+")", func(c rune) bool { return c == r })
}

// IsNot matches every rune except r.
func IsNot(r rune) Matcher {
	m := Is(r).Negate()
	m.desc = "IsNot(" + strconv.QuoteRune(r) + ")"
	return m
}

// AnyOf matches any rune in chars.
func AnyOf(chars string) Matcher {
	desc := "AnyOf(" + strconv.Quote(chars) + ")"
	ascii, ok := bytealg.MakeASCIISet(chars)
	if ok {
		return Matcher{desc: desc, ascii: ascii}
	}
	var runes []rune
	for _, r := range chars {
		if r >= utf8.RuneSelf {
			runes = append(runes, r)
		}
	}
	tab := rangetable.New(runes...)
	return Matcher{
		desc:  desc,
		ascii: ascii,
		fn:    func(r rune) bool { return unicode.Is(tab, r) },
	}
}

// NoneOf matches every rune not in chars.
func NoneOf(chars string) Matcher {
	m := AnyOf(chars).Negate()
	m.desc = "NoneOf(" + strconv.Quote(chars) + ")"
	return m
}

// InRange matches runes in the inclusive range [lo, hi]. It panics if
// hi < lo.
func InRange(lo, hi rune) Matcher {
	if hi < lo {
		panic(errors.Wrapf(errdefs.ErrInvalidArgument,
			"charmatch: InRange(%q, %q): hi < lo", lo, hi))
	}
	desc := "InRange(" + strconv.QuoteRune(lo) + ", " + strconv.QuoteRune(hi) + ")"
	return newMatcher(desc, func(r rune) bool { return lo <= r && r <= hi })
}

// InTable matches runes in any of the given tables.
func InTable(tabs ...*unicode.RangeTable) Matcher {
	tab := rangetable.Merge(tabs...)
	return newMatcher("InTable(...)", func(r rune) bool { return unicode.Is(tab, r) })
}

// ForPredicate returns a Matcher backed by fn. It panics with an
// [errdefs.ErrNullArgument] error if fn is nil.
func ForPredicate(fn func(r rune) bool) Matcher {
	if fn == nil {
		panic(errors.Wrap(errdefs.ErrNullArgument, "charmatch: ForPredicate"))
	}
	return newMatcher("ForPredicate(...)", fn)
}
