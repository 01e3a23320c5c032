// Package test is a shared harness for testing rune predicates and the bulk
// string operations built on them against simple reference implementations.
//
// Each harness function takes the function under test and the predicate it
// is expected to implement, and runs it over a corpus of ASCII, Unicode and
// invalid UTF-8 strings.
package test

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// Strings is the corpus every harness function runs over.
var Strings = []string{
	"",
	" ",
	"a",
	"abc",
	"hello, world",
	"  leading and trailing  ",
	"tabs\tand\nnewlines\r\n",
	"a1b2c3",
	"1234567890",
	"UPPER lower MiXeD",
	"äöü ÄÖÜ ß",
	"naïve café",
	"αβγ ΑΒΓ ω",
	"日本語のテキスト",
	"emoji 😀 and ☺",
	"　ideographic　space　",
	"nbsp and line sep",
	"٣ arabic-indic ٤",
	"\xff",
	"a\xffb\xfe",
	"\xe2\x82",
	"trunc\xe2\x82 ated",
	"\x1c\x1d\x1e\x1f",
	strings.Repeat("x", 64) + "€" + strings.Repeat("y ", 32),
}

// A piece of a string: the decoded rune and the bytes it came from. Invalid
// UTF-8 decodes to one utf8.RuneError per byte.
type piece struct {
	r   rune
	raw string
}

func pieces(s string) []piece {
	var ps []piece
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		ps = append(ps, piece{r, s[i : i+n]})
		i += n
	}
	return ps
}

func join(ps []piece) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(p.raw)
	}
	return b.String()
}

// CountReference returns the number of runes in s matching pred.
func CountReference(s string, pred func(rune) bool) int {
	n := 0
	for _, p := range pieces(s) {
		if pred(p.r) {
			n++
		}
	}
	return n
}

// IndexReference returns the byte index of the first rune in s matching
// pred, or -1.
func IndexReference(s string, pred func(rune) bool) int {
	i := 0
	for _, p := range pieces(s) {
		if pred(p.r) {
			return i
		}
		i += len(p.raw)
	}
	return -1
}

// LastIndexReference returns the byte index of the last rune in s matching
// pred, or -1.
func LastIndexReference(s string, pred func(rune) bool) int {
	last, i := -1, 0
	for _, p := range pieces(s) {
		if pred(p.r) {
			last = i
		}
		i += len(p.raw)
	}
	return last
}

// RetainReference returns s without the runes not matching pred. Invalid
// bytes are kept or dropped as utf8.RuneError.
func RetainReference(s string, pred func(rune) bool) string {
	var keep []piece
	for _, p := range pieces(s) {
		if pred(p.r) {
			keep = append(keep, p)
		}
	}
	return join(keep)
}

// TrimReference returns s with leading and trailing runes matching pred
// removed.
func TrimReference(s string, pred func(rune) bool) string {
	ps := pieces(s)
	for len(ps) > 0 && pred(ps[0].r) {
		ps = ps[1:]
	}
	for len(ps) > 0 && pred(ps[len(ps)-1].r) {
		ps = ps[:len(ps)-1]
	}
	return join(ps)
}

// CollapseReference returns s with each run of runes matching pred replaced
// by replacement.
func CollapseReference(s string, pred func(rune) bool, replacement rune) string {
	var b strings.Builder
	inRun := false
	for _, p := range pieces(s) {
		switch {
		case !pred(p.r):
			b.WriteString(p.raw)
			inRun = false
		case !inRun:
			b.WriteRune(replacement)
			inRun = true
		}
	}
	return b.String()
}

func negate(pred func(rune) bool) func(rune) bool {
	return func(r rune) bool { return !pred(r) }
}

// Count tests that fn counts the runes matching pred.
func Count(t *testing.T, fn func(s string) int, pred func(rune) bool) {
	t.Helper()
	for _, s := range Strings {
		if got, want := fn(s), CountReference(s, pred); got != want {
			t.Errorf("Count(%q) = %d; want: %d", s, got, want)
		}
	}
}

// Index tests that fn returns the index of the first rune matching pred.
func Index(t *testing.T, fn func(s string) int, pred func(rune) bool) {
	t.Helper()
	for _, s := range Strings {
		if got, want := fn(s), IndexReference(s, pred); got != want {
			t.Errorf("Index(%q) = %d; want: %d", s, got, want)
		}
	}
}

// LastIndex tests that fn returns the index of the last rune matching pred.
func LastIndex(t *testing.T, fn func(s string) int, pred func(rune) bool) {
	t.Helper()
	for _, s := range Strings {
		if got, want := fn(s), LastIndexReference(s, pred); got != want {
			t.Errorf("LastIndex(%q) = %d; want: %d", s, got, want)
		}
	}
}

// Retain tests that fn keeps only the runes matching pred.
func Retain(t *testing.T, fn func(s string) string, pred func(rune) bool) {
	t.Helper()
	for _, s := range Strings {
		if got, want := fn(s), RetainReference(s, pred); got != want {
			t.Errorf("Retain(%q) = %q; want: %q", s, got, want)
		}
	}
}

// Remove tests that fn drops the runes matching pred.
func Remove(t *testing.T, fn func(s string) string, pred func(rune) bool) {
	t.Helper()
	Retain(t, fn, negate(pred))
}

// Trim tests that fn removes leading and trailing runes matching pred.
func Trim(t *testing.T, fn func(s string) string, pred func(rune) bool) {
	t.Helper()
	for _, s := range Strings {
		if got, want := fn(s), TrimReference(s, pred); got != want {
			t.Errorf("Trim(%q) = %q; want: %q", s, got, want)
		}
	}
}

// Collapse tests that fn replaces runs of runes matching pred with
// replacement.
func Collapse(t *testing.T, fn func(s string, replacement rune) string, pred func(rune) bool) {
	t.Helper()
	for _, replacement := range []rune{' ', '_', '€'} {
		for _, s := range Strings {
			if got, want := fn(s, replacement), CollapseReference(s, pred, replacement); got != want {
				t.Errorf("Collapse(%q, %q) = %q; want: %q", s, replacement, got, want)
			}
		}
	}
}

// IndexNonASCII tests fn, which must return the index of the first byte of s
// that is not ASCII.
func IndexNonASCII(t *testing.T, fn func(s string) int) {
	t.Helper()
	index := func(s string) int {
		for i, r := range s {
			if r >= utf8.RuneSelf {
				return i
			}
		}
		return -1
	}

	t.Run("Strings", func(t *testing.T) {
		for _, s := range Strings {
			// Invalid UTF-8 decodes to RuneError which is >= RuneSelf.
			if got, want := fn(s), index(s); got != want {
				t.Errorf("IndexNonASCII(%q) = %d; want: %d", s, got, want)
			}
		}
	})

	t.Run("LongString", func(t *testing.T) {
		long := strings.Repeat("a", 4096) + "βaβa"
		idx := index(long)
		fails := 0
		for i := 0; i < len(long); i++ {
			s := long[i:]
			want := idx - i
			if want < 0 {
				want = index(s)
			}
			if got := fn(s); got != want {
				fails++
				if fails <= 20 {
					t.Errorf("IndexNonASCII(long[%d:]) = %d; want: %d", i, got, want)
				}
			}
		}
	})
}
