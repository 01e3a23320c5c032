package main

import (
	"bytes"
	"fmt"
	"go/format"
	"unicode"

	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/rangetable"
)

const maxRune = unicode.MaxRune

// Class bits, these must match the classXXX constants in charmatch.
const (
	classDigit uint8 = 1 << iota
	classSpace
	classUpper
	classLower
)

func isWhitespace(r rune) bool { return unicode.Is(unicode.White_Space, r) }

var classes = []struct {
	bit uint8
	fn  func(rune) bool
}{
	{classDigit, unicode.IsDigit},
	{classSpace, isWhitespace},
	{classUpper, unicode.IsUpper},
	{classLower, unicode.IsLower},
}

type runeRange struct{ lo, hi rune }

type tables struct {
	ascii      [256]uint8
	whitespace []runeRange
}

// coalesce merges sorted runes into stride 1 ranges.
func coalesce(runes []rune) []runeRange {
	var out []runeRange
	for _, r := range runes {
		if n := len(out); n > 0 && out[n-1].hi+1 == r {
			out[n-1].hi = r
			continue
		}
		out = append(out, runeRange{r, r})
	}
	return out
}

func buildTables() *tables {
	var t tables
	for c := rune(0); c < unicode.MaxASCII+1; c++ {
		for _, class := range classes {
			if class.fn(c) {
				t.ascii[c] |= class.bit
			}
		}
	}
	var runes []rune
	rangetable.Visit(unicode.White_Space, func(r rune) {
		if isWhitespace(r) {
			runes = append(runes, r)
		}
	})
	slices.Sort(runes)
	t.whitespace = coalesce(runes)
	return &t
}

func (t *tables) inWhitespace(r rune) bool {
	for _, rr := range t.whitespace {
		if rr.lo <= r && r <= rr.hi {
			return true
		}
	}
	return false
}

// check reports if the tables disagree with package unicode about r.
func (t *tables) check(r rune) error {
	if got, want := t.inWhitespace(r), isWhitespace(r); got != want {
		return fmt.Errorf("whitespace(%U) = %t; want: %t", r, got, want)
	}
	if r <= unicode.MaxASCII {
		for _, class := range classes {
			if got, want := t.ascii[r]&class.bit != 0, class.fn(r); got != want {
				return fmt.Errorf("class 0x%02x of %U = %t; want: %t", class.bit, r, got, want)
			}
		}
	}
	return nil
}

func (t *tables) generate() ([]byte, error) {
	var w bytes.Buffer
	w.WriteString("// Code generated by \"gentables\"; DO NOT EDIT.\n\n")
	w.WriteString("package charmatch\n\nimport \"unicode\"\n\n")

	w.WriteString("// _asciiClass maps each byte to its classXXX bits. Bytes >= 0x80 are 0.\n")
	w.WriteString("var _asciiClass = [256]uint8{\n")
	for i := 0; i < len(t.ascii); i += 16 {
		w.WriteByte('\t')
		for j, b := range t.ascii[i : i+16] {
			if j > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(&w, "0x%02x,", b)
		}
		w.WriteByte('\n')
	}
	w.WriteString("}\n\n")

	var r16, r32 []runeRange
	latinOffset := 0
	for _, rr := range t.whitespace {
		if rr.hi <= 0xFFFF {
			r16 = append(r16, rr)
			if rr.hi <= unicode.MaxLatin1 {
				latinOffset++
			}
		} else {
			r32 = append(r32, rr)
		}
	}
	w.WriteString("// _Whitespace is the set of runes matched by Whitespace.\n")
	w.WriteString("var _Whitespace = &unicode.RangeTable{\n")
	if len(r16) > 0 {
		w.WriteString("\tR16: []unicode.Range16{\n")
		for _, rr := range r16 {
			fmt.Fprintf(&w, "\t\t{Lo: 0x%04x, Hi: 0x%04x, Stride: 1},\n", rr.lo, rr.hi)
		}
		w.WriteString("\t},\n")
	}
	if len(r32) > 0 {
		w.WriteString("\tR32: []unicode.Range32{\n")
		for _, rr := range r32 {
			fmt.Fprintf(&w, "\t\t{Lo: 0x%x, Hi: 0x%x, Stride: 1},\n", rr.lo, rr.hi)
		}
		w.WriteString("\t},\n")
	}
	if latinOffset > 0 {
		fmt.Fprintf(&w, "\tLatinOffset: %d,\n", latinOffset)
	}
	w.WriteString("}\n")
	return format.Source(w.Bytes())
}
