package test

import (
	"unicode/utf8"

	"pgregory.net/rapid"
)

// Runes that exercise the ASCII fast path and its fallback: ASCII letters,
// digits and spaces, Latin-1, Greek, CJK, wide whitespace and an emoji.
var interestingRunes = []rune{
	'a', 'Z', '0', '9', ' ', '\t', '\n', '_', '-', ',',
	'ä', 'Ö', 'ß', ' ', '\u0085',
	'λ', 'Ω', '٣',
	'日', '本', '　', ' ', ' ',
	'😀', utf8.RuneError,
}

// Rune draws runes biased towards interestingRunes.
func Rune() *rapid.Generator[rune] {
	return rapid.OneOf(
		rapid.SampledFrom(interestingRunes),
		rapid.Rune(),
	)
}

// String draws valid UTF-8 strings of runes from Rune.
func String() *rapid.Generator[string] {
	return rapid.StringOf(Rune())
}

// Bytes draws strings that may hold invalid UTF-8.
func Bytes() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		s := String().Draw(t, "s")
		b := rapid.SliceOfN(rapid.Byte(), 0, 4).Draw(t, "junk")
		at := rapid.IntRange(0, len(s)).Draw(t, "at")
		return s[:at] + string(b) + s[at:]
	})
}
