package strutil

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/floppywaste/gutil/charmatch"
)

// A CaseFormat is a naming convention for identifiers.
type CaseFormat uint8

const (
	LowerHyphen     CaseFormat = iota // lower-hyphen
	LowerUnderscore                   // lower_underscore
	LowerCamel                        // lowerCamel
	UpperCamel                        // UpperCamel
	UpperUnderscore                   // UPPER_UNDERSCORE
)

var caseFormatNames = [...]string{
	LowerHyphen:     "LowerHyphen",
	LowerUnderscore: "LowerUnderscore",
	LowerCamel:      "LowerCamel",
	UpperCamel:      "UpperCamel",
	UpperUnderscore: "UpperUnderscore",
}

func (f CaseFormat) String() string {
	if int(f) < len(caseFormatNames) {
		return caseFormatNames[f]
	}
	return "CaseFormat(" + strconv.Itoa(int(f)) + ")"
}

func (f CaseFormat) separator() byte {
	if f == LowerHyphen {
		return '-'
	}
	return '_'
}

var wordBoundary = charmatch.InRange('A', 'Z')

func (f CaseFormat) words(s string) []string {
	switch f {
	case LowerHyphen:
		return strings.Split(s, "-")
	case LowerUnderscore, UpperUnderscore:
		return strings.Split(s, "_")
	}
	var words []string
	start := 0
	for start < len(s) {
		i := wordBoundary.IndexIn(s[start+1:])
		if i < 0 {
			break
		}
		words = append(words, s[start:start+1+i])
		start += 1 + i
	}
	return append(words, s[start:])
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	_, n := utf8.DecodeRuneInString(w)
	return strings.ToUpper(w[:n]) + strings.ToLower(w[n:])
}

// To converts s from format f to target.
func (f CaseFormat) To(target CaseFormat, s string) string {
	if f == target || s == "" {
		return s
	}
	words := f.words(s)
	var b strings.Builder
	b.Grow(len(s) + len(words))
	for i, w := range words {
		switch target {
		case LowerHyphen, LowerUnderscore:
			if i > 0 {
				b.WriteByte(target.separator())
			}
			b.WriteString(strings.ToLower(w))
		case UpperUnderscore:
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(strings.ToUpper(w))
		case LowerCamel:
			if i == 0 {
				b.WriteString(strings.ToLower(w))
			} else {
				b.WriteString(capitalize(w))
			}
		case UpperCamel:
			b.WriteString(capitalize(w))
		}
	}
	return b.String()
}
