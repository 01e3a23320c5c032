package strutil

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/charmatch"
	"github.com/floppywaste/gutil/errdefs"
)

// separatorFunc returns the bounds [start, end) of the first separator in s
// at or after from, or (-1, -1).
type separatorFunc func(s string, from int) (start, end int)

// A Splitter splits strings into pieces. A Splitter is immutable: the
// configuration methods return a modified copy. The zero Splitter never
// splits and yields its input as a single piece.
type Splitter struct {
	next      separatorFunc
	omitEmpty bool
	trim      bool
	trimmer   charmatch.Matcher
	limit     int
}

// NewSplitter returns a Splitter that splits on each occurrence of sep. It
// panics with an [errdefs.ErrInvalidArgument] error if sep is empty.
func NewSplitter(sep string) Splitter {
	if sep == "" {
		panic(errors.Wrap(errdefs.ErrInvalidArgument, "strutil: empty separator"))
	}
	return Splitter{next: func(s string, from int) (int, int) {
		i := strings.Index(s[from:], sep)
		if i < 0 {
			return -1, -1
		}
		return from + i, from + i + len(sep)
	}}
}

// OnMatcher returns a Splitter that treats each rune matched by m as a
// separator.
func OnMatcher(m charmatch.Matcher) Splitter {
	return Splitter{next: func(s string, from int) (int, int) {
		i := m.IndexIn(s[from:])
		if i < 0 {
			return -1, -1
		}
		_, size := utf8.DecodeRuneInString(s[from+i:])
		return from + i, from + i + size
	}}
}

// FixedLength returns a Splitter that cuts strings into pieces of n runes.
// The last piece may be shorter. It panics with an
// [errdefs.ErrInvalidArgument] error if n <= 0.
func FixedLength(n int) Splitter {
	if n <= 0 {
		panic(errors.Wrapf(errdefs.ErrInvalidArgument, "strutil: fixed length %d", n))
	}
	return Splitter{next: func(s string, from int) (int, int) {
		i := from
		for c := 0; c < n && i < len(s); c++ {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		if i >= len(s) {
			return -1, -1
		}
		return i, i
	}}
}

// OmitEmptyStrings returns a Splitter that drops empty pieces. Emptiness is
// checked after trimming.
func (sp Splitter) OmitEmptyStrings() Splitter {
	sp.omitEmpty = true
	return sp
}

// TrimResults returns a Splitter that removes leading and trailing
// whitespace from each piece.
func (sp Splitter) TrimResults() Splitter {
	return sp.TrimResultsWith(charmatch.Whitespace())
}

// TrimResultsWith returns a Splitter that removes leading and trailing runes
// matched by m from each piece.
func (sp Splitter) TrimResultsWith(m charmatch.Matcher) Splitter {
	sp.trim = true
	sp.trimmer = m
	return sp
}

// Limit returns a Splitter that stops after n pieces. The last piece holds
// the rest of the input. It panics with an [errdefs.ErrInvalidArgument]
// error if n <= 0.
func (sp Splitter) Limit(n int) Splitter {
	if n <= 0 {
		panic(errors.Wrapf(errdefs.ErrInvalidArgument, "strutil: limit %d", n))
	}
	sp.limit = n
	return sp
}

// Split returns the pieces of s in order. Pieces are found as the sequence
// is consumed. The empty string yields one empty piece. With a limit, the
// last piece starts at the next piece that is kept and runs to the end of s.
func (sp Splitter) Split(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		pos, n := 0, 0
		for {
			var piece string
			start, last := pos, false
			if i, j := sp.find(s, pos); i < 0 {
				piece, last = s[pos:], true
			} else {
				piece, pos = s[pos:i], j
			}
			if sp.trim {
				piece = sp.trimmer.TrimFrom(piece)
			}
			if piece == "" && sp.omitEmpty {
				if last {
					return
				}
				continue
			}
			if sp.limit > 0 && n == sp.limit-1 && !last {
				piece, last = s[start:], true
				if sp.trim {
					piece = sp.trimmer.TrimFrom(piece)
				}
			}
			n++
			if !yield(piece) || last {
				return
			}
		}
	}
}

// find is next, except that the zero Splitter finds no separator.
func (sp Splitter) find(s string, from int) (int, int) {
	if sp.next == nil {
		return -1, -1
	}
	return sp.next(s, from)
}

// SplitToList returns the pieces of s as a slice.
func (sp Splitter) SplitToList(s string) []string {
	var parts []string
	for p := range sp.Split(s) {
		parts = append(parts, p)
	}
	return parts
}

// WithKeyValueSeparator returns a MapSplitter that splits entries with sp and
// each entry into a key and value on sep.
func (sp Splitter) WithKeyValueSeparator(sep string) MapSplitter {
	return sp.WithKeyValueSplitter(NewSplitter(sep))
}

// WithKeyValueSplitter returns a MapSplitter that splits entries with sp and
// each entry into a key and value with kv.
func (sp Splitter) WithKeyValueSplitter(kv Splitter) MapSplitter {
	return MapSplitter{entries: sp, kv: kv}
}

// A MapSplitter parses delimited key/value text into a map.
type MapSplitter struct {
	entries Splitter
	kv      Splitter
}

// Split parses s. An entry that does not split into exactly a key and a
// value fails with [errdefs.ErrMalformedPair]; a key seen twice fails with
// [errdefs.ErrDuplicateKey].
func (ms MapSplitter) Split(s string) (map[string]string, error) {
	m := make(map[string]string)
	for entry := range ms.entries.Split(s) {
		parts := ms.kv.SplitToList(entry)
		if len(parts) != 2 {
			return nil, errors.Wrapf(errdefs.ErrMalformedPair, "strutil: entry %q", entry)
		}
		if _, dup := m[parts[0]]; dup {
			return nil, errors.Wrapf(errdefs.ErrDuplicateKey, "strutil: key %q", parts[0])
		}
		m[parts[0]] = parts[1]
	}
	return m, nil
}
