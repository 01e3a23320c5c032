package strutil

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/floppywaste/gutil/errdefs"
)

type nullPolicy uint8

const (
	nullFail nullPolicy = iota
	nullSkip
	nullSubstitute
)

// A Joiner joins values with a separator. A Joiner is immutable: the
// configuration methods return a modified copy.
//
// A nil interface value, or a nil pointer, map, slice, func or chan, is a
// null. By default joining a null is an error; see SkipNulls and UseForNull.
type Joiner struct {
	sep      string
	policy   nullPolicy
	nullText string
}

// NewJoiner returns a Joiner that places sep between values.
func NewJoiner(sep string) Joiner {
	return Joiner{sep: sep}
}

// SkipNulls returns a Joiner that omits null values.
func (j Joiner) SkipNulls() Joiner {
	j.policy = nullSkip
	j.nullText = ""
	return j
}

// UseForNull returns a Joiner that renders null values as text.
func (j Joiner) UseForNull(text string) Joiner {
	j.policy = nullSubstitute
	j.nullText = text
	return j
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func render(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		return *s
	case fmt.Stringer:
		return s.String()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		return fmt.Sprint(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// AppendTo appends the joined parts to b. Under the default policy a null
// part fails with an [errdefs.ErrNullArgument] error; parts before it have
// already been appended.
func (j Joiner) AppendTo(b *strings.Builder, parts ...any) error {
	first := true
	for i, p := range parts {
		var s string
		if isNull(p) {
			switch j.policy {
			case nullSkip:
				continue
			case nullSubstitute:
				s = j.nullText
			default:
				return errors.Wrapf(errdefs.ErrNullArgument, "strutil: join: part %d", i)
			}
		} else {
			s = render(p)
		}
		if !first {
			b.WriteString(j.sep)
		}
		b.WriteString(s)
		first = false
	}
	return nil
}

// Join returns the parts joined by the separator.
func (j Joiner) Join(parts ...any) (string, error) {
	var b strings.Builder
	if err := j.AppendTo(&b, parts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// JoinStrings joins parts. Strings are never null so it cannot fail.
func (j Joiner) JoinStrings(parts []string) string {
	return strings.Join(parts, j.sep)
}

// WithKeyValueSeparator returns a MapJoiner that joins entries with j's
// separator and keys to values with kv.
func (j Joiner) WithKeyValueSeparator(kv string) MapJoiner {
	return MapJoiner{entries: j, kv: kv}
}

// A MapJoiner renders a map as key/value entries.
type MapJoiner struct {
	entries Joiner
	kv      string
}

// Join renders m with its entries in sorted key order.
func (mj MapJoiner) Join(m map[string]string) string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(mj.entries.sep)
		}
		b.WriteString(k)
		b.WriteString(mj.kv)
		b.WriteString(m[k])
	}
	return b.String()
}
