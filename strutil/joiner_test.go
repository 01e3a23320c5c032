package strutil

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/floppywaste/gutil/errdefs"
)

func TestJoiner(t *testing.T) {
	var nilString *string
	d := "d"
	tests := []struct {
		j     Joiner
		parts []any
		want  string
	}{
		{NewJoiner(", ").SkipNulls(), []any{"a", "b", "c", nil, "e"}, "a, b, c, e"},
		{NewJoiner(", ").UseForNull("_"), []any{"a", "b", "c", nil, "e"}, "a, b, c, _, e"},
		{NewJoiner(", ").UseForNull("_"), []any{"a", nil}, "a, _"},
		{NewJoiner(", ").SkipNulls(), []any{nil, nil}, ""},
		{NewJoiner("-"), []any{1, 2.5, true}, "1-2.5-true"},
		{NewJoiner("-").SkipNulls(), []any{nilString, &d}, "d"},
		{NewJoiner("-"), nil, ""},
		// last configuration wins
		{NewJoiner(",").UseForNull("x").SkipNulls(), []any{"a", nil}, "a"},
	}
	for _, tt := range tests {
		got, err := tt.j.Join(tt.parts...)
		if err != nil {
			t.Errorf("Join(%v): %v", tt.parts, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Join(%v) = %q; want: %q", tt.parts, got, tt.want)
		}
	}
}

func TestJoinerNullFails(t *testing.T) {
	_, err := NewJoiner(", ").Join("a", nil)
	assert.ErrorIs(t, err, errdefs.ErrNullArgument)
	assert.ErrorContains(t, err, "part 1")

	var b strings.Builder
	err = NewJoiner(",").AppendTo(&b, "a", []int(nil))
	assert.Assert(t, errdefs.IsNullArgument(err))
	assert.Equal(t, b.String(), "a")
}

func TestJoinStrings(t *testing.T) {
	assert.Equal(t, NewJoiner("|").JoinStrings([]string{"a", "", "c"}), "a||c")
}

func TestMapJoiner(t *testing.T) {
	mj := NewJoiner("&").WithKeyValueSeparator("=")
	got := mj.Join(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, got, "a=1&b=2&c=3")
	assert.Equal(t, mj.Join(nil), "")
}
