package main

import (
	"os"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestCoalesce(t *testing.T) {
	got := coalesce([]rune{1, 2, 3, 5, 7, 8})
	want := []runeRange{{1, 3}, {5, 5}, {7, 8}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(runeRange{})); diff != "" {
		t.Errorf("coalesce: (-want +got)\n%s", diff)
	}
	assert.Equal(t, len(coalesce(nil)), 0)
}

func TestVerify(t *testing.T) {
	tabs := buildTables()
	for _, r := range []rune{0, ' ', '\t', 0x1c, 'A', 'z', '7', 0x85, 0x3000, 0x10FFFF} {
		assert.NilError(t, tabs.check(r))
	}
	tabs.ascii['A'] = 0
	assert.ErrorContains(t, tabs.check('A'), "U+0041")
}

func TestIsWhitespace(t *testing.T) {
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if got, want := isWhitespace(r), unicode.IsSpace(r); got != want {
			t.Errorf("isWhitespace(%U) = %t; want: %t", r, got, want)
		}
	}
	for r := rune(0x1c); r <= 0x1f; r++ {
		assert.Assert(t, !isWhitespace(r), "%U", r)
	}
}

// The checked-in tables must match what the generator produces.
func TestTablesUpToDate(t *testing.T) {
	want, err := os.ReadFile("../../charmatch/tables.go")
	if err != nil {
		t.Fatal(err)
	}
	got, err := buildTables().generate()
	assert.NilError(t, err)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("charmatch/tables.go is stale, run go generate: (-want +got)\n%s", diff)
	}
}
