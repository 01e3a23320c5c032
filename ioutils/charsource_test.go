package ioutils

import (
	"errors"
	"io"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/floppywaste/gutil/errdefs"
)

var csvLines = []string{
	"Sensor A,2015-02-14T10:00:00,100",
	"Sensor A,2015-02-14T10:05:00,200",
	"Sensor B,2015-02-14T10:00:00,400",
	"Sensor B,2015-02-14T10:05:00,410",
	"Sensor B,2015-02-14T10:10:00,405",
	"Sensor B,2015-02-14T10:15:00,410",
}

var readLinesTests = []struct {
	in   string
	want []string
}{
	{"", nil},
	{"a", []string{"a"}},
	{"a\n", []string{"a"}},
	{"a\n\n", []string{"a", ""}},
	{"\n", []string{""}},
	{"a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
	{"a\r", []string{"a"}},
	{"a\r\r\n", []string{"a", ""}},
	{"ä\nö", []string{"ä", "ö"}},
}

func TestReadLines(t *testing.T) {
	for _, tt := range readLinesTests {
		got, err := StringSource(tt.in).ReadLines()
		assert.NilError(t, err)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ReadLines(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestReadLinesFile(t *testing.T) {
	got, err := FileSource(testCSV).AsCharSource(UTF8).ReadLines()
	assert.NilError(t, err)
	assert.DeepEqual(t, got, csvLines)
}

func TestReadFirstLine(t *testing.T) {
	line, ok, err := FSSource(resources, testCSV).AsCharSource(UTF8).ReadFirstLine()
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, line, csvLines[0])

	_, ok, err = StringSource("").ReadFirstLine()
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestRead(t *testing.T) {
	s, err := FileSource(testCSV).AsCharSource(UTF8).Read()
	assert.NilError(t, err)
	assert.Equal(t, s, strings.Join(csvLines, "\n")+"\n")
}

func TestDecoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  encoding.Encoding
		want string
	}{
		{"utf-8 bom", []byte("\xef\xbb\xbfhällo"), UTF8, "hällo"},
		{"utf-8 nil", []byte("hällo"), nil, "hällo"},
		{"latin-1", []byte("h\xe4llo"), charmap.ISO8859_1, "hällo"},
		{"utf-16le", []byte{'h', 0, 0xe4, 0}, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "hä"},
	}
	for _, tt := range tests {
		got, err := BytesSource(tt.data).AsCharSource(tt.enc).Read()
		assert.NilError(t, err)
		if got != tt.want {
			t.Errorf("%s: Read() = %q; want: %q", tt.name, got, tt.want)
		}
	}
}

type firstColumn struct {
	seen mapset.Set[string]
}

func (p *firstColumn) ProcessLine(line string) (bool, error) {
	col, _, _ := strings.Cut(line, ",")
	p.seen.Add(col)
	return true, nil
}

func (p *firstColumn) Result() mapset.Set[string] { return p.seen }

type takeN struct {
	n     int
	lines []string
}

func (p *takeN) ProcessLine(line string) (bool, error) {
	p.lines = append(p.lines, line)
	return len(p.lines) < p.n, nil
}

func (p *takeN) Result() []string { return p.lines }

type failOn string

func (p failOn) ProcessLine(line string) (bool, error) {
	if line == string(p) {
		return false, errdefs.ErrParse
	}
	return true, nil
}

func (failOn) Result() int { return 1 }

func TestReadLinesWith(t *testing.T) {
	src := FileSource(testCSV).AsCharSource(UTF8)
	devices, err := ReadLinesWith[mapset.Set[string]](src, &firstColumn{seen: mapset.NewSet[string]()})
	assert.NilError(t, err)
	assert.Assert(t, devices.Equal(mapset.NewSet("Sensor A", "Sensor B")))

	first, err := ReadLinesWith[[]string](src, &takeN{n: 2})
	assert.NilError(t, err)
	assert.DeepEqual(t, first, csvLines[:2])

	_, err = ReadLinesWith[int](StringSource("a\nb\nc"), failOn("b"))
	assert.ErrorIs(t, err, errdefs.ErrParse)
}

func TestLinesEarlyStopCloses(t *testing.T) {
	closed := 0
	src := trackedSource("a\nb\nc\n", &closed, nil).AsCharSource(UTF8)
	for line, err := range src.Lines() {
		assert.NilError(t, err)
		if line == "a" {
			break
		}
	}
	assert.Equal(t, closed, 1)
}

func TestLinesError(t *testing.T) {
	boom := errors.New("boom")
	closed := 0
	var errs []error
	for _, err := range trackedSource("", &closed, boom).AsCharSource(UTF8).Lines() {
		errs = append(errs, err)
	}
	assert.Equal(t, len(errs), 1)
	assert.Assert(t, errdefs.IsIO(errs[0]))
	assert.ErrorIs(t, errs[0], boom)
	assert.Equal(t, closed, 1)
}

func TestConcatChars(t *testing.T) {
	src := FileSource(testCSV).AsCharSource(UTF8)
	got, err := ConcatChars(src, src).ReadLines()
	assert.NilError(t, err)
	assert.DeepEqual(t, got, append(append([]string{}, csvLines...), csvLines...))

	tests := []struct {
		parts []string
		want  []string
	}{
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"a\n", "b"}, []string{"a", "b"}},
		{[]string{"a\r", "\nb"}, []string{"a", "", "b"}},
		{[]string{"a", "", "b"}, []string{"a", "b"}},
		{[]string{"", ""}, nil},
		{nil, nil},
	}
	for _, tt := range tests {
		var srcs []CharSource
		for _, p := range tt.parts {
			srcs = append(srcs, StringSource(p))
		}
		got, err := ConcatChars(srcs...).ReadLines()
		assert.NilError(t, err)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ConcatChars(%q) (-want +got):\n%s", tt.parts, diff)
		}
	}
}

func TestConcatCharsOpenError(t *testing.T) {
	missing := FileSource("testdata/does-not-exist").AsCharSource(UTF8)
	_, err := ConcatChars(StringSource("a"), missing).ReadLines()
	assert.Assert(t, errdefs.IsIO(err))
}

func TestConcatLinesProperty(t *testing.T) {
	line := rapid.StringOf(rapid.RuneFrom([]rune{'a', 'b', 'ä', ' '}))
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SliceOf(line).Draw(t, "a")
		b := rapid.SliceOf(line).Draw(t, "b")
		got, err := ConcatChars(StringSource(joinLines(a)), StringSource(joinLines(b))).ReadLines()
		if err != nil {
			t.Fatal(err)
		}
		want := append(append([]string{}, a...), b...)
		if len(got) == 0 && len(want) == 0 {
			return
		}
		if !cmp.Equal(got, want) {
			t.Fatalf("lines = %q; want: %q", got, want)
		}
	})
}

// joinLines terminates every line with "\n".
func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

var _ io.Reader = (*concatReader)(nil)
