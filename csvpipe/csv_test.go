package csvpipe

import (
	"strconv"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/floppywaste/gutil/errdefs"
	"github.com/floppywaste/gutil/ioutils"
	"github.com/floppywaste/gutil/lazy"
)

const testCSV = "testdata/test.csv"

func TestParseLine(t *testing.T) {
	tests := []struct {
		line, delim string
		want        Row
	}{
		{"a,b,c", ",", Row{"a", "b", "c"}},
		{"a,,c", "", Row{"a", "", "c"}},
		{"", ",", Row{""}},
		{"a;b", ",", Row{"a;b"}},
		{"a;b", ";", Row{"a", "b"}},
		{"a::b::", "::", Row{"a", "b", ""}},
		{`"a,b",c`, ",", Row{`"a`, `b"`, "c"}}, // no quoting
	}
	for _, tt := range tests {
		got := ParseLine(tt.line, tt.delim)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseLine(%q, %q): (-want +got)\n%s", tt.line, tt.delim, diff)
		}
	}
}

func TestRowColumn(t *testing.T) {
	r := Row{"a", "b"}
	v, err := r.Column(1)
	assert.NilError(t, err)
	assert.Equal(t, v, "b")
	for _, i := range []int{-1, 2} {
		_, err := r.Column(i)
		assert.ErrorIs(t, err, errdefs.ErrParse)
	}
}

func readTestCSV(t *testing.T) lazy.View[Row] {
	t.Helper()
	lines, err := ioutils.FileSource(testCSV).AsCharSource(nil).ReadLines()
	assert.NilError(t, err)
	return Parse(lazy.Of(lines...), ",")
}

func TestGroupByAggregateMean(t *testing.T) {
	groups, err := GroupBy(readTestCSV(t), 0)
	assert.NilError(t, err)
	assert.DeepEqual(t, groups.Keys(), []string{"Sensor A", "Sensor B"})
	assert.Equal(t, len(groups.Get("Sensor B")), 4)

	means, err := AggregateMean(groups, 2)
	assert.NilError(t, err)
	assert.DeepEqual(t, means, map[string]float64{
		"Sensor A": 150,
		"Sensor B": 406.25,
	})
}

func TestGroupByMissingColumn(t *testing.T) {
	_, err := GroupBy(readTestCSV(t), 3)
	assert.ErrorIs(t, err, errdefs.ErrParse)
}

func TestAggregateMeanErrors(t *testing.T) {
	tests := []struct {
		lines  []string
		column int
	}{
		{[]string{"a,x,1", "a,y,two"}, 2},
		{[]string{"a,x,1", "b,y"}, 2},
		{[]string{"a,x,1.5"}, 2},
		{[]string{"a,x,1"}, 1},
	}
	for _, tt := range tests {
		groups, err := GroupBy(Parse(lazy.Of(tt.lines...), ","), 0)
		assert.NilError(t, err)
		_, err = AggregateMean(groups, tt.column)
		if !errdefs.IsParse(err) {
			t.Errorf("AggregateMean(%q, %d) = %v; want: parse error", tt.lines, tt.column, err)
		}
	}
}

func TestCountBy(t *testing.T) {
	counts, err := CountBy(readTestCSV(t), 0)
	assert.NilError(t, err)
	assert.Equal(t, counts.Count("Sensor A"), 2)
	assert.Equal(t, counts.Count("Sensor B"), 4)
	assert.Equal(t, counts.Len(), 6)

	_, err = CountBy(readTestCSV(t), 5)
	assert.ErrorIs(t, err, errdefs.ErrParse)
}

func TestDistinctColumn(t *testing.T) {
	src := ioutils.FileSource(testCSV).AsCharSource(nil)
	keys, err := DistinctColumn(src, 0, ",")
	assert.NilError(t, err)
	assert.Assert(t, keys.Equal(mapset.NewSet("Sensor A", "Sensor B")), "got: %v", keys)

	values, err := DistinctColumn(src, 2, ",")
	assert.NilError(t, err)
	assert.Equal(t, values.Cardinality(), 5)
	assert.Assert(t, values.Contains("100", "200", "400", "405", "410"))

	_, err = DistinctColumn(src, 3, ",")
	assert.ErrorIs(t, err, errdefs.ErrParse)
	_, err = DistinctColumn(src, -1, ",")
	assert.ErrorIs(t, err, errdefs.ErrInvalidArgument)
}

// The mean of a group is bounded by its smallest and largest value.
func TestAggregateMeanProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vals := rapid.SliceOfN(rapid.IntRange(-1000, 1000), 1, 20).Draw(t, "vals")
		key := rapid.SampledFrom([]string{"a", "b"}).Draw(t, "key")
		lines := make([]string, len(vals))
		lo, hi := vals[0], vals[0]
		for i, v := range vals {
			lines[i] = key + ",x," + strconv.Itoa(v)
			lo, hi = min(lo, v), max(hi, v)
		}
		groups, err := GroupBy(Parse(lazy.Of(lines...), ","), 0)
		if err != nil {
			t.Fatal(err)
		}
		means, err := AggregateMean(groups, 2)
		if err != nil {
			t.Fatal(err)
		}
		if m := means[key]; m < float64(lo) || m > float64(hi) {
			t.Fatalf("mean(%v) = %v; want in [%d, %d]", vals, m, lo, hi)
		}
		if len(means) != 1 {
			t.Fatalf("got %d groups; want: 1", len(means))
		}
	})
}
