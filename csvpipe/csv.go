// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package csvpipe reads delimited text and aggregates it by column:
// read, parse, group, aggregate.
//
// Fields are split on the delimiter only. Quoting and escaping are not
// supported, so a delimiter can never appear inside a field.
package csvpipe

import (
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/collect"
	"github.com/floppywaste/gutil/errdefs"
	"github.com/floppywaste/gutil/ioutils"
	"github.com/floppywaste/gutil/lazy"
	"github.com/floppywaste/gutil/strutil"
)

// A Row holds the fields of one line.
type Row []string

// Column returns field i. A row without that field fails with
// [errdefs.ErrParse].
func (r Row) Column(i int) (string, error) {
	if i < 0 || i >= len(r) {
		return "", errors.Wrapf(errdefs.ErrParse, "csvpipe: row %q has no column %d", []string(r), i)
	}
	return r[i], nil
}

// ParseLine splits line on delim. An empty delimiter uses ",".
func ParseLine(line, delim string) Row {
	return Row(splitter(delim).SplitToList(line))
}

func splitter(delim string) strutil.Splitter {
	if delim == "" {
		delim = DefaultDelimiter
	}
	return strutil.NewSplitter(delim)
}

// Parse returns a View of the rows of lines. Lines are split as the view is
// consumed.
func Parse(lines lazy.View[string], delim string) lazy.View[Row] {
	sp := splitter(delim)
	return lazy.Map(lines, func(line string) Row {
		return Row(sp.SplitToList(line))
	})
}

// GroupBy groups rows by the value of keyColumn, keeping row order within
// each group and key order by first appearance.
func GroupBy(rows lazy.View[Row], keyColumn int) (*collect.ListMultimap[string, Row], error) {
	groups := collect.NewListMultimap[string, Row]()
	for row := range rows.All() {
		key, err := row.Column(keyColumn)
		if err != nil {
			return nil, err
		}
		groups.Put(key, row)
	}
	return groups, nil
}

// AggregateMean returns the arithmetic mean of valueColumn for each group.
// Values must be base-10 integers; anything else fails with
// [errdefs.ErrParse].
func AggregateMean(groups *collect.ListMultimap[string, Row], valueColumn int) (map[string]float64, error) {
	values, err := collect.TryTransformValues(groups, func(row Row) (float64, error) {
		s, err := row.Column(valueColumn)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.Wrapf(errdefs.ErrParse, "csvpipe: column %d: %v", valueColumn, err)
		}
		return float64(n), nil
	})
	if err != nil {
		return nil, err
	}
	means := make(map[string]float64, values.KeyLen())
	for key, vs := range values.All() {
		mean, err := stats.Mean(stats.Float64Data(vs))
		if err != nil {
			return nil, errors.Wrapf(errdefs.ErrParse, "csvpipe: group %q: %v", key, err)
		}
		means[key] = mean
	}
	return means, nil
}

// CountBy counts rows by the value of column.
func CountBy(rows lazy.View[Row], column int) (*collect.Multiset[string], error) {
	counts := collect.NewMultiset[string]()
	for row := range rows.All() {
		v, err := row.Column(column)
		if err != nil {
			return nil, err
		}
		counts.Add(v)
	}
	return counts, nil
}

// columnCollector is a LineProcessor gathering the distinct values of one
// column.
type columnCollector struct {
	sp     strutil.Splitter
	column int
	seen   mapset.Set[string]
}

func (c *columnCollector) ProcessLine(line string) (bool, error) {
	i := 0
	for field := range c.sp.Split(line) {
		if i == c.column {
			c.seen.Add(field)
			return true, nil
		}
		i++
	}
	return false, errors.Wrapf(errdefs.ErrParse, "csvpipe: line %q has no column %d", line, c.column)
}

func (c *columnCollector) Result() mapset.Set[string] { return c.seen }

// DistinctColumn returns the distinct values of column over the lines of
// src. Fields past column are not split.
func DistinctColumn(src ioutils.CharSource, column int, delim string) (mapset.Set[string], error) {
	if column < 0 {
		return nil, errors.Wrapf(errdefs.ErrInvalidArgument, "csvpipe: column %d", column)
	}
	return ioutils.ReadLinesWith[mapset.Set[string]](src, &columnCollector{
		sp:     splitter(delim).Limit(column + 2),
		column: column,
		seen:   mapset.NewSet[string](),
	})
}
