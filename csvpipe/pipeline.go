package csvpipe

import (
	"context"

	"github.com/containerd/log"
	"golang.org/x/text/encoding"

	"github.com/floppywaste/gutil/fn"
	"github.com/floppywaste/gutil/ioutils"
	"github.com/floppywaste/gutil/lazy"
)

// A Pipeline reads lines, parses them into rows, groups the rows by key and
// averages the value column of each group.
type Pipeline struct {
	cfg Config
	enc encoding.Encoding
}

// New returns a Pipeline for cfg. Empty string fields of cfg take their
// value from DefaultConfig.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.withDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, enc: enc}, nil
}

// Config returns the configuration of p.
func (p *Pipeline) Config() Config { return p.cfg }

func isEmpty(line string) bool { return line == "" }

// Rows returns the parsed rows of lines after dropping the header and empty
// lines as configured.
func (p *Pipeline) Rows(lines []string) lazy.View[Row] {
	v := lazy.Of(lines...)
	if p.cfg.SkipHeader {
		v = v.Skip(1)
	}
	if p.cfg.OmitEmptyLines {
		v = v.Filter(fn.Not[string](isEmpty))
	}
	return Parse(v, p.cfg.Delimiter)
}

// Run reads src and returns the mean of the value column for each key.
func (p *Pipeline) Run(ctx context.Context, src ioutils.CharSource) (map[string]float64, error) {
	logger := log.G(ctx).WithField("source", src.String())
	lines, err := src.ReadLines()
	if err != nil {
		return nil, err
	}
	logger.WithField("lines", len(lines)).Debug("csvpipe: read")

	groups, err := GroupBy(p.Rows(lines), p.cfg.KeyColumn)
	if err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{
		"rows":   groups.Len(),
		"groups": groups.KeyLen(),
	}).Debug("csvpipe: grouped")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return AggregateMean(groups, p.cfg.ValueColumn)
}

// RunFile is Run over the file at path, decoded with the configured encoding.
func (p *Pipeline) RunFile(ctx context.Context, path string) (map[string]float64, error) {
	return p.Run(ctx, ioutils.FileSource(path).AsCharSource(p.enc))
}
