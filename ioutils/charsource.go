package ioutils

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"strings"

	"github.com/containerd/log"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/floppywaste/gutil/errdefs"
)

// UTF8 decodes UTF-8 and drops a leading byte order mark.
var UTF8 encoding.Encoding = unicode.UTF8BOM

// maxLineLength bounds the length of a single line read by the line methods.
const maxLineLength = 16 << 20

// A CharSource is a readable origin of UTF-8 text.
type CharSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// StringSource returns a CharSource reading s.
func StringSource(s string) CharSource {
	return CharSource{name: "string", open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}}
}

// ConcatChars returns a CharSource whose lines are the lines of each of
// srcs in turn. Sources are opened one at a time as they are reached. A
// source whose text does not end in a line terminator is separated from the
// next by "\n", so lines never merge across sources.
func ConcatChars(srcs ...CharSource) CharSource {
	opens := make([]func() (io.ReadCloser, error), len(srcs))
	for i, s := range srcs {
		opens[i] = s.Open
	}
	return CharSource{name: "concat", open: func() (io.ReadCloser, error) {
		return &concatReader{opens: opens, separate: true}, nil
	}}
}

func (s CharSource) String() string { return "CharSource(" + s.name + ")" }

// Open opens a new stream of UTF-8 text over the source.
func (s CharSource) Open() (io.ReadCloser, error) {
	if s.open == nil {
		return nil, errors.Wrap(errdefs.ErrNullArgument, "ioutils: zero CharSource")
	}
	rc, err := s.open()
	if err != nil {
		return nil, errdefs.IO(err, "open %s", s.name)
	}
	return rc, nil
}

func (s CharSource) use(fn func(r io.Reader) error) (err error) {
	rc, err := s.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			if err == nil {
				err = errdefs.IO(cerr, "close %s", s.name)
			} else {
				log.L.WithError(cerr).WithField("source", s.name).Debug("close failed")
			}
		}
	}()
	return fn(rc)
}

// Read returns the full text of the source.
func (s CharSource) Read() (string, error) {
	var sb strings.Builder
	err := s.use(func(r io.Reader) error {
		_, err := io.Copy(&sb, r)
		return errdefs.IO(err, "read %s", s.name)
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ReadFirstLine returns the first line of the source without its
// terminator. ok is false if the source is empty.
func (s CharSource) ReadFirstLine() (line string, ok bool, err error) {
	err = s.use(func(r io.Reader) error {
		sc := newLineScanner(r)
		if sc.Scan() {
			line, ok = sc.Text(), true
			return nil
		}
		return errdefs.IO(sc.Err(), "read %s", s.name)
	})
	return line, ok, err
}

// ReadLines returns every line of the source. Lines end at "\n", "\r\n" or
// "\r"; terminators are not included and a final terminator does not
// produce an empty last line.
func (s CharSource) ReadLines() ([]string, error) {
	var lines []string
	for line, err := range s.Lines() {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Lines returns the lines of the source as a sequence. The source is opened
// when iteration starts and closed when it ends. A failure is yielded once,
// with an empty line, as the last element.
func (s CharSource) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := s.use(func(r io.Reader) error {
			sc := newLineScanner(r)
			for sc.Scan() {
				if !yield(sc.Text(), nil) {
					stopped = true
					return nil
				}
			}
			return errdefs.IO(sc.Err(), "read %s", s.name)
		})
		if err == nil {
			return
		}
		if stopped {
			log.L.WithError(err).WithField("source", s.name).Debug("error after iteration stopped")
			return
		}
		yield("", err)
	}
}

// A LineProcessor consumes lines one at a time and produces a result.
type LineProcessor[T any] interface {
	// ProcessLine handles one line. Returning false stops the scan.
	ProcessLine(line string) (bool, error)
	// Result returns the result once the scan ends.
	Result() T
}

// ReadLinesWith feeds the lines of src to p in order, stopping early if
// ProcessLine returns false or an error, and then returns p.Result().
func ReadLinesWith[T any](src CharSource, p LineProcessor[T]) (T, error) {
	for line, err := range src.Lines() {
		if err != nil {
			var zero T
			return zero, err
		}
		more, err := p.ProcessLine(line)
		if err != nil {
			var zero T
			return zero, err
		}
		if !more {
			break
		}
	}
	return p.Result(), nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	sc.Split(scanLines)
	return sc
}

// scanLines is a bufio.SplitFunc that accepts "\n", "\r\n" and "\r" as line
// terminators.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need more data to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type decodingReader struct {
	io.Reader
	io.Closer
}

func decodeReader(rc io.ReadCloser, enc encoding.Encoding) io.ReadCloser {
	if enc == nil {
		enc = UTF8
	}
	return decodingReader{
		Reader: transform.NewReader(rc, enc.NewDecoder()),
		Closer: rc,
	}
}

// concatReader reads each stream returned by opens in turn, opening the
// next only once the current one is exhausted. With separate set a "\n" is
// inserted after any non-empty stream that does not end in "\n".
type concatReader struct {
	opens    []func() (io.ReadCloser, error)
	cur      io.ReadCloser
	separate bool
	last     byte
	err      error
}

func (c *concatReader) Read(p []byte) (int, error) {
	for c.err == nil {
		if c.cur == nil {
			if len(c.opens) == 0 {
				c.err = io.EOF
				break
			}
			rc, err := c.opens[0]()
			if err != nil {
				c.err = err
				break
			}
			c.opens = c.opens[1:]
			c.cur = rc
		}
		n, err := c.cur.Read(p)
		if n > 0 {
			c.last = p[n-1]
			return n, nil
		}
		if err == io.EOF {
			cerr := c.cur.Close()
			c.cur = nil
			if cerr != nil {
				c.err = cerr
				break
			}
			// "\r" followed by the inserted "\n" is still one terminator.
			if c.separate && c.last != 0 && c.last != '\n' && len(c.opens) > 0 && len(p) > 0 {
				c.last = '\n'
				p[0] = '\n'
				return 1, nil
			}
			continue
		}
		if err != nil {
			c.err = err
		}
	}
	return 0, c.err
}

func (c *concatReader) Close() error {
	c.opens = nil
	if c.cur != nil {
		err := c.cur.Close()
		c.cur = nil
		return err
	}
	return nil
}
