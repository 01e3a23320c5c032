package ioutils

import (
	"bytes"
	"io"
	"os"

	"github.com/moby/sys/atomicwriter"
	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/errdefs"
)

// WriteMode selects how a file sink treats an existing file.
type WriteMode uint8

const (
	// Truncate creates the file or empties an existing one.
	Truncate WriteMode = iota
	// Append creates the file or writes after its existing content.
	Append
	// Atomic holds the written bytes until the stream is closed, then
	// writes them to a temporary file in the same directory and renames it
	// over the destination. Readers see either the old or the new content
	// and never a partial file. A copy that fails leaves the destination
	// untouched.
	Atomic
)

func (m WriteMode) String() string {
	switch m {
	case Truncate:
		return "truncate"
	case Append:
		return "append"
	case Atomic:
		return "atomic"
	}
	return "unknown"
}

const defaultFileMode os.FileMode = 0o644

// A ByteSink is a writable destination for bytes.
type ByteSink struct {
	name string
	open func() (io.WriteCloser, error)
}

// FileSink returns a ByteSink writing the file at path with the given mode.
func FileSink(path string, mode WriteMode) ByteSink {
	return ByteSink{name: path, open: func() (io.WriteCloser, error) {
		switch mode {
		case Truncate:
			return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFileMode)
		case Append:
			return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, defaultFileMode)
		case Atomic:
			return &atomicFile{path: path}, nil
		}
		return nil, errors.Wrapf(errdefs.ErrInvalidArgument, "ioutils: write mode %d", mode)
	}}
}

// atomicFile is the stream of an Atomic sink.
type atomicFile struct {
	path    string
	buf     bytes.Buffer
	aborted bool
}

func (f *atomicFile) Write(p []byte) (int, error) { return f.buf.Write(p) }

// abort discards the buffered bytes; Close then leaves the file alone.
func (f *atomicFile) abort() { f.aborted = true }

func (f *atomicFile) Close() error {
	if f.aborted {
		return nil
	}
	return atomicwriter.WriteFile(f.path, f.buf.Bytes(), defaultFileMode)
}

// closeStream closes w after a copy that ended with err. Streams that can
// abort are aborted first so a failed copy does not commit. A close error is
// only reported when the copy succeeded.
func closeStream(w io.WriteCloser, name string, err error) error {
	if a, ok := w.(interface{ abort() }); ok && err != nil {
		a.abort()
	}
	if cerr := w.Close(); cerr != nil && err == nil {
		return errdefs.IO(cerr, "close %s", name)
	}
	return err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// WriterSink returns a ByteSink writing to w. Closing a stream opened from
// it does not close w.
func WriterSink(w io.Writer) ByteSink {
	return ByteSink{name: "writer", open: func() (io.WriteCloser, error) {
		return nopWriteCloser{w}, nil
	}}
}

func (s ByteSink) String() string { return "ByteSink(" + s.name + ")" }

// Open opens a new stream to the sink.
func (s ByteSink) Open() (io.WriteCloser, error) {
	if s.open == nil {
		return nil, errors.Wrap(errdefs.ErrNullArgument, "ioutils: zero ByteSink")
	}
	w, err := s.open()
	if err != nil {
		if errdefs.IsInvalidArgument(err) {
			return nil, err
		}
		return nil, errdefs.IO(err, "open %s", s.name)
	}
	return w, nil
}

// Write writes b to the sink.
func (s ByteSink) Write(b []byte) error {
	_, err := s.WriteFrom(bytes.NewReader(b))
	return err
}

// WriteFrom copies r to the sink.
func (s ByteSink) WriteFrom(r io.Reader) (n int64, err error) {
	w, err := s.Open()
	if err != nil {
		return 0, err
	}
	defer func() { err = closeStream(w, s.name, err) }()
	n, err = io.Copy(w, r)
	return n, errdefs.IO(err, "write %s", s.name)
}
