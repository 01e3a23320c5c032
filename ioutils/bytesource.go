// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package ioutils provides reusable byte and character sources and byte
// sinks.
//
// A source is a handle that can be opened any number of times; opening never
// mutates the origin and each Open returns an independent stream. Every
// method that opens a stream closes it before returning, on success and on
// error.
//
// Read and write faults are returned as [errdefs.ErrIO] errors that keep the
// underlying cause reachable with errors.Is and errors.As.
package ioutils

import (
	"bytes"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"io/fs"
	"os"

	"github.com/containerd/log"
	digest "github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"github.com/floppywaste/gutil/errdefs"
)

// A ByteSource is a readable origin of bytes.
type ByteSource struct {
	name string
	open func() (io.ReadCloser, error)
	size func() (int64, error) // nil if unknown
}

// FileSource returns a ByteSource reading the file at path.
func FileSource(path string) ByteSource {
	return ByteSource{
		name: path,
		open: func() (io.ReadCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			fadviseSequential(f)
			return f, nil
		},
		size: func() (int64, error) {
			fi, err := os.Stat(path)
			if err != nil {
				return 0, err
			}
			return fi.Size(), nil
		},
	}
}

// BytesSource returns a ByteSource reading b. b must not be modified while
// the source is in use.
func BytesSource(b []byte) ByteSource {
	return ByteSource{
		name: "bytes",
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		},
		size: func() (int64, error) { return int64(len(b)), nil },
	}
}

// FSSource returns a ByteSource reading name from fsys, such as an embed.FS
// holding bundled resources.
func FSSource(fsys fs.FS, name string) ByteSource {
	return ByteSource{
		name: name,
		open: func() (io.ReadCloser, error) { return fsys.Open(name) },
		size: func() (int64, error) {
			fi, err := fs.Stat(fsys, name)
			if err != nil {
				return 0, err
			}
			return fi.Size(), nil
		},
	}
}

// ConcatBytes returns a ByteSource reading each of srcs in turn. Each source
// is opened only when the previous one is exhausted.
func ConcatBytes(srcs ...ByteSource) ByteSource {
	opens := make([]func() (io.ReadCloser, error), len(srcs))
	for i, s := range srcs {
		opens[i] = s.Open
	}
	return ByteSource{
		name: "concat",
		open: func() (io.ReadCloser, error) {
			return &concatReader{opens: opens}, nil
		},
		size: func() (int64, error) {
			var total int64
			for _, s := range srcs {
				n, err := s.Size()
				if err != nil {
					return 0, err
				}
				total += n
			}
			return total, nil
		},
	}
}

func (s ByteSource) String() string { return "ByteSource(" + s.name + ")" }

// Open opens a new stream over the source.
func (s ByteSource) Open() (io.ReadCloser, error) {
	if s.open == nil {
		return nil, errors.Wrap(errdefs.ErrNullArgument, "ioutils: zero ByteSource")
	}
	rc, err := s.open()
	if err != nil {
		return nil, errdefs.IO(err, "open %s", s.name)
	}
	return rc, nil
}

// Size returns the length of the source in bytes. Sources of unknown size
// fail with [errdefs.ErrIllegalState].
func (s ByteSource) Size() (int64, error) {
	if s.size == nil {
		return 0, errors.Wrapf(errdefs.ErrIllegalState, "ioutils: size of %s is unknown", s.name)
	}
	n, err := s.size()
	if err != nil {
		return 0, errdefs.IO(err, "stat %s", s.name)
	}
	return n, nil
}

// use opens the source, passes the stream to fn and closes it.
func (s ByteSource) use(fn func(r io.Reader) error) (err error) {
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

// Read returns the full contents of the source.
func (s ByteSource) Read() ([]byte, error) {
	var b []byte
	err := s.use(func(r io.Reader) (err error) {
		b, err = io.ReadAll(r)
		return errdefs.IO(err, "read %s", s.name)
	})
	return b, err
}

// A HashCode is the result of hashing a source.
type HashCode []byte

// String returns h as lowercase hex.
func (h HashCode) String() string { return hex.EncodeToString(h) }

// Equal reports whether h and o are the same hash.
func (h HashCode) Equal(o HashCode) bool { return bytes.Equal(h, o) }

// Hash streams the source through a hash created by newHash. The source is
// never held in memory in full.
func (s ByteSource) Hash(newHash func() hash.Hash) (HashCode, error) {
	if newHash == nil {
		return nil, errors.Wrap(errdefs.ErrNullArgument, "ioutils: hash function")
	}
	h := newHash()
	if _, err := s.WriteTo(h); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// Digest streams the source through alg and returns the digest, e.g.
// "sha256:...". An unavailable algorithm fails with
// [errdefs.ErrInvalidArgument].
func (s ByteSource) Digest(alg digest.Algorithm) (digest.Digest, error) {
	if !alg.Available() {
		return "", errors.Wrapf(errdefs.ErrInvalidArgument, "ioutils: digest algorithm %q unavailable", alg)
	}
	d := alg.Digester()
	if _, err := s.WriteTo(d.Hash()); err != nil {
		return "", err
	}
	return d.Digest(), nil
}

// WriteTo copies the source to w.
func (s ByteSource) WriteTo(w io.Writer) (int64, error) {
	var n int64
	err := s.use(func(r io.Reader) (err error) {
		n, err = io.Copy(w, r)
		return errdefs.IO(err, "copy %s", s.name)
	})
	return n, err
}

// CopyTo copies the source to sink. On failure whatever was already written
// stays written, except that an Atomic sink keeps its old content.
func (s ByteSource) CopyTo(sink ByteSink) (int64, error) {
	return s.copyTo(sink, nil)
}

func (s ByteSource) copyTo(sink ByteSink, wrap func(io.Writer) io.Writer) (n int64, err error) {
	w, err := sink.Open()
	if err != nil {
		return 0, err
	}
	defer func() { err = closeStream(w, sink.name, err) }()
	var dst io.Writer = w
	if wrap != nil {
		dst = wrap(w)
	}
	return s.WriteTo(dst)
}

// ContentEquals reports whether s and o hold the same bytes. Both sources
// are streamed side by side.
func (s ByteSource) ContentEquals(o ByteSource) (bool, error) {
	var equal bool
	err := s.use(func(r1 io.Reader) error {
		return o.use(func(r2 io.Reader) (err error) {
			equal, err = readersEqual(r1, r2)
			return errdefs.IO(err, "compare %s with %s", s.name, o.name)
		})
	})
	return equal, err
}

const compareBufSize = 8 * 1024

func readersEqual(r1, r2 io.Reader) (bool, error) {
	b1 := make([]byte, compareBufSize)
	b2 := make([]byte, compareBufSize)
	for {
		n1, err1 := io.ReadFull(r1, b1)
		if err1 != nil && err1 != io.EOF && err1 != io.ErrUnexpectedEOF {
			return false, err1
		}
		n2, err2 := io.ReadFull(r2, b2)
		if err2 != nil && err2 != io.EOF && err2 != io.ErrUnexpectedEOF {
			return false, err2
		}
		if n1 != n2 || !bytes.Equal(b1[:n1], b2[:n2]) {
			return false, nil
		}
		if err1 != nil || err2 != nil {
			return err1 != nil && err2 != nil, nil
		}
	}
}

// AsCharSource returns a CharSource decoding s with enc. Use [UTF8] for
// UTF-8 text with an optional byte order mark.
func (s ByteSource) AsCharSource(enc encoding.Encoding) CharSource {
	return CharSource{name: s.name, open: func() (io.ReadCloser, error) {
		rc, err := s.Open()
		if err != nil {
			return nil, err
		}
		return decodeReader(rc, enc), nil
	}}
}
