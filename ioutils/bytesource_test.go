package ioutils

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	_ "crypto/sha256"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"testing/iotest"

	digest "github.com/opencontainers/go-digest"
	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/floppywaste/gutil/errdefs"
)

//go:embed testdata/test.csv
var resources embed.FS

const (
	testCSV       = "testdata/test.csv"
	testCSVMD5    = "b540fbe2c5798401f1bcfcc10b4a014e"
	testCSVSHA256 = "sha256:d96bf5566a89a6e8b11fb73be6cd5b25c98427d97e36a823a687a4ce218a3499"
	testCSVSize   = 198
)

func TestHash(t *testing.T) {
	for _, src := range []ByteSource{
		FileSource(testCSV),
		FSSource(resources, testCSV),
	} {
		h, err := src.Hash(md5.New)
		assert.NilError(t, err)
		if got := h.String(); got != testCSVMD5 {
			t.Errorf("%s.Hash(md5) = %s; want: %s", src, got, testCSVMD5)
		}
	}
	_, err := FileSource(testCSV).Hash(nil)
	assert.ErrorIs(t, err, errdefs.ErrNullArgument)
}

func TestDigest(t *testing.T) {
	d, err := FileSource(testCSV).Digest(digest.SHA256)
	assert.NilError(t, err)
	assert.Equal(t, d.String(), testCSVSHA256)

	_, err = FileSource(testCSV).Digest(digest.Algorithm("md4"))
	assert.ErrorIs(t, err, errdefs.ErrInvalidArgument)
}

func TestSize(t *testing.T) {
	n, err := FileSource(testCSV).Size()
	assert.NilError(t, err)
	assert.Equal(t, n, int64(testCSVSize))

	n, err = ConcatBytes(BytesSource([]byte("ab")), FSSource(resources, testCSV)).Size()
	assert.NilError(t, err)
	assert.Equal(t, n, int64(testCSVSize+2))
}

func TestOpenMissing(t *testing.T) {
	_, err := FileSource(filepath.Join(t.TempDir(), "missing")).Read()
	assert.Assert(t, errdefs.IsIO(err))
	assert.Assert(t, errors.Is(err, fs.ErrNotExist))
	var pe *fs.PathError
	assert.Assert(t, errors.As(err, &pe))

	_, err = ByteSource{}.Read()
	assert.ErrorIs(t, err, errdefs.ErrNullArgument)
}

type closeTracker struct {
	io.Reader
	closed *int
	err    error
}

func (c closeTracker) Read(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.Reader.Read(p)
}

func (c closeTracker) Close() error {
	*c.closed++
	return nil
}

func trackedSource(data string, closed *int, err error) ByteSource {
	return ByteSource{name: "tracked", open: func() (io.ReadCloser, error) {
		return closeTracker{Reader: bytes.NewReader([]byte(data)), closed: closed, err: err}, nil
	}}
}

func TestStreamsAreClosed(t *testing.T) {
	closed := 0
	src := trackedSource("abc", &closed, nil)
	_, err := src.Read()
	assert.NilError(t, err)
	_, err = src.Hash(sha1.New)
	assert.NilError(t, err)
	assert.Equal(t, closed, 2)

	closed = 0
	boom := errors.New("boom")
	_, err = trackedSource("abc", &closed, boom).Read()
	assert.ErrorIs(t, err, boom)
	assert.Assert(t, errdefs.IsIO(err))
	assert.Equal(t, closed, 1)
}

func TestConcatBytesLazy(t *testing.T) {
	opened := 0
	counting := ByteSource{name: "counting", open: func() (io.ReadCloser, error) {
		opened++
		return io.NopCloser(bytes.NewReader([]byte("xy"))), nil
	}}
	rc, err := ConcatBytes(counting, counting, counting).Open()
	assert.NilError(t, err)
	defer rc.Close()
	assert.Equal(t, opened, 0)

	buf := make([]byte, 2)
	_, err = io.ReadFull(rc, buf)
	assert.NilError(t, err)
	assert.Equal(t, opened, 1)

	rest, err := io.ReadAll(rc)
	assert.NilError(t, err)
	assert.Equal(t, string(rest), "xyxy")
	assert.Equal(t, opened, 3)
}

func TestCopyTo(t *testing.T) {
	dir := t.TempDir()
	src := FileSource(testCSV)
	for _, mode := range []WriteMode{Truncate, Atomic} {
		out := filepath.Join(dir, "out-"+mode.String()+".csv")
		// existing content is replaced
		assert.NilError(t, os.WriteFile(out, []byte("old content that is longer than nothing"), 0o644))

		n, err := src.CopyTo(FileSink(out, mode))
		assert.NilError(t, err)
		assert.Equal(t, n, int64(testCSVSize))

		srcHash, err := src.Hash(md5.New)
		assert.NilError(t, err)
		sinkHash, err := FileSource(out).Hash(md5.New)
		assert.NilError(t, err)
		assert.Assert(t, srcHash.Equal(sinkHash), "%s: %s != %s", mode, srcHash, sinkHash)
	}
}

func TestCopyToEmptyAtomic(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty")
	assert.NilError(t, os.WriteFile(out, []byte("old"), 0o644))
	_, err := BytesSource(nil).CopyTo(FileSink(out, Atomic))
	assert.NilError(t, err)
	b, err := os.ReadFile(out)
	assert.NilError(t, err)
	assert.Equal(t, len(b), 0)
}

func TestCopyToAtomicFailureKeepsOld(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	assert.NilError(t, os.WriteFile(out, []byte("OLD CONTENT"), 0o644))

	boom := errors.New("disk gone")
	src := ByteSource{name: "flaky", open: func() (io.ReadCloser, error) {
		return io.NopCloser(io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom))), nil
	}}
	_, err := src.CopyTo(FileSink(out, Atomic))
	assert.ErrorIs(t, err, boom)
	assert.Assert(t, errdefs.IsIO(err))

	b, err := os.ReadFile(out)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "OLD CONTENT")

	_, err = FileSink(out, Atomic).WriteFrom(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
	b, err = os.ReadFile(out)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "OLD CONTENT")

	entries, err := os.ReadDir(filepath.Dir(out))
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 1)
}

func TestAppendSink(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.txt")
	sink := FileSink(out, Append)
	assert.NilError(t, sink.Write([]byte("one\n")))
	assert.NilError(t, sink.Write([]byte("two\n")))
	got, err := FileSource(out).AsCharSource(UTF8).ReadLines()
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []string{"one", "two"})
}

func TestInvalidWriteMode(t *testing.T) {
	err := FileSink(filepath.Join(t.TempDir(), "x"), WriteMode(9)).Write([]byte("x"))
	assert.ErrorIs(t, err, errdefs.ErrInvalidArgument)
	assert.Assert(t, !errdefs.IsIO(err))
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	n, err := BytesSource([]byte("hello")).CopyTo(WriterSink(&buf))
	assert.NilError(t, err)
	assert.Equal(t, n, int64(5))
	assert.Equal(t, buf.String(), "hello")
}

func TestCopyToWithProgress(t *testing.T) {
	var buf bytes.Buffer
	n, err := FileSource(testCSV).CopyToWithProgress(WriterSink(&buf), "copy")
	assert.NilError(t, err)
	assert.Equal(t, n, int64(testCSVSize))
	want, err := os.ReadFile(testCSV)
	assert.NilError(t, err)
	assert.DeepEqual(t, buf.Bytes(), want)
}

func TestContentEquals(t *testing.T) {
	big := bytes.Repeat([]byte("0123456789"), compareBufSize/5)
	tests := []struct {
		a, b []byte
		want bool
	}{
		{nil, nil, true},
		{[]byte("abc"), []byte("abc"), true},
		{[]byte("abc"), []byte("abd"), false},
		{[]byte("abc"), []byte("ab"), false},
		{big, big, true},
		{big, append(append([]byte{}, big...), 'x'), false},
		{big, big[:len(big)-1], false},
	}
	for i, tt := range tests {
		got, err := BytesSource(tt.a).ContentEquals(BytesSource(tt.b))
		assert.NilError(t, err)
		if got != tt.want {
			t.Errorf("%d: ContentEquals = %t; want: %t", i, got, tt.want)
		}
	}

	eq, err := FileSource(testCSV).ContentEquals(FSSource(fstest.MapFS{
		"test.csv": &fstest.MapFile{Data: mustRead(t, testCSV)},
	}, "test.csv"))
	assert.NilError(t, err)
	assert.Assert(t, eq)
}

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(name)
	assert.NilError(t, err)
	return b
}

func TestReadRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")
		got, err := ConcatBytes(BytesSource(data[:len(data)/2]), BytesSource(data[len(data)/2:])).Read()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("Read() = %x; want: %x", got, data)
		}
	})
}
