package ioutils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// CopyToWithProgress is like CopyTo but reports progress on stderr when it
// is a terminal. The bar is silent otherwise.
func (s ByteSource) CopyToWithProgress(sink ByteSink, desc string) (int64, error) {
	max := int64(-1)
	if n, err := s.Size(); err == nil {
		max = n
	}
	bar := newProgressBar(max, desc, term.IsTerminal(int(os.Stderr.Fd())))
	n, err := s.copyTo(sink, func(w io.Writer) io.Writer {
		return io.MultiWriter(w, bar)
	})
	if err == nil {
		bar.Finish()
	}
	return n, err
}

func newProgressBar(max int64, desc string, visible bool) *progressbar.ProgressBar {
	if visible {
		return progressbar.DefaultBytes(max, desc)
	}
	return progressbar.DefaultBytesSilent(max, desc)
}
