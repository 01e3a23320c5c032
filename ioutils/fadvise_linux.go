//go:build linux

package ioutils

import (
	"os"

	"golang.org/x/sys/unix"
)

// fadviseSequential tells the kernel f will be read sequentially. It is a
// hint; failures are ignored.
func fadviseSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
