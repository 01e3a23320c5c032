//go:build !linux

package ioutils

import "os"

func fadviseSequential(*os.File) {}
