// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// gentables generates the rune class tables used by charmatch. The tables
// must be regenerated if this code is changed (`go generate`).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/containerd/log"
	"github.com/moby/sys/atomicwriter"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

func dataEqual(filename string, data []byte) bool {
	got, err := os.ReadFile(filename)
	return err == nil && bytes.Equal(got, data)
}

// verify checks every rune against the generated tables. This visits all of
// Unicode so use a progress bar.
func verify(t *tables) error {
	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(maxRune+1, "verify")
	} else {
		bar = progressbar.DefaultSilent(maxRune+1, "verify")
	}
	const chunk = 1 << 12
	for lo := rune(0); lo <= maxRune; lo += chunk {
		for r := lo; r < lo+chunk && r <= maxRune; r++ {
			if err := t.check(r); err != nil {
				return err
			}
		}
		bar.Add(chunk)
	}
	return bar.Finish()
}

func realMain() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [OPTION]...\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	output := flag.String("output", "tables.go", "write the generated tables to `file`")
	dryRun := flag.Bool("dry-run", false,
		"report if generate would change the generated tables file and exit non-zero")
	skipVerify := flag.Bool("skip-verify", false, "skip checking every rune against the tables")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel("debug")
	}
	logger := log.L.WithField("file", *output)

	t := buildTables()
	if !*skipVerify {
		if err := verify(t); err != nil {
			logger.WithError(err).Error("gen: tables do not match package unicode")
			return 1
		}
	}

	src, err := t.generate()
	if err != nil {
		logger.WithError(err).Error("gen: formatting generated source")
		return 1
	}
	if dataEqual(*output, src) {
		logger.Info("gen: exiting - no changes")
		return 0
	}
	if *dryRun {
		logger.Warn("gen: would change file (remove -dry-run flag to update the generated files)")
		return 1
	}
	if err := atomicwriter.WriteFile(*output, src, 0o644); err != nil {
		logger.WithError(err).Error("gen: writing tables")
		return 1
	}
	logger.WithField("whitespace_ranges", len(t.whitespace)).Info("Successfully generated tables")
	return 0
}

func main() {
	if code := realMain(); code != 0 {
		os.Exit(code)
	}
}
