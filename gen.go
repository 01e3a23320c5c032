//go:build gen
// +build gen

// gen builds internal/gentables and regenerates every generated table file
// in the module. Run with: go run -tags gen gen.go [gentables flags]
package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/containerd/log"
)

var projectRoot = sync.OnceValue(func() string {
	cmd := exec.Command("go", "list", "-m", "-f", "{{.Dir}}", "github.com/floppywaste/gutil")
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.L.WithError(err).Fatalf("error running command %q:\n\n%s", cmd.Args, bytes.TrimSpace(out))
	}
	dir := string(bytes.TrimSpace(out))
	if _, err := os.Stat(dir); err != nil {
		log.L.Fatal(err)
	}
	return dir
})

func buildGen() string {
	gendir := filepath.Join(projectRoot(), "internal/gentables")
	if _, err := os.Stat(gendir); err != nil {
		log.L.Fatal(err)
	}

	exe := filepath.Join(projectRoot(), "bin", "gentables")
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", exe)
	cmd.Dir = gendir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.L.WithError(err).Fatalf("error running command %q", cmd.Args)
	}
	return exe
}

// Generated table files, relative to the project root.
var outputs = []string{
	"charmatch/tables.go",
}

func realMain(args []string) int {
	root := projectRoot()
	exe := buildGen()

	var exitcode int
	for _, out := range outputs {
		cmd := exec.Command(exe, append([]string{"-output", out}, args...)...)
		cmd.Dir = root
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			log.L.WithError(err).WithField("output", out).Errorf("error running command %q", cmd.Args)
			exitcode++
		}
	}
	return exitcode
}

func main() {
	if code := realMain(os.Args[1:]); code != 0 {
		log.L.Fatalf("gen: exit: %d", code)
	}
}
