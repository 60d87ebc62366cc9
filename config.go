package neur

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Defaults shared by the library and the CLI.
const (
	DefaultSource = "src"
	DefaultOutput = "dist"
)

// Config holds one run's settings. Validate must pass before the
// pipeline touches any file; the value is treated as immutable afterward.
type Config struct {
	Source  string // source tree root (default "src")
	Output  string // destination root (default "dist")
	Minify  bool   // compact CSS and HTML output
	Workers int    // render concurrency; 0 means one worker per CPU
}

// withDefaults fills in unset directories.
func (c Config) withDefaults() Config {
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return c
}

// Validate rejects source/output pairs that would make the walk feed on
// its own output.
func (c Config) Validate() error {
	src, err := filepath.Abs(c.Source)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(c.Output)
	if err != nil {
		return err
	}

	switch {
	case src == out:
		return fmt.Errorf("source and output can't be the same directory")
	case isAncestor(src, out):
		return fmt.Errorf("output directory can't be under the source directory")
	case isAncestor(out, src):
		return fmt.Errorf("source directory can't be under the output directory")
	}
	return nil
}

// isAncestor reports whether child lives somewhere below parent. Both
// paths must be absolute and cleaned.
func isAncestor(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
