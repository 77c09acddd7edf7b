// Package report renders filter findings in an editor-friendly form.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Reporter writes formatted messages as they are recognized.
// Output is streamed, one line per finding, never buffered or reordered.
type Reporter struct {
	w       io.Writer
	workDir string
}

// New creates a Reporter writing to w. Paths are rendered relative to the
// current working directory so editors can jump to file:line.
func New(w io.Writer) *Reporter {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return &Reporter{w: w, workDir: wd}
}

// NewWithDir creates a Reporter that renders paths relative to dir.
func NewWithDir(w io.Writer, dir string) *Reporter {
	return &Reporter{w: w, workDir: dir}
}

// Issue writes one finding as "<relative-path>:<line>: <message>.".
// The message is passed through unmodified except for the trailing period.
func (r *Reporter) Issue(path string, line int, message string) {
	fmt.Fprintf(r.w, "%s:%d: %s.\n", r.relPath(path), line, message)
}

// Summary writes a count summary line verbatim, without decoration.
func (r *Reporter) Summary(text string) {
	fmt.Fprintln(r.w, text)
}

// relPath renders path relative to the working directory, falling back to
// the path as given.
func (r *Reporter) relPath(path string) string {
	if r.workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(r.workDir, path)
	if err != nil {
		return path
	}
	return rel
}
