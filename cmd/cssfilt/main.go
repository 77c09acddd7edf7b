// cssfilt - editor-friendly output for the W3C CSS validator.
//
// cssfilt rewrites the validator's text output into single-line
// path:line: message form and turns the result into a process exit status.
package main

import (
	"os"

	"cssfilt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
