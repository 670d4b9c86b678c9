// Package cliutil renders navigation entries for terminal output.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// indentUnit is one outline level.
const indentUnit = "  "

// Writef formats into w. A failed write is reported on stderr and otherwise
// ignored; terminal output has nobody to return the error to.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "oasnav: write failed: %v\n", err)
	}
}

// Indent returns the prefix for an outline line at the given depth.
func Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(indentUnit, depth)
}
