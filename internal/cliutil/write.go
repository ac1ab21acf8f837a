// Package cliutil holds small output helpers shared by the CLI commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef formats to w. Command output is best-effort: a failed write is
// noted on stderr instead of being returned to the caller.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
