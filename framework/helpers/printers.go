package helpers

import (
	"fmt"
	"io"
)

// MustFprintln writes a line to a writer and panics on error, so callers don't have to
// check an error return for console output.
func MustFprintln(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		panic(err)
	}
}

// MustFprintf is the Fprintf equivalent of MustFprintln.
func MustFprintf(w io.Writer, format string, a ...any) {
	if _, err := fmt.Fprintf(w, format, a...); err != nil {
		panic(err)
	}
}
