// Package output formats review results for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lawndlwd/commentguard/internal/types"
)

// PrintViolation writes the offending file and its matched lines to w.
func PrintViolation(w io.Writer, v *types.Violation) error {
	if v == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Found comments in the file %s:\n\n", v.FilePath); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(v.Lines, "\n"))
	return err
}
