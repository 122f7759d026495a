package output

import (
	"fmt"
	"io"

	"github.com/phyten/findx/internal/engine"
	"github.com/phyten/findx/internal/termcolor"
)

// WriteDiagnostics reports per-file failures, one line each, followed by a count.
// Files skipped for size are summarized on their own line.
func WriteDiagnostics(w io.Writer, res *engine.Result, color bool) error {
	style := termcolor.DiagStyle()
	for _, e := range res.Errors {
		msg := fmt.Sprintf("findx: error reading or decoding file: %s: %s. Skipping.", e.Path, e.Message)
		if _, err := fmt.Fprintln(w, termcolor.Apply(style, msg, color)); err != nil {
			return err
		}
	}
	if res.ErrorCount > 0 {
		if _, err := fmt.Fprintf(w, "findx: %d file(s) skipped due to errors\n", res.ErrorCount); err != nil {
			return err
		}
	}
	if res.SkippedLarge > 0 {
		if _, err := fmt.Fprintf(w, "findx: %d file(s) larger than the size limit skipped\n", res.SkippedLarge); err != nil {
			return err
		}
	}
	return nil
}
