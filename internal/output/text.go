package output

import (
	"fmt"
	"io"

	"github.com/phyten/findx/internal/engine"
	"github.com/phyten/findx/internal/termcolor"
)

// WriteText renders the ranked report. Each file gets a header followed by its
// report lines, indented by a tab. Report lines already carry the highlight markers
// chosen when the search ran.
func WriteText(w io.Writer, res *engine.Result, color bool) error {
	if len(res.Files) == 0 {
		return writeNoResults(w, res)
	}
	for _, f := range res.Files {
		count := "no"
		if f.ContentMatchCount > 0 {
			count = fmt.Sprint(f.ContentMatchCount)
		}
		header := fmt.Sprintf("%s (%s matches in content):", f.Path, count)
		if _, err := fmt.Fprintln(w, termcolor.Apply(termcolor.PathStyle(), header, color)); err != nil {
			return err
		}
		for _, line := range f.ReportLines {
			if _, err := fmt.Fprintf(w, "\t%s\n", line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeNoResults(w io.Writer, res *engine.Result) error {
	if _, err := fmt.Fprintf(w, "No results found in directory: %s\n", res.Root); err != nil {
		return err
	}
	if len(res.Suggestions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Did you mean:"); err != nil {
		return err
	}
	for _, s := range res.Suggestions {
		if _, err := fmt.Fprintf(w, "\t%s\n", s); err != nil {
			return err
		}
	}
	return nil
}
