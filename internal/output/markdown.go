package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/model"
)

// WriteMarkdownTable renders one row per match as a GitHub Flavored Markdown table.
// Matched spans are set in bold.
func WriteMarkdownTable(w io.Writer, files []model.FileResult) error {
	headers := Headers()
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	bold := highlight.Wrap("**", "**")
	for _, r := range Rows(files) {
		row := r.Values(bold)
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
