package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/findx/internal/engine"
	"github.com/phyten/findx/internal/model"
	"github.com/phyten/findx/internal/termcolor"
	"github.com/phyten/findx/internal/textutil"
)

// DefaultFirstMatchWidth は FIRST MATCH 列の既定幅 (表示セル数)
const DefaultFirstMatchWidth = 60

const tabWidth = 4

// TableOptions controls the table writer.
type TableOptions struct {
	Color bool
	Width int // FIRST MATCH 列の幅。0 以下は既定値
}

var tableHeaders = []string{"PATH", "NAME", "MATCHES", "FIRST MATCH"}

// WriteTable prints one row per file in rank order. Columns are aligned by display
// width so wide characters line up. The first matching line is shortened around its
// first hit.
func WriteTable(w io.Writer, res *engine.Result, opts TableOptions) error {
	if len(res.Files) == 0 {
		return writeNoResults(w, res)
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultFirstMatchWidth
	}
	rows := make([][]string, 0, len(res.Files))
	for _, f := range res.Files {
		name := "no"
		if f.NameMatched() {
			name = "yes"
		}
		rows = append(rows, []string{f.Path, name, fmt.Sprint(f.ContentMatchCount), firstMatch(f, width)})
	}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = textutil.VisibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := textutil.VisibleWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	header := formatRow(tableHeaders, widths)
	if _, err := fmt.Fprintln(w, termcolor.Apply(termcolor.HeaderStyle(), header, opts.Color)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			padded[i] = c
			continue
		}
		padded[i] = textutil.PadRight(c, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func firstMatch(f model.FileResult, width int) string {
	if len(f.Lines) == 0 {
		return ""
	}
	ln := f.Lines[0]
	prefix := fmt.Sprintf("L%d: ", ln.Number)
	focus := 0
	if len(ln.Spans) > 0 {
		focus = ln.Spans[0].Start
	}
	// タブ展開後の位置に合わせる
	before := textutil.ExpandTabs(string([]rune(ln.Text)[:clamp(focus, len([]rune(ln.Text)))]), tabWidth)
	text := textutil.ExpandTabs(ln.Text, tabWidth)
	focus = len([]rune(before))
	budget := width - textutil.VisibleWidth(prefix)
	if budget < 1 {
		budget = 1
	}
	return prefix + textutil.TruncateAround(text, focus, budget, "…")
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
