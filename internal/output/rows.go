package output

import (
	"strconv"

	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/model"
)

// Row は表形式出力 (CSV / Markdown) の 1 行。ファイル名一致と内容一致の 1 件ずつに対応する。
type Row struct {
	Path  string
	Kind  string // filename | content
	Line  int    // 0 はファイル名一致
	Count int
	Text  string
	Spans model.MatchSet
}

// Headers returns the column titles shared by the CSV and Markdown writers.
func Headers() []string {
	return []string{"PATH", "KIND", "LINE", "COUNT", "TEXT"}
}

// Rows flattens ranked results, keeping the rank order and the per-file line order.
func Rows(files []model.FileResult) []Row {
	var rows []Row
	for _, f := range files {
		if f.NameMatched() {
			rows = append(rows, Row{Path: f.Path, Kind: "filename", Count: len(f.NameSpans), Text: f.Path, Spans: f.NameSpans})
		}
		for _, ln := range f.Lines {
			rows = append(rows, Row{Path: f.Path, Kind: "content", Line: ln.Number, Count: len(ln.Spans), Text: ln.Text, Spans: ln.Spans})
		}
	}
	return rows
}

// Values renders the row with text marked by mark.
func (r Row) Values(mark highlight.Marker) []string {
	line := ""
	if r.Line > 0 {
		line = strconv.Itoa(r.Line)
	}
	return []string{r.Path, r.Kind, line, strconv.Itoa(r.Count), highlight.Render(r.Text, r.Spans, mark)}
}
