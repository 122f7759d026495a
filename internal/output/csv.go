package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/model"
)

// WriteCSV renders one row per match as RFC 4180 compliant CSV (including CRLF endings).
// Text is written without highlight markers.
func WriteCSV(w io.Writer, files []model.FileResult) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers()); err != nil {
		return err
	}
	for _, row := range Rows(files) {
		if err := writer.Write(row.Values(highlight.Plain)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
