package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/findx/internal/model"
)

// WriteNDJSON writes one file result per line as NDJSON (JSON Lines).
func WriteNDJSON(w io.Writer, files []model.FileResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, f := range files {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
