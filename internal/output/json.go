package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/findx/internal/engine"
)

// WriteJSON writes the whole result as one indented JSON document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
