package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/decomment/internal/engine"
)

// WriteNDJSON streams reports as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, files []engine.FileReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range files {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
