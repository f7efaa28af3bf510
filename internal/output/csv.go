package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/decomment/internal/engine"
)

// WriteCSV renders reports as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, files []engine.FileReport, sel FieldSelection) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers(sel.Fields)); err != nil {
		return err
	}
	for _, r := range files {
		if err := writer.Write(RowValues(r, sel.Fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
