package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/decomment/internal/engine"
)

// Field はレポート列の識別子です。
type Field string

const (
	FieldFile     Field = "file"
	FieldDialect  Field = "dialect"
	FieldComments Field = "comments"
	FieldLines    Field = "lines"
	FieldSaved    Field = "saved"
	FieldChanged  Field = "changed"
	FieldWritten  Field = "written"
	FieldSkipped  Field = "skipped"
)

var fieldOrder = []Field{
	FieldFile, FieldDialect, FieldComments, FieldLines, FieldSaved,
	FieldChanged, FieldWritten, FieldSkipped,
}

var fieldHeaders = map[Field]string{
	FieldFile:     "FILE",
	FieldDialect:  "DIALECT",
	FieldComments: "COMMENTS",
	FieldLines:    "LINES",
	FieldSaved:    "SAVED",
	FieldChanged:  "CHANGED",
	FieldWritten:  "WRITTEN",
	FieldSkipped:  "SKIPPED",
}

var defaultFields = []Field{FieldFile, FieldDialect, FieldComments, FieldLines, FieldSaved}

// FieldSelection は表示する列とその順序を保持します。
type FieldSelection struct {
	Fields []Field
}

// DefaultFields returns the standard report columns.
func DefaultFields() FieldSelection {
	fields := make([]Field, len(defaultFields))
	copy(fields, defaultFields)
	return FieldSelection{Fields: fields}
}

// ParseFields parses a comma-separated field list. An empty spec selects the
// defaults. Unknown names and duplicates are rejected.
func ParseFields(spec string) (FieldSelection, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultFields(), nil
	}
	known := make(map[Field]struct{}, len(fieldOrder))
	for _, f := range fieldOrder {
		known[f] = struct{}{}
	}
	seen := make(map[Field]struct{})
	var fields []Field
	for _, piece := range strings.Split(spec, ",") {
		name := Field(strings.ToLower(strings.TrimSpace(piece)))
		if name == "" {
			continue
		}
		if _, ok := known[name]; !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		if _, dup := seen[name]; dup {
			return FieldSelection{}, fmt.Errorf("duplicate field: %s", name)
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	if len(fields) == 0 {
		return DefaultFields(), nil
	}
	return FieldSelection{Fields: fields}, nil
}

// Headers returns the column headers for the selected fields.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = fieldHeaders[f]
	}
	return out
}

// RowValues renders one report row for the selected fields.
func RowValues(r engine.FileReport, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		switch f {
		case FieldFile:
			out[i] = r.File
		case FieldDialect:
			out[i] = r.Dialect
		case FieldComments:
			out[i] = strconv.Itoa(r.CommentsRemoved)
		case FieldLines:
			out[i] = strconv.Itoa(r.LinesRemoved())
		case FieldSaved:
			out[i] = strconv.Itoa(r.BytesSaved())
		case FieldChanged:
			out[i] = strconv.FormatBool(r.Changed)
		case FieldWritten:
			out[i] = strconv.FormatBool(r.Written)
		case FieldSkipped:
			out[i] = r.Skipped
		}
	}
	return out
}
