package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/decomment/internal/engine"
	"github.com/phyten/decomment/internal/output"
	"github.com/phyten/decomment/internal/termcolor"
	"github.com/phyten/decomment/internal/textutil"
)

// 表の 1 セルの表示幅上限。超えたセルは省略記号付きで切り詰める。
const maxCellWidth = 120

// printTable は表示幅を自前で計算して列を揃える。tabwriter は ANSI
// エスケープを幅 1 として数えるため、色付きの表では使えない。
func printTable(w io.Writer, res *engine.Result, sel output.FieldSelection, colored bool) {
	headers := output.Headers(sel.Fields)
	rows := make([][]string, 0, len(res.Files))
	for _, r := range res.Files {
		row := output.RowValues(r, sel.Fields)
		for i, cell := range row {
			row[i] = textutil.TruncateByWidth(cell, maxCellWidth, "…")
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := textutil.VisibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string, style *termcolor.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := textutil.PadRight(cell, widths[i])
			if style != nil {
				padded = termcolor.Apply(*style, padded, colored)
			}
			parts[i] = padded
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(headers, nil)
	for idx, r := range res.Files {
		var style *termcolor.Style
		switch {
		case r.Skipped != "":
			style = &termcolor.StyleSkipped
		case r.Changed:
			style = &termcolor.StyleChanged
		}
		writeRow(rows[idx], style)
	}

	fmt.Fprintln(w, termcolor.Apply(termcolor.StyleSummary, summaryLine(res), colored))
}

// printTSV はセルをタブ 1 個で区切って出力する。tabwriter はタブを
// 桁揃えに使ってしまい、素朴に split できる TSV にならない。
func printTSV(w io.Writer, res *engine.Result, sel output.FieldSelection) {
	fmt.Fprintln(w, strings.Join(output.Headers(sel.Fields), "\t"))
	for _, r := range res.Files {
		fmt.Fprintln(w, strings.Join(output.RowValues(r, sel.Fields), "\t"))
	}
}

func summaryLine(res *engine.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d reported, %d changed", res.Total, res.Changed)
	if res.ErrorCount > 0 {
		fmt.Fprintf(&b, ", %d errors", res.ErrorCount)
	}
	if res.DryRun {
		b.WriteString(" (dry-run)")
	}
	fmt.Fprintf(&b, " in %dms", res.ElapsedMS)
	return b.String()
}
