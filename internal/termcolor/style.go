package termcolor

import (
	"fmt"
	"strings"
)

type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	FGBasic   *int
}

func basic(n int) *int { return &n }

// 表描画で使う定番スタイル。変更行は緑、エラーは赤、サマリ行はシアン。
var (
	StyleChanged = Style{FGBasic: basic(2)}
	StyleSkipped = Style{Dim: true}
	StyleError   = Style{FGBasic: basic(1)}
	StyleSummary = Style{Bold: true, FGBasic: basic(6)}
)

func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	codes := make([]string, 0, 4)
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.FGBasic != nil {
		codes = append(codes, fmt.Sprintf("3%d", *s.FGBasic))
	}
	return codes
}
