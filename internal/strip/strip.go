package strip

import (
	"strings"

	"github.com/phyten/decomment/internal/model"
	"github.com/phyten/decomment/internal/scanner"
)

// Apply は走査結果のコメントスパンを空文字列に置き換えた文字列を返します。
// Plain と Literal のスパンは 1 バイトも変えずにそのまま連結されます。
func Apply(text string, res model.ScanResult) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, sp := range res.Spans {
		if sp.Kind.IsComment() {
			continue
		}
		b.WriteString(text[sp.Start:sp.End])
	}
	return b.String()
}

// Compact は空白のみの行を取り除き、残った行を "\n" で連結し、
// 1 行でも残れば末尾にちょうど 1 つの "\n" を付けます。
// 何も残らなければ空文字列を返します。方言には依存しません。
func Compact(text string) string {
	lines := SplitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "\n") + "\n"
}

// SplitLines splits on "\n" line terminators, consuming a "\r\n" pair as a
// single terminator. A trailing terminator does not produce an extra empty
// line. Output therefore comes out LF-normalized after a rejoin.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Process は 1 ファイル分の変換全体（走査 → 除去 → 詰め）を実行します。
func Process(text string, d model.Dialect) string {
	return Compact(Apply(text, scanner.Scan(text, d)))
}
