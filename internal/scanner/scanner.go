package scanner

import (
	"strings"

	"github.com/phyten/decomment/internal/model"
)

// Scan は text を方言 d の文法で左から右に 1 回だけ走査し、
// 入力全体を隙間なく覆うスパン列を返します。
//
// 各位置での優先順位はリテラル開始 → ブロックコメント開始 → 行コメント開始。
// リテラル最優先が正しさの要で、引用符の内側に現れた "//" や "/*" を
// コメント開始として誤認しません。閉じられないリテラル／コメントは
// エラーにせず末尾まで伸ばします。
func Scan(text string, d model.Dialect) model.ScanResult {
	g, ok := grammarFor(d)
	if !ok {
		if text == "" {
			return model.ScanResult{}
		}
		return model.ScanResult{Spans: []model.Span{{Kind: model.SpanPlain, Start: 0, End: len(text)}}}
	}

	var spans []model.Span
	plainStart := 0
	flushPlain := func(end int) {
		if end > plainStart {
			spans = append(spans, model.Span{Kind: model.SpanPlain, Start: plainStart, End: end})
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]

		if g.quotes != "" && strings.IndexByte(g.quotes, c) >= 0 {
			end := scanLiteral(text, i)
			flushPlain(i)
			spans = append(spans, model.Span{Kind: model.SpanLiteral, Start: i, End: end})
			i = end
			plainStart = end
			continue
		}

		if bp, ok := matchBlockStart(text, i, g.blocks); ok {
			end := scanBlock(text, i, bp)
			flushPlain(i)
			spans = append(spans, model.Span{Kind: bp.kind, Start: i, End: end})
			i = end
			plainStart = end
			continue
		}

		if prefix, ok := matchLineStart(text, i, g.lineStarts); ok {
			end := scanLine(text, i+len(prefix))
			flushPlain(i)
			spans = append(spans, model.Span{Kind: model.SpanLineComment, Start: i, End: end})
			i = end
			plainStart = end
			continue
		}

		i++
	}
	flushPlain(len(text))
	return model.ScanResult{Spans: spans}
}

// scanLiteral は text[start] を開き引用符とするリテラルの終端を返します。
// バックスラッシュは直後の 1 文字をエスケープし、エスケープされた引用符は
// リテラルを閉じません。改行はどの引用符でもそのまま取り込みます。
func scanLiteral(text string, start int) int {
	quote := text[start]
	i := start + 1
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return len(text)
}

// scanBlock はブロック（またはマークアップ）コメントの終端を返します。
// 終端記号が見つからなければ末尾までをコメントとして扱います。
func scanBlock(text string, start int, bp blockPattern) int {
	from := start + len(bp.start)
	idx := strings.Index(text[from:], bp.end)
	if idx < 0 {
		return len(text)
	}
	return from + idx + len(bp.end)
}

// scanLine は行コメントの終端（改行手前、または末尾）を返します。
func scanLine(text string, from int) int {
	idx := strings.IndexByte(text[from:], '\n')
	if idx < 0 {
		return len(text)
	}
	return from + idx
}

func matchBlockStart(text string, pos int, blocks []blockPattern) (blockPattern, bool) {
	for _, bp := range blocks {
		if strings.HasPrefix(text[pos:], bp.start) {
			return bp, true
		}
	}
	return blockPattern{}, false
}

func matchLineStart(text string, pos int, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(text[pos:], p) {
			return p, true
		}
	}
	return "", false
}
