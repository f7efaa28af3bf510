package model

// Dialect は 1 ファイルに適用するコメント文法の種別を表します。
// ファイル単位で拡張子から一度だけ決定され、途中で混在することはありません。
type Dialect string

const (
	DialectScript     Dialect = "script"
	DialectMarkup     Dialect = "markup"
	DialectStylesheet Dialect = "stylesheet"
	DialectConfig     Dialect = "config"
)

// SpanKind 表示スパンの種別（コメント／文字列リテラル／素のテキスト）。
type SpanKind string

const (
	SpanPlain         SpanKind = "plain"
	SpanLiteral       SpanKind = "literal"
	SpanBlockComment  SpanKind = "block_comment"
	SpanLineComment   SpanKind = "line_comment"
	SpanMarkupComment SpanKind = "markup_comment"
)

// IsComment reports whether the span is removed by the stripper.
func (k SpanKind) IsComment() bool {
	switch k {
	case SpanBlockComment, SpanLineComment, SpanMarkupComment:
		return true
	}
	return false
}

// Span は入力テキスト上の半開区間 [Start, End) です。
type Span struct {
	Kind  SpanKind
	Start int
	End   int
}

// ScanResult は 1 回の走査で得られたスパン列です。
// スパンは順序どおりに並び、重ならず、入力全体を隙間なく覆います。
// 1 ファイルの処理内で生成・消費され、永続化はされません。
type ScanResult struct {
	Spans []Span
}

// CommentCount returns the number of comment spans in the result.
func (r ScanResult) CommentCount() int {
	n := 0
	for _, sp := range r.Spans {
		if sp.Kind.IsComment() {
			n++
		}
	}
	return n
}
