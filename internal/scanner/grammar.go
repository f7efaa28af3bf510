package scanner

import "github.com/phyten/decomment/internal/model"

type blockPattern struct {
	start string
	end   string
	kind  model.SpanKind
}

// grammar は 1 方言で有効なリテラル／コメント規則の集合です。
// quotes が空の方言はリテラルを認識しません（markup / stylesheet）。
type grammar struct {
	quotes     string // single-byte literal openers, highest priority
	blocks     []blockPattern
	lineStarts []string
}

var (
	grammarScript = grammar{
		quotes:     "'\"`",
		blocks:     []blockPattern{{start: "/*", end: "*/", kind: model.SpanBlockComment}},
		lineStarts: []string{"//"},
	}
	grammarMarkup = grammar{
		blocks: []blockPattern{{start: "<!--", end: "-->", kind: model.SpanMarkupComment}},
	}
	grammarStylesheet = grammar{
		blocks: []blockPattern{{start: "/*", end: "*/", kind: model.SpanBlockComment}},
	}
	// 設定方言の引用符内でもバックスラッシュエスケープを尊重する。
	// バッククォートは認識しない。
	grammarConfig = grammar{
		quotes:     "'\"",
		lineStarts: []string{"#"},
	}
)

var dialectGrammars = map[model.Dialect]grammar{
	model.DialectScript:     grammarScript,
	model.DialectMarkup:     grammarMarkup,
	model.DialectStylesheet: grammarStylesheet,
	model.DialectConfig:     grammarConfig,
}

func grammarFor(d model.Dialect) (grammar, bool) {
	g, ok := dialectGrammars[d]
	return g, ok
}
