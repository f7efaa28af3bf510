package dialect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phyten/decomment/internal/model"
)

// 既定の拡張子マッピング。未知の拡張子は対象外（エラーではない）。
var extensionDialects = map[string]model.Dialect{
	".ts":   model.DialectScript,
	".tsx":  model.DialectScript,
	".html": model.DialectMarkup,
	".css":  model.DialectStylesheet,
	".yml":  model.DialectConfig,
}

var dialectNames = map[string]model.Dialect{
	"script":     model.DialectScript,
	"markup":     model.DialectMarkup,
	"stylesheet": model.DialectStylesheet,
	"config":     model.DialectConfig,
}

// Parse resolves a dialect name from config or query input.
func Parse(name string) (model.Dialect, error) {
	d, ok := dialectNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown dialect: %s", name)
	}
	return d, nil
}

// Table は拡張子 → 方言の解決表です。ゼロ値は既定マッピングのみを持ちます。
type Table struct {
	overrides map[string]model.Dialect
}

// NewTable builds a table with per-extension overrides layered over the
// defaults. Override keys are normalized to a lowercase ".ext" form.
func NewTable(overrides map[string]string) (Table, error) {
	if len(overrides) == 0 {
		return Table{}, nil
	}
	m := make(map[string]model.Dialect, len(overrides))
	for rawExt, rawName := range overrides {
		ext := strings.ToLower(strings.TrimSpace(rawExt))
		if ext == "" {
			return Table{}, fmt.Errorf("empty extension in dialect overrides")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		d, err := Parse(rawName)
		if err != nil {
			return Table{}, fmt.Errorf("dialect for %s: %w", ext, err)
		}
		m[ext] = d
	}
	return Table{overrides: m}, nil
}

// FromPath は拡張子から方言を決めます。対応しない拡張子は ok=false で、
// そのファイルは一切変更されません。
func (t Table) FromPath(p string) (model.Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(p))
	if ext == "" {
		return "", false
	}
	if d, ok := t.overrides[ext]; ok {
		return d, true
	}
	d, ok := extensionDialects[ext]
	return d, ok
}

// Extensions returns the effective extension mapping with overrides
// applied. Iteration order is not guaranteed.
func (t Table) Extensions() map[string]model.Dialect {
	out := make(map[string]model.Dialect, len(extensionDialects)+len(t.overrides))
	for ext, d := range extensionDialects {
		out[ext] = d
	}
	for ext, d := range t.overrides {
		out[ext] = d
	}
	return out
}
