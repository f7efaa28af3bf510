package dialect

import (
	"testing"

	"github.com/phyten/decomment/internal/model"
)

func TestFromPathDefaults(t *testing.T) {
	cases := []struct {
		path string
		want model.Dialect
		ok   bool
	}{
		{"src/app.ts", model.DialectScript, true},
		{"src/App.TSX", model.DialectScript, true},
		{"index.html", model.DialectMarkup, true},
		{"styles/site.css", model.DialectStylesheet, true},
		{"ci/config.yml", model.DialectConfig, true},
		{"README.md", "", false},
		{"Makefile", "", false},
		{"noext", "", false},
	}
	var table Table
	for _, tc := range cases {
		got, ok := table.FromPath(tc.path)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("FromPath(%q) = (%q, %v), want (%q, %v)", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseRejectsUnknownNames(t *testing.T) {
	if d, err := Parse(" Script "); err != nil || d != model.DialectScript {
		t.Fatalf("Parse should trim and lowercase: (%q, %v)", d, err)
	}
	if _, err := Parse("pascal"); err == nil {
		t.Fatalf("expected error for unknown dialect name")
	}
}

func TestNewTableOverrides(t *testing.T) {
	table, err := NewTable(map[string]string{
		"scss": "stylesheet", // ドットなしでも受け付ける
		".MTS": "script",
		".yml": "script", // 既定の上書きも可能
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if d, ok := table.FromPath("a.scss"); !ok || d != model.DialectStylesheet {
		t.Fatalf("scss override not applied: (%q, %v)", d, ok)
	}
	if d, ok := table.FromPath("b.mts"); !ok || d != model.DialectScript {
		t.Fatalf("mts override not applied: (%q, %v)", d, ok)
	}
	if d, ok := table.FromPath("c.yml"); !ok || d != model.DialectScript {
		t.Fatalf("default override not applied: (%q, %v)", d, ok)
	}
	// 上書きしていない既定はそのまま
	if d, ok := table.FromPath("d.css"); !ok || d != model.DialectStylesheet {
		t.Fatalf("default mapping lost: (%q, %v)", d, ok)
	}
}

func TestNewTableRejectsBadInput(t *testing.T) {
	if _, err := NewTable(map[string]string{"": "script"}); err == nil {
		t.Fatalf("expected error for empty extension")
	}
	if _, err := NewTable(map[string]string{".x": "nope"}); err == nil {
		t.Fatalf("expected error for unknown dialect name")
	}
}

func TestExtensionsMergesOverrides(t *testing.T) {
	table, err := NewTable(map[string]string{"scss": "stylesheet"})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	all := table.Extensions()
	if all[".scss"] != model.DialectStylesheet {
		t.Fatalf("override missing from Extensions: %+v", all)
	}
	if all[".ts"] != model.DialectScript {
		t.Fatalf("default missing from Extensions: %+v", all)
	}
}
