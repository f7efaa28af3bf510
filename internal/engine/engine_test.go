package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestRunStripsAndWritesInPlace(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/app.ts":   "// header\nconst a = 1; // note\n\nconst b = 2;\n",
		"src/site.css": "/* banner */\nbody { color: red; }\n",
		"page.html":    "<div><!-- hidden -->text</div>\n",
		"ci.yml":       "key: value # trailing\n",
		"README.md":    "# not touched // ever\n",
	})

	res, err := Run(Options{RootDir: root, Jobs: 4})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Changed != 4 {
		t.Fatalf("changed count mismatch: got %d want 4\n%+v", res.Changed, res.Files)
	}
	if res.ErrorCount != 0 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}

	if got := readFile(t, root, "src/app.ts"); got != "const a = 1; \nconst b = 2;\n" {
		t.Fatalf("app.ts mismatch: %q", got)
	}
	if got := readFile(t, root, "src/site.css"); got != "body { color: red; }\n" {
		t.Fatalf("site.css mismatch: %q", got)
	}
	if got := readFile(t, root, "page.html"); got != "<div>text</div>\n" {
		t.Fatalf("page.html mismatch: %q", got)
	}
	if got := readFile(t, root, "ci.yml"); got != "key: value \n" {
		t.Fatalf("ci.yml mismatch: %q", got)
	}
	if got := readFile(t, root, "README.md"); got != "# not touched // ever\n" {
		t.Fatalf("unknown extension must never change: %q", got)
	}

	// レポートはパス昇順
	for i := 1; i < len(res.Files); i++ {
		if res.Files[i-1].File > res.Files[i].File {
			t.Fatalf("reports not sorted: %v", res.Files)
		}
	}
	for _, r := range res.Files {
		if !r.Written {
			t.Fatalf("changed file must be written: %+v", r)
		}
	}
}

func TestRunDryRunは書き込まない(t *testing.T) {
	root := t.TempDir()
	original := "// c\nconst a = 1;\n"
	writeFiles(t, root, map[string]string{"a.ts": original})

	res, err := Run(Options{RootDir: root, DryRun: true, Jobs: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.DryRun || res.Changed != 1 {
		t.Fatalf("dry-run result mismatch: %+v", res)
	}
	if res.Files[0].Written {
		t.Fatalf("dry-run must not mark files written")
	}
	if got := readFile(t, root, "a.ts"); got != original {
		t.Fatalf("dry-run must not modify files: %q", got)
	}
}

func TestRunUnchangedFileIsNotRewritten(t *testing.T) {
	root := t.TempDir()
	clean := "const a = 1;\n"
	writeFiles(t, root, map[string]string{"a.ts": clean})

	info, err := os.Stat(filepath.Join(root, "a.ts"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	before := info.ModTime()

	res, err := Run(Options{RootDir: root, Jobs: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Changed != 0 || len(res.Files) != 0 {
		t.Fatalf("clean file must not be reported by default: %+v", res)
	}

	info, err = os.Stat(filepath.Join(root, "a.ts"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(before) {
		t.Fatalf("unchanged file was rewritten")
	}
}

func TestRunAllReportsUnchangedAndSkipped(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"clean.ts":  "const a = 1;\n",
		"dirty.ts":  "// x\nconst b = 2;\n",
		"binary.ts": "const c = 3;\x00\n",
	})

	res, err := Run(Options{RootDir: root, All: true, Jobs: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	byFile := map[string]FileReport{}
	for _, r := range res.Files {
		byFile[r.File] = r
	}
	if len(byFile) != 3 {
		t.Fatalf("expected 3 reports with --all, got %+v", res.Files)
	}
	if r := byFile["clean.ts"]; r.Changed || r.Written {
		t.Fatalf("clean file report mismatch: %+v", r)
	}
	if r := byFile["binary.ts"]; r.Skipped != "binary" {
		t.Fatalf("binary file must be skipped: %+v", r)
	}
	if got := readFile(t, root, "binary.ts"); got != "const c = 3;\x00\n" {
		t.Fatalf("binary file must be untouched: %q", got)
	}
}

func TestRunSkipsInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	bad := []byte{0xff, 0xfe, '/', '/', ' ', 'x', '\n'}
	if err := os.WriteFile(filepath.Join(root, "bad.ts"), bad, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Run(Options{RootDir: root, All: true, Jobs: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Skipped != "encoding" {
		t.Fatalf("invalid UTF-8 must be skipped: %+v", res.Files)
	}
}

func TestRunMaxFileBytes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"small.ts": "// c\na\n",
		"big.ts":   "// c\n" + strings.Repeat("x", 100) + "\n",
	})

	res, err := Run(Options{RootDir: root, All: true, MaxFileBytes: 20, Jobs: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	byFile := map[string]FileReport{}
	for _, r := range res.Files {
		byFile[r.File] = r
	}
	if r := byFile["big.ts"]; r.Skipped != "too-large" {
		t.Fatalf("oversized file must be skipped: %+v", r)
	}
	if r := byFile["small.ts"]; r.Skipped != "" || !r.Changed {
		t.Fatalf("small file must be processed: %+v", r)
	}
}

func TestRunAtomicWritePreservesContentAndPerm(t *testing.T) {
	root := t.TempDir()
	full := filepath.Join(root, "a.ts")
	if err := os.WriteFile(full, []byte("// c\nconst a = 1;\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Run(Options{RootDir: root, Atomic: true, Jobs: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Changed != 1 || !res.Files[0].Written {
		t.Fatalf("atomic write result mismatch: %+v", res)
	}
	if got := readFile(t, root, "a.ts"); got != "const a = 1;\n" {
		t.Fatalf("content mismatch: %q", got)
	}
	info, err := os.Stat(full)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("permission not preserved: %v", info.Mode().Perm())
	}
	// 一時ファイルが残っていないこと
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".decomment-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestRunDialectOverrides(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.scss": "/* c */\nbody {}\n",
	})

	res, err := Run(Options{
		RootDir:          root,
		DialectOverrides: map[string]string{"scss": "stylesheet"},
		Jobs:             1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Changed != 1 || res.Files[0].Dialect != "stylesheet" {
		t.Fatalf("override not applied: %+v", res)
	}
	if got := readFile(t, root, "a.scss"); got != "body {}\n" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestRun読めないファイルはItemErrorにして継続する(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root はパーミッションを無視するためスキップします")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"locked.ts": "// c\nconst a = 1;\n",
		"open.ts":   "// c\nconst b = 2;\n",
	})
	if err := os.Chmod(filepath.Join(root, "locked.ts"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(filepath.Join(root, "locked.ts"), 0o644)
	})

	res, err := Run(Options{RootDir: root, Jobs: 2})
	if err != nil {
		t.Fatalf("run must not fail on per-file errors: %v", err)
	}
	if res.ErrorCount != 1 || len(res.Errors) != 1 {
		t.Fatalf("expected exactly 1 item error: %+v", res.Errors)
	}
	ie := res.Errors[0]
	if ie.File != "locked.ts" || ie.Stage != "read" || ie.Message == "" {
		t.Fatalf("item error mismatch: %+v", ie)
	}
	// 隣のファイルは処理が続いて書き換わる
	if res.Changed != 1 {
		t.Fatalf("sibling file must still be processed: %+v", res)
	}
	if got := readFile(t, root, "open.ts"); got != "const b = 2;\n" {
		t.Fatalf("sibling file mismatch: %q", got)
	}
}

func TestRunInvalidOverrideFails(t *testing.T) {
	if _, err := Run(Options{RootDir: t.TempDir(), DialectOverrides: map[string]string{".x": "nope"}}); err == nil {
		t.Fatalf("expected error for invalid dialect override")
	}
}

func TestRunEmptyTreeSucceeds(t *testing.T) {
	res, err := Run(Options{RootDir: t.TempDir()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Total != 0 || res.Changed != 0 {
		t.Fatalf("unexpected result for empty tree: %+v", res)
	}
}

func TestReportDerivedCounters(t *testing.T) {
	r := FileReport{LinesBefore: 10, LinesAfter: 7, BytesBefore: 200, BytesAfter: 150}
	if r.LinesRemoved() != 3 {
		t.Fatalf("LinesRemoved: got %d", r.LinesRemoved())
	}
	if r.BytesSaved() != 50 {
		t.Fatalf("BytesSaved: got %d", r.BytesSaved())
	}
}
