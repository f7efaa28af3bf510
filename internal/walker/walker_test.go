package walker

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
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

func TestWalkEnumeratesSortedRelativePaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.ts":          "b",
		"a.ts":          "a",
		"sub/deep/c.md": "c",
	})

	got, err := Walk(Options{Root: root})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"a.ts", "b.ts", "sub/deep/c.md"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestWalkPrunesVCSDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config":        "x",
		".git/objects/ab/cd": "x",
		".hg/store":          "x",
		"src/a.ts":           "a",
	})

	got, err := Walk(Options{Root: root})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"src/a.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("VCS dirs must be pruned: got %v", got)
	}
}

func TestWalkIncludePrefixAndGlob(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.ts":   "a",
		"src/b.css":  "b",
		"docs/c.ts":  "c",
		"other/d.ts": "d",
	})

	cases := []struct {
		name  string
		paths []string
		want  []string
	}{
		{"前方一致", []string{"src"}, []string{"src/a.ts", "src/b.css"}},
		{"glob", []string{"**/*.ts"}, []string{"docs/c.ts", "other/d.ts", "src/a.ts"}},
		{"複数指定は和集合", []string{"docs", "other"}, []string{"docs/c.ts", "other/d.ts"}},
		{"末尾スラッシュ許容", []string{"src/"}, []string{"src/a.ts", "src/b.css"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Walk(Options{Root: root, Paths: tc.paths})
			if err != nil {
				t.Fatalf("walk: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestWalkExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.ts":            "a",
		"node_modules/x/b.ts": "b",
		"dist/bundle.min.css": "c",
		"src/generated/g.ts":  "g",
		"src/keep/normal.ts":  "k",
	})

	got, err := Walk(Options{
		Root:     root,
		Excludes: []string{"node_modules", "dist", "**/generated/**"},
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"src/a.ts", "src/keep/normal.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestWalkPathRegex(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.ts":  "a",
		"src/app.css": "b",
		"test/app.ts": "c",
	})

	got, err := Walk(Options{
		Root:      root,
		PathRegex: []*regexp.Regexp{regexp.MustCompile(`^src/.*\.ts$`)},
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"src/app.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestWalkMissingRootFails(t *testing.T) {
	if _, err := Walk(Options{Root: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatalf("expected error for missing root")
	}
}
