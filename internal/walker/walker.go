package walker

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options は列挙の対象と絞り込み条件です。コア変換はここに関与しません。
type Options struct {
	Root      string
	Paths     []string // include prefixes or glob patterns, root-relative
	Excludes  []string // glob patterns, root-relative
	PathRegex []*regexp.Regexp
}

// バージョン管理のメタデータディレクトリは常に刈り込む。
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
	".bzr": {},
}

// Walk は Root 以下の通常ファイルをルート相対のスラッシュ区切りパスで
// 列挙します。結果はパス昇順。走査機構そのものの失敗だけがエラーです。
func Walk(opts Options) ([]string, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		root = "."
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				// unreadable subtree: skip it, keep walking
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if _, ok := vcsDirs[d.Name()]; ok && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if !included(rel, opts.Paths) {
			return nil
		}
		if excluded(rel, opts.Excludes) {
			return nil
		}
		if len(opts.PathRegex) > 0 && !matchAny(opts.PathRegex, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// included は paths が空なら全件通し、そうでなければ前方一致または
// doublestar パターン一致で絞り込みます。
func included(rel string, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, p := range paths {
		p = strings.TrimSuffix(strings.TrimSpace(p), "/")
		if p == "" || p == "." {
			return true
		}
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func excluded(rel string, globs []string) bool {
	for _, g := range globs {
		g = strings.TrimSuffix(strings.TrimSpace(g), "/")
		if g == "" {
			continue
		}
		if rel == g || strings.HasPrefix(rel, g+"/") {
			return true
		}
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func matchAny(rx []*regexp.Regexp, text string) bool {
	for _, r := range rx {
		if r.MatchString(text) {
			return true
		}
	}
	return false
}
