package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/phyten/decomment/internal/dialect"
	"github.com/phyten/decomment/internal/scanner"
	"github.com/phyten/decomment/internal/strip"
)

// processFile は 1 ファイル分の読み込み → 変換 → 書き戻しを行います。
// ok=false はレポート対象外（未対応拡張子・バイナリなど）を意味します。
// 途中の失敗は ItemError として返し、呼び出し側で処理を継続します。
func processFile(rel string, table dialect.Table, opts Options) (FileReport, bool, []ItemError) {
	d, ok := table.FromPath(rel)
	if !ok {
		return FileReport{}, false, nil
	}
	full := filepath.Join(opts.RootDir, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		return FileReport{}, false, []ItemError{newItemError(rel, "stat", err)}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return FileReport{}, false, []ItemError{newItemError(rel, "read", err)}
	}

	report := FileReport{
		File:        rel,
		Dialect:     string(d),
		BytesBefore: len(data),
		BytesAfter:  len(data),
	}

	// 拡張子が一致してもテキストとして扱えないものには触れない
	if bytes.IndexByte(data, 0) >= 0 {
		report.Skipped = "binary"
		return report, opts.All, nil
	}
	if !utf8.Valid(data) {
		report.Skipped = "encoding"
		return report, opts.All, nil
	}
	if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
		report.Skipped = "too-large"
		return report, opts.All, nil
	}

	text := string(data)
	res := scanner.Scan(text, d)
	out := strip.Compact(strip.Apply(text, res))

	report.CommentsRemoved = res.CommentCount()
	report.LinesBefore = len(strip.SplitLines(text))
	report.LinesAfter = len(strip.SplitLines(out))
	report.BytesAfter = len(out)
	report.Changed = out != text

	if !report.Changed || opts.DryRun {
		return report, true, nil
	}

	if opts.Atomic {
		err = writeAtomic(full, []byte(out), info.Mode().Perm())
	} else {
		err = os.WriteFile(full, []byte(out), info.Mode().Perm())
	}
	if err != nil {
		return report, true, []ItemError{newItemError(rel, "write", err)}
	}
	report.Written = true
	return report, true, nil
}

// writeAtomic は同一ディレクトリの一時ファイルに書き切ってから rename で
// 置き換えます。失敗時は一時ファイルを消し、元のファイルは残ります。
func writeAtomic(dest string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".decomment-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, perm)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
