package engine

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/phyten/decomment/internal/dialect"
	"github.com/phyten/decomment/internal/util"
	"github.com/phyten/decomment/internal/walker"
)

// Run は指定されたオプションに従ってディレクトリツリーを走査し、
// 対象ファイルのコメントを除去して書き戻します（DryRun 時は報告のみ）。
//
// ファイル単位の読み書き失敗は Result.Errors に集約され、処理は継続します。
// 走査機構そのものの失敗だけが error として返ります。
func Run(opts Options) (*Result, error) {
	start := time.Now()
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Jobs > 64 {
		opts.Jobs = 64
	}

	table, err := dialect.NewTable(opts.DialectOverrides)
	if err != nil {
		return nil, fmt.Errorf("dialect overrides: %w", err)
	}

	files, err := walker.Walk(walker.Options{
		Root:      opts.RootDir,
		Paths:     opts.Paths,
		Excludes:  opts.Excludes,
		PathRegex: opts.PathRegexCompiled,
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", opts.RootDir, err)
	}

	// 対象方言を持つファイルだけをワーカーに流す
	candidates := files[:0]
	for _, rel := range files {
		if _, ok := table.FromPath(rel); ok {
			candidates = append(candidates, rel)
		}
	}
	if len(candidates) == 0 {
		return &Result{DryRun: opts.DryRun, ElapsedMS: msSince(start)}, nil
	}

	type result struct {
		report FileReport
		ok     bool
		errs   []ItemError
	}

	jobs := make(chan string)
	results := make(chan result)
	prog := util.NewProgress(len(candidates), opts.Progress)

	var wg sync.WaitGroup
	wg.Add(opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		go func() {
			defer wg.Done()
			for rel := range jobs {
				report, ok, errs := processFile(rel, table, opts)
				results <- result{report: report, ok: ok, errs: errs}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, rel := range candidates {
			jobs <- rel
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var reports []FileReport
	var errs []ItemError
	changed := 0
	for res := range results {
		prog.Advance()
		if len(res.errs) > 0 {
			errs = append(errs, res.errs...)
		}
		if !res.ok {
			continue
		}
		if res.report.Changed {
			changed++
		}
		if res.report.Changed || opts.All {
			reports = append(reports, res.report)
		}
	}
	prog.Done()

	sort.SliceStable(reports, func(i, j int) bool { return reports[i].File < reports[j].File })
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	return &Result{
		Files:      reports,
		Total:      len(reports),
		Changed:    changed,
		DryRun:     opts.DryRun,
		ElapsedMS:  msSince(start),
		Errors:     errs,
		ErrorCount: len(errs),
	}, nil
}

func newItemError(file, stage string, err error) ItemError {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return ItemError{File: file, Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
