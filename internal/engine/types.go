package engine

import (
	"regexp"
)

// FileReport は 1 ファイルの処理結果を表す
type FileReport struct {
	File            string `json:"file"`
	Dialect         string `json:"dialect"`
	CommentsRemoved int    `json:"comments_removed"`
	LinesBefore     int    `json:"lines_before"`
	LinesAfter      int    `json:"lines_after"`
	BytesBefore     int    `json:"bytes_before"`
	BytesAfter      int    `json:"bytes_after"`
	Changed         bool   `json:"changed"`
	Written         bool   `json:"written"`
	Skipped         string `json:"skipped,omitempty"` // binary|encoding|too-large
}

// BytesSaved returns how many bytes the transform removed.
func (r FileReport) BytesSaved() int {
	return r.BytesBefore - r.BytesAfter
}

// LinesRemoved returns how many lines the transform removed.
func (r FileReport) LinesRemoved() int {
	return r.LinesBefore - r.LinesAfter
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	RootDir           string
	Paths             []string
	Excludes          []string
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	DialectOverrides  map[string]string
	DryRun            bool
	Atomic            bool
	All               bool // report unchanged files too
	Jobs              int
	MaxFileBytes      int
	Progress          bool
}

// Result は出力
type Result struct {
	Files      []FileReport `json:"files"`
	Total      int          `json:"total"`
	Changed    int          `json:"changed"`
	DryRun     bool         `json:"dry_run"`
	ElapsedMS  int64        `json:"elapsed_ms"`
	Errors     []ItemError  `json:"errors,omitempty"`
	ErrorCount int          `json:"error_count"`
}

// CompilePathRegex compiles the raw patterns, failing on the first invalid one.
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
