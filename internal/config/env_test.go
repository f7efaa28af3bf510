package config

import (
	"reflect"
	"testing"
)

func envFunc(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvReadsAllKeys(t *testing.T) {
	cfg, err := FromEnv(envFunc(map[string]string{
		"DECOMMENT_PATH":           "src,docs",
		"DECOMMENT_EXCLUDE":        "node_modules",
		"DECOMMENT_PATH_REGEX":     `\.ts$`,
		"DECOMMENT_DRY_RUN":        "1",
		"DECOMMENT_ATOMIC":         "true",
		"DECOMMENT_ALL":            "yes",
		"DECOMMENT_MAX_FILE_BYTES": "4096",
		"DECOMMENT_JOBS":           "16",
		"DECOMMENT_ROOT":           "/srv/tree",
		"DECOMMENT_DIALECTS":       "scss=stylesheet, mts=script",
		"DECOMMENT_OUTPUT":         "ndjson",
		"DECOMMENT_COLOR":          "always",
		"DECOMMENT_FIELDS":         "file,saved",
		"DECOMMENT_SORT":           "-saved",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Engine.Paths == nil || !reflect.DeepEqual(*cfg.Engine.Paths, []string{"src", "docs"}) {
		t.Fatalf("paths mismatch: %v", cfg.Engine.Paths)
	}
	if cfg.Engine.DryRun == nil || !*cfg.Engine.DryRun {
		t.Fatalf("dry_run mismatch")
	}
	if cfg.Engine.Jobs == nil || *cfg.Engine.Jobs != 16 {
		t.Fatalf("jobs mismatch: %v", cfg.Engine.Jobs)
	}
	if cfg.Engine.Root == nil || *cfg.Engine.Root != "/srv/tree" {
		t.Fatalf("root mismatch: %v", cfg.Engine.Root)
	}
	wantDialects := map[string]string{"scss": "stylesheet", "mts": "script"}
	if cfg.Engine.Dialects == nil || !reflect.DeepEqual(*cfg.Engine.Dialects, wantDialects) {
		t.Fatalf("dialects mismatch: %v", cfg.Engine.Dialects)
	}
	if cfg.UI.Output == nil || *cfg.UI.Output != "ndjson" {
		t.Fatalf("output mismatch: %v", cfg.UI.Output)
	}
	if cfg.UI.Sort == nil || *cfg.UI.Sort != "-saved" {
		t.Fatalf("sort mismatch: %v", cfg.UI.Sort)
	}
}

func TestFromEnvIgnoresUnsetKeys(t *testing.T) {
	cfg, err := FromEnv(envFunc(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Engine.Paths != nil || cfg.Engine.DryRun != nil || cfg.UI.Output != nil {
		t.Fatalf("unset env must leave pointers nil: %+v", cfg)
	}
}

func TestFromEnvCollectsErrors(t *testing.T) {
	_, err := FromEnv(envFunc(map[string]string{
		"DECOMMENT_DRY_RUN":  "maybe",
		"DECOMMENT_JOBS":     "-1",
		"DECOMMENT_DIALECTS": "broken",
	}))
	if err == nil {
		t.Fatalf("expected joined errors")
	}
}
