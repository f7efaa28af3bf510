package config

import (
	"strings"

	"github.com/phyten/decomment/internal/engine"
)

type EngineConfig struct {
	Paths        *[]string          `yaml:"path" toml:"path" json:"path"`
	Excludes     *[]string          `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex    *[]string          `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	Dialects     *map[string]string `yaml:"dialects" toml:"dialects" json:"dialects"`
	DryRun       *bool              `yaml:"dry_run" toml:"dry_run" json:"dry_run"`
	Atomic       *bool              `yaml:"atomic" toml:"atomic" json:"atomic"`
	All          *bool              `yaml:"all" toml:"all" json:"all"`
	Jobs         *int               `yaml:"jobs" toml:"jobs" json:"jobs"`
	MaxFileBytes *int               `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	Root         *string            `yaml:"root" toml:"root" json:"root"`
}

type UIConfig struct {
	Output *string `yaml:"output" toml:"output" json:"output"`
	Color  *string `yaml:"color" toml:"color" json:"color"`
	Fields *string `yaml:"fields" toml:"fields" json:"fields"`
	Sort   *string `yaml:"sort" toml:"sort" json:"sort"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	Paths        []string
	Excludes     []string
	PathRegex    []string
	Dialects     map[string]string
	DryRun       bool
	Atomic       bool
	All          bool
	Jobs         int
	MaxFileBytes int
	Root         string
}

type UISettings struct {
	Output string
	Color  string
	Fields string
	Sort   string
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Paths:        cloneStrings(opts.Paths),
		Excludes:     cloneStrings(opts.Excludes),
		PathRegex:    cloneStrings(opts.PathRegex),
		Dialects:     cloneStringMap(opts.DialectOverrides),
		DryRun:       opts.DryRun,
		Atomic:       opts.Atomic,
		All:          opts.All,
		Jobs:         opts.Jobs,
		MaxFileBytes: opts.MaxFileBytes,
		Root:         opts.RootDir,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.DialectOverrides = cloneStringMap(s.Dialects)
	opts.DryRun = s.DryRun
	opts.Atomic = s.Atomic
	opts.All = s.All
	opts.Jobs = s.Jobs
	opts.MaxFileBytes = s.MaxFileBytes
	if trimmed := strings.TrimSpace(s.Root); trimmed != "" {
		opts.RootDir = trimmed
	}
}

func DefaultUISettings() UISettings {
	return UISettings{
		Output: "table",
		Color:  "auto",
		Fields: "",
		Sort:   "",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
