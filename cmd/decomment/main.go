package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/phyten/decomment/internal/config"
	"github.com/phyten/decomment/internal/engine"
	engineopts "github.com/phyten/decomment/internal/engine/opts"
	"github.com/phyten/decomment/internal/output"
	"github.com/phyten/decomment/internal/termcolor"
	"github.com/phyten/decomment/internal/util"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serveCmd(os.Args[2:])
		return
	}
	runCmd(os.Args[1:])
}

// multiFlag は繰り返し指定できる文字列フラグ（カンマ区切りも可）。
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func runCmd(args []string) {
	fs := flag.NewFlagSet("decomment", flag.ExitOnError)

	var (
		paths     multiFlag
		excludes  multiFlag
		pathRegex multiFlag
		dialects  multiFlag
	)
	fs.Var(&paths, "path", "limit to path prefix or glob (repeatable)")
	fs.Var(&excludes, "exclude", "exclude path prefix or glob (repeatable)")
	fs.Var(&pathRegex, "path-regex", "filter paths by regexp (repeatable)")
	fs.Var(&dialects, "dialect", "extra extension mapping ext=script|markup|stylesheet|config (repeatable)")

	var (
		dryRun     = fs.Bool("dry-run", false, "report only, do not write files")
		atomic     = fs.Bool("atomic", false, "write via temp file + rename")
		all        = fs.Bool("all", false, "report unchanged files too")
		jobs       = fs.Int("jobs", 0, "max parallel workers (0=auto)")
		maxBytes   = fs.Int("max-file-bytes", 0, "skip files larger than N bytes (0=unlimited)")
		root       = fs.String("root", ".", "directory tree root")
		outFormat  = fs.String("output", "table", "table|tsv|json|csv|ndjson|markdown")
		fields     = fs.String("fields", "", "comma-separated report columns")
		sortSpec   = fs.String("sort", "", "sort keys, e.g. -saved,path")
		color      = fs.String("color", "auto", "auto|always|never")
		cfgPath    = fs.String("config", "", "explicit config file (overrides discovery)")
		noProgress = fs.Bool("no-progress", false, "disable progress/ETA")
		forceProg  = fs.Bool("progress", false, "force progress even when piped")
	)
	_ = fs.Parse(args)

	settings, ui, err := resolveSettings(fs, *cfgPath, *root, flagOverlay{
		paths:     paths,
		excludes:  excludes,
		pathRegex: pathRegex,
		dialects:  dialects,
		dryRun:    dryRun,
		atomic:    atomic,
		all:       all,
		jobs:      jobs,
		maxBytes:  maxBytes,
		root:      root,
		output:    outFormat,
		fields:    fields,
		sort:      sortSpec,
		color:     color,
	})
	if err != nil {
		log.Fatal(err)
	}

	opts := engineopts.Defaults(".")
	settings.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		log.Fatal(err)
	}
	opts.Progress = util.ShouldShowProgress(*forceProg, *noProgress)

	sel, err := output.ParseFields(ui.Fields)
	if err != nil {
		log.Fatal(err)
	}
	spec, err := ParseSortSpec(ui.Sort)
	if err != nil {
		log.Fatal(err)
	}

	mode, err := termcolor.ParseMode(ui.Color)
	if err != nil {
		log.Fatal(err)
	}
	if mode == termcolor.ModeAuto {
		mode = termcolor.DetectMode(os.Stdout, termcolor.EnvMap(os.Environ()))
	}
	colored := termcolor.Enabled(mode, os.Stdout)

	res, err := engine.Run(opts)
	if err != nil {
		log.Fatal(err)
	}
	ApplySort(res.Files, spec)

	switch ui.Output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatal(err)
		}
	case "csv":
		if err := output.WriteCSV(os.Stdout, res.Files, sel); err != nil {
			log.Fatal(err)
		}
	case "ndjson":
		if err := output.WriteNDJSON(os.Stdout, res.Files); err != nil {
			log.Fatal(err)
		}
	case "markdown":
		if err := output.WriteMarkdownTable(os.Stdout, res.Files, sel); err != nil {
			log.Fatal(err)
		}
	case "tsv":
		printTSV(os.Stdout, res, sel)
	default: // table
		printTable(os.Stdout, res, sel, colored)
	}

	for _, ie := range res.Errors {
		line := fmt.Sprintf("decomment: %s: %s: %s", ie.File, ie.Stage, ie.Message)
		fmt.Fprintln(os.Stderr, termcolor.Apply(termcolor.StyleError, line, colored))
	}
	if res.ErrorCount > 0 {
		os.Exit(1)
	}
}

// flagOverlay はコマンドラインで明示されたフラグだけを設定レイヤに変換するための束。
type flagOverlay struct {
	paths     multiFlag
	excludes  multiFlag
	pathRegex multiFlag
	dialects  multiFlag
	dryRun    *bool
	atomic    *bool
	all       *bool
	jobs      *int
	maxBytes  *int
	root      *string
	output    *string
	fields    *string
	sort      *string
	color     *string
}

// resolveSettings merges Defaults <- config file <- env <- flags.
// Only flags the user actually passed participate in the last layer.
func resolveSettings(fs *flag.FlagSet, explicitCfg, root string, ov flagOverlay) (config.EngineSettings, config.UISettings, error) {
	base := config.EngineSettingsFromOptions(engineopts.Defaults(root))

	if explicitCfg == "" {
		explicitCfg = os.Getenv("DECOMMENT_CONFIG")
	}
	cfgFile, _, err := config.Find(root, explicitCfg, os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME"))
	if err != nil {
		return config.EngineSettings{}, config.UISettings{}, err
	}
	fileCfg, err := config.Load(cfgFile)
	if err != nil {
		return config.EngineSettings{}, config.UISettings{}, err
	}

	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return config.EngineSettings{}, config.UISettings{}, err
	}

	flagCfg, err := overlayFromFlags(fs, ov)
	if err != nil {
		return config.EngineSettings{}, config.UISettings{}, err
	}

	settings := config.MergeEngine(base, fileCfg.Engine, envCfg.Engine, flagCfg.Engine)
	ui, err := config.NormalizeUI(config.MergeUI(config.DefaultUISettings(), fileCfg.UI, envCfg.UI, flagCfg.UI))
	if err != nil {
		return config.EngineSettings{}, config.UISettings{}, err
	}
	return settings, ui, nil
}

func overlayFromFlags(fs *flag.FlagSet, ov flagOverlay) (config.Config, error) {
	var cfg config.Config
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			list := engineopts.SplitMulti(ov.paths)
			cfg.Engine.Paths = &list
		case "exclude":
			list := engineopts.SplitMulti(ov.excludes)
			cfg.Engine.Excludes = &list
		case "path-regex":
			list := engineopts.SplitMulti(ov.pathRegex)
			cfg.Engine.PathRegex = &list
		case "dialect":
			m, err := parseDialectPairs(ov.dialects)
			if err != nil {
				parseErr = err
				return
			}
			cfg.Engine.Dialects = &m
		case "dry-run":
			cfg.Engine.DryRun = ov.dryRun
		case "atomic":
			cfg.Engine.Atomic = ov.atomic
		case "all":
			cfg.Engine.All = ov.all
		case "jobs":
			// 0 は「自動」。既定値のままレイヤに載せない
			if *ov.jobs != 0 {
				cfg.Engine.Jobs = ov.jobs
			}
		case "max-file-bytes":
			cfg.Engine.MaxFileBytes = ov.maxBytes
		case "root":
			cfg.Engine.Root = ov.root
		case "output":
			cfg.UI.Output = ov.output
		case "fields":
			cfg.UI.Fields = ov.fields
		case "sort":
			cfg.UI.Sort = ov.sort
		case "color":
			cfg.UI.Color = ov.color
		}
	})
	return cfg, parseErr
}

func parseDialectPairs(pairs []string) (map[string]string, error) {
	m := make(map[string]string, len(pairs))
	for _, pair := range engineopts.SplitMulti(pairs) {
		idx := strings.Index(pair, "=")
		if idx <= 0 || idx == len(pair)-1 {
			return nil, fmt.Errorf("invalid --dialect entry: %q (want ext=name)", pair)
		}
		m[strings.TrimSpace(pair[:idx])] = strings.TrimSpace(pair[idx+1:])
	}
	return m, nil
}
