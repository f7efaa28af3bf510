package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	engineopts "github.com/phyten/decomment/internal/engine/opts"
)

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setList(&cfg.Engine.Paths, "DECOMMENT_PATH")
	setList(&cfg.Engine.Excludes, "DECOMMENT_EXCLUDE")
	setList(&cfg.Engine.PathRegex, "DECOMMENT_PATH_REGEX")
	setBool(&cfg.Engine.DryRun, "DECOMMENT_DRY_RUN")
	setBool(&cfg.Engine.Atomic, "DECOMMENT_ATOMIC")
	setBool(&cfg.Engine.All, "DECOMMENT_ALL")
	setInt(&cfg.Engine.MaxFileBytes, "DECOMMENT_MAX_FILE_BYTES", 0, math.MaxInt)
	// Allow large values here and rely on NormalizeAndValidate to enforce the
	// canonical upper bound so every input path shares the same error message.
	setInt(&cfg.Engine.Jobs, "DECOMMENT_JOBS", 0, math.MaxInt)
	setString(&cfg.Engine.Root, "DECOMMENT_ROOT")

	// DECOMMENT_DIALECTS="scss=stylesheet,mts=script"
	if raw := strings.TrimSpace(getenv("DECOMMENT_DIALECTS")); raw != "" {
		m := make(map[string]string)
		for _, pair := range engineopts.SplitMulti([]string{raw}) {
			idx := strings.Index(pair, "=")
			if idx <= 0 || idx == len(pair)-1 {
				errs = append(errs, fmt.Errorf("invalid DECOMMENT_DIALECTS entry: %q", pair))
				continue
			}
			m[strings.TrimSpace(pair[:idx])] = strings.TrimSpace(pair[idx+1:])
		}
		if len(m) > 0 {
			cfg.Engine.Dialects = &m
		}
	}

	setString(&cfg.UI.Output, "DECOMMENT_OUTPUT")
	setString(&cfg.UI.Color, "DECOMMENT_COLOR")
	setString(&cfg.UI.Fields, "DECOMMENT_FIELDS")
	setString(&cfg.UI.Sort, "DECOMMENT_SORT")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
