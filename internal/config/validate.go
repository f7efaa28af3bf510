package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/decomment/internal/engine/opts"
)

func CanonicalizeColor(raw string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(raw))
	if color == "" {
		return "auto", nil
	}
	switch color {
	case "auto", "always", "never":
		return color, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Fields = strings.TrimSpace(values.Fields)
	values.Sort = strings.TrimSpace(values.Sort)

	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	return values, nil
}
