package config

import "strings"

func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Paths = ResolveStrings(out.Paths, layer.Paths)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.PathRegex = ResolveStrings(out.PathRegex, layer.PathRegex)
		out.Dialects = resolveStringMap(out.Dialects, layer.Dialects)
		out.DryRun = ResolveBool(out.DryRun, layer.DryRun)
		out.Atomic = ResolveBool(out.Atomic, layer.Atomic)
		out.All = ResolveBool(out.All, layer.All)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
		out.Root = ResolveAndTrim(out.Root, layer.Root)
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Fields = ResolveAndTrim(out.Fields, layer.Fields)
		out.Sort = ResolveAndTrim(out.Sort, layer.Sort)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

// 方言の上書きはレイヤごとの総入れ替えではなくキー単位で重ねる。
// 既定の 4 マッピングを縮めない、という表の性質に合わせた挙動。
func resolveStringMap(def map[string]string, values ...*map[string]string) map[string]string {
	result := cloneStringMap(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		if result == nil {
			result = make(map[string]string, len(*v))
		}
		for k, val := range *v {
			result[k] = val
		}
	}
	return result
}
