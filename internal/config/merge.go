package config

import "strings"

// override replaces *dst when the layer sets a value.
func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// overrideList copies the layer's list. An explicitly empty list clears it.
func overrideList(dst *[]string, v *[]string) {
	if v != nil {
		*dst = append([]string{}, *v...)
	}
}

func overrideTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// MergeEngine applies layers over base in order; later layers win.
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	out.Excludes = cloneStrings(base.Excludes)
	for _, l := range layers {
		override(&out.NamesOnly, l.NamesOnly)
		override(&out.Recursive, l.Recursive)
		override(&out.MatchRate, l.MatchRate)
		overrideTrimmed(&out.Algorithm, l.Algorithm)
		override(&out.Jobs, l.Jobs)
		overrideList(&out.Excludes, l.Excludes)
		override(&out.MaxFileBytes, l.MaxFileBytes)
		overrideTrimmed(&out.Output, l.Output)
		overrideTrimmed(&out.Color, l.Color)
		if l.Progress != nil {
			p := *l.Progress
			out.Progress = &p
		}
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "text"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	if strings.TrimSpace(out.Algorithm) == "" {
		out.Algorithm = "ratio"
	}
	return out
}

// MergeServe applies serve layers over base in order.
func MergeServe(base ServeSettings, layers ...ServeConfig) ServeSettings {
	out := base
	for _, l := range layers {
		override(&out.Port, l.Port)
		override(&out.Open, l.Open)
	}
	return out
}
