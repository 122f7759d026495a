package config

import (
	"fmt"
	"strings"
)

const (
	sectionEngine = "engine"
	sectionServe  = "serve"
)

type setFunc func(cfg *Config, name string, value any) error

// field ties one setting to its config file key, its environment variable and
// the Config slot it fills.
type field struct {
	key     string
	section string
	env     string
	set     setFunc
}

var fields = []field{
	{"names_only", sectionEngine, "FINDX_NAMES_ONLY", slot(expectBool, func(c *Config) **bool { return &c.Engine.NamesOnly })},
	{"recursive", sectionEngine, "FINDX_RECURSIVE", slot(expectBool, func(c *Config) **bool { return &c.Engine.Recursive })},
	{"match_rate", sectionEngine, "FINDX_MATCH_RATE", slot(intIn(0, 100), func(c *Config) **int { return &c.Engine.MatchRate })},
	{"algorithm", sectionEngine, "FINDX_ALGORITHM", slot(expectTrimmed, func(c *Config) **string { return &c.Engine.Algorithm })},
	// the upper bound of jobs is enforced by opts.NormalizeAndValidate
	{"jobs", sectionEngine, "FINDX_JOBS", slot(intIn(0, -1), func(c *Config) **int { return &c.Engine.Jobs })},
	{"exclude", sectionEngine, "FINDX_EXCLUDE", slot(expectStringList, func(c *Config) **[]string { return &c.Engine.Excludes })},
	{"max_file_bytes", sectionEngine, "FINDX_MAX_FILE_BYTES", slot(intIn(0, -1), func(c *Config) **int { return &c.Engine.MaxFileBytes })},
	{"output", sectionEngine, "FINDX_OUTPUT", slot(expectTrimmed, func(c *Config) **string { return &c.Engine.Output })},
	{"color", sectionEngine, "FINDX_COLOR", slot(expectTrimmed, func(c *Config) **string { return &c.Engine.Color })},
	{"progress", sectionEngine, "FINDX_PROGRESS", slot(expectBool, func(c *Config) **bool { return &c.Engine.Progress })},
	{"port", sectionServe, "FINDX_PORT", slot(intIn(1, 65535), func(c *Config) **int { return &c.Serve.Port })},
	{"open", sectionServe, "FINDX_OPEN", slot(expectBool, func(c *Config) **bool { return &c.Serve.Open })},
}

var aliases = map[string]string{
	"names":     "names_only",
	"tolerance": "match_rate",
	"excludes":  "exclude",
	"max_bytes": "max_file_bytes",
}

// lookupField resolves a config key, accepting dashes, mixed case and aliases.
func lookupField(key string) (field, bool) {
	norm := normalizeKey(key)
	if canonical, ok := aliases[norm]; ok {
		norm = canonical
	}
	for _, f := range fields {
		if f.key == norm {
			return f, true
		}
	}
	return field{}, false
}

func slot[T any](conv func(any, string) (T, error), target func(*Config) **T) setFunc {
	return func(cfg *Config, name string, value any) error {
		v, err := conv(value, name)
		if err != nil {
			return err
		}
		*target(cfg) = &v
		return nil
	}
}

// intIn accepts integers in [min, max]. A max below min leaves the upper end open.
func intIn(min, max int) func(any, string) (int, error) {
	return func(value any, name string) (int, error) {
		n, err := expectInt(value, name)
		if err != nil {
			return 0, err
		}
		switch {
		case max < min && n < min:
			return 0, fmt.Errorf("%s must be >= %d", name, min)
		case max >= min && (n < min || n > max):
			return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
		}
		return n, nil
	}
}

func expectTrimmed(value any, name string) (string, error) {
	s, err := expectString(value, name)
	return strings.TrimSpace(s), err
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
