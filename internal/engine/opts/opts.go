package opts

import (
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/findx/internal/engine"
	"github.com/phyten/findx/internal/match"
	"github.com/phyten/findx/internal/walk"
)

const (
	maxJobs      = 64
	maxMatchRate = 100
)

// OutputFormats lists the report formats accepted by --output.
var OutputFormats = []string{"text", "json", "ndjson", "csv", "markdown", "table"}

// Defaults returns the shared baseline options for both CLI and Web inputs.
func Defaults(root string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		Root:         root,
		MatchRate:    0,
		Algorithm:    "ratio",
		NamesOnly:    false,
		Recursive:    true,
		Jobs:         jobs,
		MaxFileBytes: 0,
		Suggest:      true,
		Progress:     false,
	}
}

// webParam applies one query parameter. Literal parameters see only the last
// comma separated value; the search term keeps its commas.
type webParam struct {
	name    string
	literal bool
	apply   func(o *engine.Options, raw string) error
}

var webParams = []webParam{
	{"q", false, func(o *engine.Options, raw string) error {
		o.Term = raw
		return nil
	}},
	{"names_only", true, func(o *engine.Options, raw string) (err error) {
		o.NamesOnly, err = ParseBool(raw, "names_only")
		return err
	}},
	{"recursive", true, func(o *engine.Options, raw string) (err error) {
		o.Recursive, err = ParseBool(raw, "recursive")
		return err
	}},
	{"match_rate", true, func(o *engine.Options, raw string) (err error) {
		o.MatchRate, err = ParseIntInRange(raw, "match_rate", 0, maxMatchRate)
		return err
	}},
	{"algorithm", true, func(o *engine.Options, raw string) error {
		o.Algorithm = raw
		return nil
	}},
	{"jobs", true, func(o *engine.Options, raw string) (err error) {
		o.Jobs, err = ParseIntInRange(raw, "jobs", 1, maxJobs)
		return err
	}},
	{"max_file_bytes", true, func(o *engine.Options, raw string) error {
		n, err := ParseIntInRange(raw, "max_file_bytes", 0, -1)
		o.MaxFileBytes = int64(n)
		return err
	}},
}

// ApplyWebQueryToOptions copies recognised values from the query string into a
// copy of def. The root is never taken from the query. Validation happens
// separately via NormalizeAndValidate.
func ApplyWebQueryToOptions(def engine.Options, q url.Values) (engine.Options, error) {
	out := def
	for _, p := range webParams {
		var raw string
		var ok bool
		if p.literal {
			raw, ok = lastLiteralValue(q[p.name])
		} else {
			raw, ok = lastRawValue(q[p.name])
		}
		if !ok {
			continue
		}
		if err := p.apply(&out, raw); err != nil {
			return def, err
		}
	}
	if raw := q["exclude"]; len(raw) > 0 {
		out.Excludes = SplitMulti(raw)
	}
	return out, nil
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	if o.MatchRate < 0 || o.MatchRate > maxMatchRate {
		return fmt.Errorf("match_rate must be between 0 and %d", maxMatchRate)
	}

	o.Algorithm = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(o.Algorithm)), "_", "-")
	if o.Algorithm == "" {
		o.Algorithm = "ratio"
	}
	if _, err := match.Algorithm(o.Algorithm); err != nil {
		return fmt.Errorf("invalid --algorithm: %s (want one of %s)", o.Algorithm, strings.Join(match.AlgorithmNames(), ", "))
	}

	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}

	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}

	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}

	o.Excludes = trimSlice(o.Excludes)
	if err := walk.ValidatePatterns(o.Excludes); err != nil {
		return fmt.Errorf("invalid --exclude: %w", err)
	}

	return nil
}

// ParseBool accepts 1/0, true/false, yes/no and on/off in any case.
func ParseBool(raw, key string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses raw and checks it lies in [min, max]. A max below min
// leaves the upper end open.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	switch {
	case max < min && n < min:
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	case max >= min && (n < min || n > max):
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the CLI output format value.
// "md" is accepted as an alias of markdown.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "text", nil
	}
	if v == "md" {
		return "markdown", nil
	}
	for _, f := range OutputFormats {
		if v == f {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --output: %s (want one of %s)", value, strings.Join(OutputFormats, ", "))
}

// SplitMulti turns repeated query parameters (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}

// lastRawValue keeps commas and inner spaces, which matter for search terms.
func lastRawValue(vals []string) (string, bool) {
	for i := len(vals) - 1; i >= 0; i-- {
		if strings.TrimSpace(vals[i]) == "" {
			continue
		}
		return vals[i], true
	}
	return "", false
}

func trimSlice(values []string) []string {
	var out []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
