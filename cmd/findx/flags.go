package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/findx/internal/config"
	engineopts "github.com/phyten/findx/internal/engine/opts"
)

// errUsage marks command-line mistakes; they exit with status 2.
var errUsage = errors.New("usage error")

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }
func (e usageError) Is(target error) bool {
	return target == errUsage
}

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// multiFlag collects a repeatable string flag; each value may hold a comma list.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type scanConfig struct {
	root       string
	term       string
	configPath string
	showHelp   bool
	// layer holds only the flags given on the command line.
	layer config.EngineConfig
}

const scanUsage = `findx - search file names and contents under a directory

Usage:
  findx [flags] <directory> <search_term>
  findx serve [-root DIR] [-p PORT] [--open]

Flags may appear before, between or after the positional arguments.

  -n, --names_only         search file names only
  -r, --recursive          do NOT descend into subdirectories (recursion is the default)
  -m, --match_rate N       fuzzy tolerance in percent, 0..100 (0 = exact, case-insensitive)
      --algorithm NAME     fuzzy measure: ratio | levenshtein | jaro-winkler (default ratio)
  -j, --jobs N             parallel workers, 1..64 (default: number of CPUs)
      --exclude GLOB       skip paths matching GLOB (repeatable, comma separated)
      --max-file-bytes N   skip content search of files larger than N bytes (0 = no limit)
  -o, --output FORMAT      text | json | ndjson | csv | markdown | table (default text)
      --color MODE         auto | always | never (default auto)
      --progress           always show progress on stderr
      --no-progress        never show progress
      --config PATH        config file (default: .findx.* from the root upward, then ~/.config/findx)
  -h, --help               show this help
`

func parseScanArgs(args []string, stderr io.Writer) (scanConfig, error) {
	var cfg scanConfig
	fs := flag.NewFlagSet("findx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		namesOnly    bool
		notRecursive bool
		matchRate    int
		algorithm    string
		jobs         int
		excludes     multiFlag
		maxFileBytes int
		output       string
		color        string
		forceProg    bool
		noProg       bool
	)
	fs.BoolVar(&namesOnly, "n", false, "")
	fs.BoolVar(&namesOnly, "names_only", false, "")
	fs.BoolVar(&notRecursive, "r", false, "")
	fs.BoolVar(&notRecursive, "recursive", false, "")
	fs.IntVar(&matchRate, "m", 0, "")
	fs.IntVar(&matchRate, "match_rate", 0, "")
	fs.StringVar(&algorithm, "algorithm", "", "")
	fs.IntVar(&jobs, "j", 0, "")
	fs.IntVar(&jobs, "jobs", 0, "")
	fs.Var(&excludes, "exclude", "")
	fs.IntVar(&maxFileBytes, "max-file-bytes", 0, "")
	fs.StringVar(&output, "o", "", "")
	fs.StringVar(&output, "output", "", "")
	fs.StringVar(&color, "color", "", "")
	fs.BoolVar(&forceProg, "progress", false, "")
	fs.BoolVar(&noProg, "no-progress", false, "")
	fs.StringVar(&cfg.configPath, "config", "", "")
	fs.BoolVar(&cfg.showHelp, "h", false, "")
	fs.BoolVar(&cfg.showHelp, "help", false, "")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return cfg, usagef("%v", err)
	}
	if cfg.showHelp {
		_, _ = io.WriteString(stderr, scanUsage)
		return cfg, nil
	}
	if forceProg && noProg {
		return cfg, usagef("--progress and --no-progress cannot be used together")
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	given := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	if given("n", "names_only") {
		cfg.layer.NamesOnly = &namesOnly
	}
	// the flag disables recursion when present
	if given("r", "recursive") && notRecursive {
		recursive := false
		cfg.layer.Recursive = &recursive
	}
	if given("m", "match_rate") {
		cfg.layer.MatchRate = &matchRate
	}
	if given("algorithm") {
		cfg.layer.Algorithm = &algorithm
	}
	if given("j", "jobs") {
		cfg.layer.Jobs = &jobs
	}
	if given("exclude") {
		list := engineopts.SplitMulti(excludes)
		cfg.layer.Excludes = &list
	}
	if given("max-file-bytes") {
		cfg.layer.MaxFileBytes = &maxFileBytes
	}
	if given("o", "output") {
		cfg.layer.Output = &output
	}
	if given("color") {
		cfg.layer.Color = &color
	}
	if forceProg || noProg {
		show := forceProg
		cfg.layer.Progress = &show
	}

	switch len(positional) {
	case 2:
	case 0, 1:
		return cfg, usagef("expected <directory> and <search_term>, got %d argument(s)", len(positional))
	default:
		return cfg, usagef("unexpected arguments: %s", strings.Join(positional[2:], " "))
	}
	cfg.root = positional[0]
	cfg.term = positional[1]
	if strings.TrimSpace(cfg.root) == "" {
		return cfg, usagef("directory must not be empty")
	}
	if cfg.term == "" {
		return cfg, usagef("search_term must not be empty")
	}
	return cfg, nil
}

// parseInterspersed lets flags follow positional arguments. Everything after "--"
// is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			return append(positional, remaining...), nil
		}
		if len(remaining) == 0 {
			return positional, nil
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}
}
