package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/phyten/findx/internal/config"
	"github.com/phyten/findx/internal/engine"
	engineopts "github.com/phyten/findx/internal/engine/opts"
	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/output"
	"github.com/phyten/findx/internal/progress"
	"github.com/phyten/findx/internal/termcolor"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	log.SetFlags(0)
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serveCmd(os.Args[2:])
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := scanCmd(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Environ())
	stop()
	os.Exit(code)
}

// scanCmd runs one search and writes the report to stdout. It returns the process
// exit status; zero results are not an error.
func scanCmd(ctx context.Context, args []string, stdout, stderr *os.File, environ []string) int {
	logger := log.New(stderr, "findx: ", 0)

	cfg, err := parseScanArgs(args, stderr)
	if err != nil {
		logger.Print(err)
		fmt.Fprintln(stderr, "Run 'findx --help' for usage.")
		return exitUsage
	}
	if cfg.showHelp {
		return exitOK
	}

	env := termcolor.EnvMap(environ)
	settings, err := loadSettings(cfg, env)
	if err != nil {
		logger.Print(err)
		return exitCode(err)
	}

	opts := engineopts.Defaults(cfg.root)
	settings.ApplyToOptions(&opts)
	opts.Root = cfg.root
	opts.Term = cfg.term
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		logger.Print(err)
		return exitUsage
	}

	mode, _ := termcolor.ParseMode(settings.Color)
	color := termcolor.Resolve(mode, stdout, env)
	// machine formats carry spans; only the text report embeds markers
	opts.Marker = highlight.Plain
	if settings.Output == "text" {
		opts.Marker = highlight.Wrap("[", "]")
		if color {
			opts.Marker = highlight.ANSI(termcolor.MatchStyle(termcolor.DetectScheme(env), termcolor.DetectProfile(env)))
		}
	}

	showProgress := progress.ShouldShowProgress(false, false, stdout, stderr)
	if settings.Progress != nil {
		showProgress = *settings.Progress
	}
	if showProgress {
		opts.Progress = true
		opts.ProgressObserver = progress.NewAutoObserver(stderr)
	}

	res, err := engine.Run(ctx, opts)
	if err != nil {
		logger.Print(err)
		return exitError
	}

	if err := writeReport(stdout, res, settings.Output, color); err != nil {
		logger.Print(err)
		return exitError
	}
	if err := output.WriteDiagnostics(stderr, res, termcolor.Resolve(mode, stderr, env)); err != nil {
		logger.Print(err)
		return exitError
	}
	return exitOK
}

// loadSettings layers defaults, the config file, FINDX_* variables and the
// command-line flags, in that order.
func loadSettings(cfg scanConfig, env map[string]string) (config.EngineSettings, error) {
	explicit := cfg.configPath
	if explicit == "" {
		explicit = env["FINDX_CONFIG"]
	}
	path, _, err := config.Find(cfg.root, explicit, env["XDG_CONFIG_HOME"], env["HOME"])
	if err != nil {
		return config.EngineSettings{}, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return config.EngineSettings{}, fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(func(k string) string { return env[k] })
	if err != nil {
		return config.EngineSettings{}, usagef("environment: %v", err)
	}

	base := config.EngineSettingsFromOptions(engineopts.Defaults(cfg.root))
	merged := config.MergeEngine(base, fileCfg.Engine, envCfg.Engine, cfg.layer)
	normalized, err := config.NormalizeEngine(merged)
	if err != nil {
		return normalized, usagef("%v", err)
	}
	return normalized, nil
}

func writeReport(w io.Writer, res *engine.Result, format string, color bool) error {
	switch format {
	case "json":
		return output.WriteJSON(w, res)
	case "ndjson":
		return output.WriteNDJSON(w, res.Files)
	case "csv":
		return output.WriteCSV(w, res.Files)
	case "markdown":
		return output.WriteMarkdownTable(w, res.Files)
	case "table":
		return output.WriteTable(w, res, output.TableOptions{Color: color})
	default:
		return output.WriteText(w, res, color)
	}
}

func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return exitUsage
	}
	return exitError
}
