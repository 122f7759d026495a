package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/browser"

	"github.com/phyten/findx/internal/config"
	"github.com/phyten/findx/internal/termcolor"
	"github.com/phyten/findx/internal/web"
)

type serveOptions struct {
	root     string
	settings config.ServeSettings
}

func serveCmd(args []string) {
	so, err := parseServeArgs(args, termcolor.EnvMap(os.Environ()))
	if err != nil {
		log.Fatal(err)
	}
	mux := http.NewServeMux()
	web.Register(mux, so.root)

	addr := fmt.Sprintf("localhost:%d", so.settings.Port)
	url := "http://" + addr + "/"
	log.Printf("findx serve listening on %s (root=%s)", url, so.root)
	if so.settings.Open {
		go func() {
			if err := browser.OpenURL(url); err != nil {
				log.Printf("could not open browser: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	log.Fatal(srv.ListenAndServe())
}

// parseServeArgs resolves the serve flags over the config file and FINDX_PORT /
// FINDX_OPEN. The root must be an existing directory; it is made absolute.
func parseServeArgs(args []string, env map[string]string) (serveOptions, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		root       = fs.String("root", ".", "directory to search")
		port       = fs.Int("p", 0, "port")
		open       = fs.Bool("open", false, "open the UI in a browser")
		configPath = fs.String("config", "", "config file")
	)
	fs.IntVar(port, "port", 0, "port")
	if err := fs.Parse(args); err != nil {
		return serveOptions{}, err
	}
	if fs.NArg() > 0 {
		return serveOptions{}, fmt.Errorf("serve: unexpected arguments: %v", fs.Args())
	}

	abs, err := filepath.Abs(*root)
	if err != nil {
		return serveOptions{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return serveOptions{}, fmt.Errorf("serve: %w", err)
	}
	if !info.IsDir() {
		return serveOptions{}, fmt.Errorf("serve: %s is not a directory", abs)
	}

	explicit := *configPath
	if explicit == "" {
		explicit = env["FINDX_CONFIG"]
	}
	path, _, err := config.Find(abs, explicit, env["XDG_CONFIG_HOME"], env["HOME"])
	if err != nil {
		return serveOptions{}, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return serveOptions{}, fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(func(k string) string { return env[k] })
	if err != nil {
		return serveOptions{}, fmt.Errorf("environment: %w", err)
	}

	var layer config.ServeConfig
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p", "port":
			layer.Port = port
		case "open":
			layer.Open = open
		}
	})
	settings := config.MergeServe(config.DefaultServeSettings(), fileCfg.Serve, envCfg.Serve, layer)
	settings, err = config.NormalizeServe(settings)
	if err != nil {
		return serveOptions{}, err
	}
	return serveOptions{root: abs, settings: settings}, nil
}
