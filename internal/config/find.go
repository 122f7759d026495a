package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appName = "findx"

var (
	dotNames = []string{".findx.yaml", ".findx.yml", ".findx.toml", ".findx.json"}
	xdgNames = []string{"config.yaml", "config.yml", "config.toml", "config.json"}
)

// location is one directory searched for config files.
type location struct {
	dir   string
	names []string
	where string
}

// Find locates the config file for a search rooted at root. It returns the path and
// where it was found: "explicit", "cwd-up", "xdg" or "home". An empty path with a nil
// error means no config file exists.
//
// Lookup order: explicitPath ($FINDX_CONFIG or --config), then .findx.* from root
// upward, then $XDG_CONFIG_HOME/findx/config.*, then ~/.findx.*.
func Find(root, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := explicitConfig(explicit)
		if err != nil {
			return "", "", err
		}
		return path, "explicit", nil
	}
	locs, err := locations(root, xdgHome, home)
	if err != nil {
		return "", "", err
	}
	for _, loc := range locs {
		for _, name := range loc.names {
			if candidate := filepath.Join(loc.dir, name); isRegular(candidate) {
				return candidate, loc.where, nil
			}
		}
	}
	return "", "", nil
}

func locations(root, xdgHome, home string) ([]location, error) {
	start := strings.TrimSpace(root)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	var locs []location
	for {
		locs = append(locs, location{dir, dotNames, "cwd-up"})
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		homeDir, _ = os.UserHomeDir()
	}
	xdg := strings.TrimSpace(xdgHome)
	if xdg == "" && homeDir != "" {
		xdg = filepath.Join(homeDir, ".config")
	}
	if xdg != "" {
		locs = append(locs, location{filepath.Join(xdg, appName), xdgNames, "xdg"})
	}
	if homeDir != "" {
		locs = append(locs, location{homeDir, dotNames, "home"})
	}
	return locs, nil
}

func explicitConfig(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("FINDX_CONFIG %q points to a directory", abs)
	}
	return abs, nil
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
