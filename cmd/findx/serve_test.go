package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func serveEnv(t *testing.T, extra map[string]string) map[string]string {
	t.Helper()
	home := t.TempDir()
	env := map[string]string{"HOME": home, "XDG_CONFIG_HOME": home}
	for k, v := range extra {
		env[k] = v
	}
	return env
}

func TestParseServeArgsDefaults(t *testing.T) {
	root := t.TempDir()
	so, err := parseServeArgs([]string{"-root", root}, serveEnv(t, nil))
	if err != nil {
		t.Fatalf("parseServeArgs failed: %v", err)
	}
	if so.settings.Port != 8080 || so.settings.Open {
		t.Fatalf("unexpected defaults: %+v", so.settings)
	}
	if !filepath.IsAbs(so.root) {
		t.Fatalf("root should be absolute: %q", so.root)
	}
}

func TestParseServeArgsLayers(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".findx.toml"), []byte("[serve]\nport = 9000\nopen = true\n"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	so, err := parseServeArgs([]string{"-root", root}, serveEnv(t, nil))
	if err != nil {
		t.Fatalf("parseServeArgs failed: %v", err)
	}
	if so.settings.Port != 9000 || !so.settings.Open {
		t.Fatalf("設定ファイルの値が反映されていません: %+v", so.settings)
	}

	so, err = parseServeArgs([]string{"-root", root}, serveEnv(t, map[string]string{"FINDX_PORT": "9100", "FINDX_OPEN": "0"}))
	if err != nil {
		t.Fatalf("parseServeArgs failed: %v", err)
	}
	if so.settings.Port != 9100 || so.settings.Open {
		t.Fatalf("環境変数が設定ファイルを上書きしていません: %+v", so.settings)
	}

	so, err = parseServeArgs([]string{"-root", root, "-p", "9200"}, serveEnv(t, map[string]string{"FINDX_PORT": "9100"}))
	if err != nil {
		t.Fatalf("parseServeArgs failed: %v", err)
	}
	if so.settings.Port != 9200 {
		t.Fatalf("フラグが環境変数を上書きしていません: %+v", so.settings)
	}
}

func TestParseServeArgsErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("ファイルの作成に失敗しました: %v", err)
	}
	cases := map[string][]string{
		"missing root": {"-root", filepath.Join(root, "missing")},
		"file root":    {"-root", file},
		"bad port":     {"-root", root, "-p", "70000"},
		"extra args":   {"-root", root, "extra"},
		"unknown flag": {"-bogus"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseServeArgs(args, serveEnv(t, nil)); err == nil {
				t.Fatalf("expected an error for %v", args)
			}
		})
	}
}

func TestParseServeArgsRejectsBadEnv(t *testing.T) {
	_, err := parseServeArgs([]string{"-root", t.TempDir()}, serveEnv(t, map[string]string{"FINDX_PORT": "0"}))
	if err == nil || !strings.Contains(err.Error(), "FINDX_PORT") {
		t.Fatalf("expected FINDX_PORT error, got %v", err)
	}
}
