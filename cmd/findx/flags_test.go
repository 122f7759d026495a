package main

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseScanArgsShortAliases(t *testing.T) {
	cfg, err := parseScanArgs([]string{"-n", "-r", "-m", "20", "-j", "3", "-o", "json", "src", "todo"}, io.Discard)
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.root != "src" || cfg.term != "todo" {
		t.Fatalf("positional mismatch: root=%q term=%q", cfg.root, cfg.term)
	}
	if cfg.layer.NamesOnly == nil || !*cfg.layer.NamesOnly {
		t.Fatal("-n should set names_only")
	}
	if cfg.layer.MatchRate == nil || *cfg.layer.MatchRate != 20 {
		t.Fatalf("match rate mismatch: %v", cfg.layer.MatchRate)
	}
	if cfg.layer.Jobs == nil || *cfg.layer.Jobs != 3 {
		t.Fatalf("jobs mismatch: %v", cfg.layer.Jobs)
	}
	if cfg.layer.Output == nil || *cfg.layer.Output != "json" {
		t.Fatalf("output mismatch: %v", cfg.layer.Output)
	}
}

func TestParseScanArgsRecursiveFlagDisablesRecursion(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want *bool
	}{
		{"指定なし", []string{"dir", "term"}, nil},
		{"短縮形", []string{"-r", "dir", "term"}, boolp(false)},
		{"長い形式", []string{"--recursive", "dir", "term"}, boolp(false)},
		{"明示的にfalse", []string{"--recursive=false", "dir", "term"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parseScanArgs(tc.args, io.Discard)
			if err != nil {
				t.Fatalf("parseScanArgs failed: %v", err)
			}
			got := cfg.layer.Recursive
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Fatalf("recursive layer = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseScanArgsInterspersedFlags(t *testing.T) {
	cfg, err := parseScanArgs([]string{"dir", "--names_only", "term", "--exclude", "vendor/**,*.min.js", "--exclude=build"}, io.Discard)
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.root != "dir" || cfg.term != "term" {
		t.Fatalf("positional mismatch: root=%q term=%q", cfg.root, cfg.term)
	}
	if cfg.layer.NamesOnly == nil || !*cfg.layer.NamesOnly {
		t.Fatal("--names_only after a positional should still apply")
	}
	if cfg.layer.Excludes == nil || strings.Join(*cfg.layer.Excludes, "|") != "vendor/**|*.min.js|build" {
		t.Fatalf("excludes mismatch: %v", cfg.layer.Excludes)
	}
}

func TestParseScanArgsDoubleDashKeepsDashedTerm(t *testing.T) {
	cfg, err := parseScanArgs([]string{"dir", "--", "-m"}, io.Discard)
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.term != "-m" {
		t.Fatalf("term = %q, want -m", cfg.term)
	}
}

func TestParseScanArgsProgressFlags(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--no-progress", "d", "t"}, io.Discard)
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.layer.Progress == nil || *cfg.layer.Progress {
		t.Fatalf("--no-progress should disable progress: %v", cfg.layer.Progress)
	}
	if _, err := parseScanArgs([]string{"--progress", "--no-progress", "d", "t"}, io.Discard); err == nil {
		t.Fatal("conflicting progress flags should fail")
	}
}

func TestParseScanArgsUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"引数なし":   {},
		"検索語なし":  {"dir"},
		"余分な引数":  {"dir", "term", "extra"},
		"空の検索語":  {"dir", ""},
		"未定義フラグ": {"--nope", "dir", "term"},
		"整数でない率": {"-m", "high", "dir", "term"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseScanArgs(args, io.Discard)
			if err == nil {
				t.Fatalf("expected a usage error for %v", args)
			}
			if !errors.Is(err, errUsage) {
				t.Fatalf("error should be a usage error: %v", err)
			}
		})
	}
}

func TestParseScanArgsHelp(t *testing.T) {
	var buf strings.Builder
	cfg, err := parseScanArgs([]string{"-h"}, &buf)
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if !cfg.showHelp {
		t.Fatal("showHelp should be true")
	}
	if !strings.Contains(buf.String(), "findx [flags] <directory> <search_term>") {
		t.Fatalf("help output missing usage line: %s", buf.String())
	}
}

func boolp(v bool) *bool { return &v }
