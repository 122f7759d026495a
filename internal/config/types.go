package config

import (
	"strings"

	"github.com/phyten/findx/internal/engine"
)

// EngineConfig は 1 つの設定レイヤ (ファイル・環境変数・フラグ) を表す。
// nil のフィールドは「このレイヤでは未指定」を意味する。
type EngineConfig struct {
	NamesOnly    *bool     `yaml:"names_only" toml:"names_only" json:"names_only"`
	Recursive    *bool     `yaml:"recursive" toml:"recursive" json:"recursive"`
	MatchRate    *int      `yaml:"match_rate" toml:"match_rate" json:"match_rate"`
	Algorithm    *string   `yaml:"algorithm" toml:"algorithm" json:"algorithm"`
	Jobs         *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Excludes     *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	MaxFileBytes *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	Output       *string   `yaml:"output" toml:"output" json:"output"`
	Color        *string   `yaml:"color" toml:"color" json:"color"`
	Progress     *bool     `yaml:"progress" toml:"progress" json:"progress"`
}

// ServeConfig holds settings for `findx serve`.
type ServeConfig struct {
	Port *int  `yaml:"port" toml:"port" json:"port"`
	Open *bool `yaml:"open" toml:"open" json:"open"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	Serve  ServeConfig  `yaml:"serve" toml:"serve" json:"serve"`
}

// EngineSettings はすべてのレイヤを合成した後の値
type EngineSettings struct {
	NamesOnly    bool
	Recursive    bool
	MatchRate    int
	Algorithm    string
	Jobs         int
	Excludes     []string
	MaxFileBytes int
	Output       string
	Color        string
	// Progress が nil の場合は端末かどうかで自動判定する
	Progress *bool
}

type ServeSettings struct {
	Port int
	Open bool
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		NamesOnly:    opts.NamesOnly,
		Recursive:    opts.Recursive,
		MatchRate:    opts.MatchRate,
		Algorithm:    opts.Algorithm,
		Jobs:         opts.Jobs,
		Excludes:     cloneStrings(opts.Excludes),
		MaxFileBytes: int(opts.MaxFileBytes),
		Output:       "text",
		Color:        "auto",
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.NamesOnly = s.NamesOnly
	opts.Recursive = s.Recursive
	opts.MatchRate = s.MatchRate
	if trimmed := strings.TrimSpace(s.Algorithm); trimmed != "" {
		opts.Algorithm = trimmed
	}
	opts.Jobs = s.Jobs
	opts.Excludes = cloneStrings(s.Excludes)
	opts.MaxFileBytes = int64(s.MaxFileBytes)
	if s.Progress != nil {
		opts.Progress = *s.Progress
	}
}

func DefaultServeSettings() ServeSettings {
	return ServeSettings{Port: 8080, Open: false}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
