package termcolor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Mode is the value of --color.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode accepts auto, always or never in any case. Empty means auto.
func ParseMode(v string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(v))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// EnvMap converts os.Environ style entries into a lookup map.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		k, v, _ := strings.Cut(entry, "=")
		env[k] = v
	}
	return env
}

// envRules decide auto mode from the environment, first match wins.
var envRules = []func(env map[string]string) (Mode, bool){
	func(env map[string]string) (Mode, bool) {
		return ModeNever, strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb")
	},
	func(env map[string]string) (Mode, bool) {
		return ModeNever, strings.TrimSpace(env["NO_COLOR"]) != ""
	},
	func(env map[string]string) (Mode, bool) {
		return ModeNever, strings.TrimSpace(env["CLICOLOR"]) == "0"
	},
	func(env map[string]string) (Mode, bool) {
		return ModeAlways, forced(env["CLICOLOR_FORCE"]) || forced(env["FORCE_COLOR"])
	},
}

// DetectMode decides auto mode. TERM=dumb, NO_COLOR and CLICOLOR=0 disable
// colors, CLICOLOR_FORCE or FORCE_COLOR with a non-zero value enables them, and
// otherwise colors follow whether stdout is a terminal.
func DetectMode(stdout *os.File, env map[string]string) Mode {
	for _, rule := range envRules {
		if m, ok := rule(env); ok {
			return m
		}
	}
	if stdout != nil && term.IsTerminal(int(stdout.Fd())) {
		return ModeAlways
	}
	return ModeNever
}

// Resolve turns the --color choice into an on/off decision for stdout.
func Resolve(mode Mode, stdout *os.File, env map[string]string) bool {
	if mode == ModeAuto || mode == "" {
		mode = DetectMode(stdout, env)
	}
	return mode == ModeAlways
}

// DetectProfile picks the richest color profile COLORTERM or TERM advertise.
func DetectProfile(env map[string]string) Profile {
	ct := strings.ToLower(env["COLORTERM"])
	for _, tag := range []string{"truecolor", "24bit", "24-bit"} {
		if strings.Contains(ct, tag) {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

// DetectScheme guesses the terminal background from COLORFGBG, then TERM.
// Dark is assumed when nothing is known.
func DetectScheme(env map[string]string) Scheme {
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// colorfgbgBackground returns the background index, the last numeric field of
// "fg;bg" or "fg;default;bg". A trailing empty field is skipped.
func colorfgbgBackground(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	for i := len(parts) - 1; i >= 0 && i >= len(parts)-2; i-- {
		p := strings.TrimSpace(parts[i])
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		return n, err == nil && n >= 0
	}
	return 0, false
}

func forced(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
