package config

import (
	"fmt"

	engineopts "github.com/phyten/findx/internal/engine/opts"
	"github.com/phyten/findx/internal/termcolor"
)

// ValidatePort rejects ports outside 1..65535.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// NormalizeEngine canonicalises the output and color values. Engine options are
// validated separately by opts.NormalizeAndValidate once applied.
func NormalizeEngine(values EngineSettings) (EngineSettings, error) {
	out, err := engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Output = out
	mode, err := termcolor.ParseMode(values.Color)
	if err != nil {
		return values, fmt.Errorf("invalid --color: %s", values.Color)
	}
	values.Color = string(mode)
	return values, nil
}

func NormalizeServe(values ServeSettings) (ServeSettings, error) {
	if err := ValidatePort(values.Port); err != nil {
		return values, err
	}
	return values, nil
}
