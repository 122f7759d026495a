package config

import (
	"errors"
	"strings"
)

// FromEnv reads the FINDX_* variables. Every malformed value is reported; the
// returned Config still carries the values that parsed.
func FromEnv(getenv func(string) string) (Config, error) {
	var cfg Config
	if getenv == nil {
		return cfg, nil
	}
	var errs []error
	for _, f := range fields {
		raw := strings.TrimSpace(getenv(f.env))
		if raw == "" {
			continue
		}
		if err := f.set(&cfg, f.env, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return cfg, errors.Join(errs...)
}
