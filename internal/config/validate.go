package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run and errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Runner.Executable) == "" {
		errs = append(errs, "runner.executable must not be empty")
	}

	// The script file lives directly inside the workspace and its extension
	// drives location detection.
	name := cfg.Runner.ScriptName
	switch {
	case name == "":
		errs = append(errs, "runner.script_name must not be empty")
	case filepath.Base(name) != name:
		errs = append(errs, fmt.Sprintf("runner.script_name %q must be a bare file name", name))
	case filepath.Ext(name) == "":
		errs = append(errs, fmt.Sprintf("runner.script_name %q must have an extension", name))
	}

	for k := range cfg.Runner.Env {
		if k == "" || strings.ContainsAny(k, "=\x00") {
			errs = append(errs, fmt.Sprintf("runner.env key %q is not a valid variable name", k))
		}
	}

	if cfg.Runner.MinVersion != "" {
		if _, err := semver.NewConstraint(cfg.Runner.MinVersion); err != nil {
			errs = append(errs, fmt.Sprintf("runner.min_version %q is not a valid semver constraint: %v", cfg.Runner.MinVersion, err))
		}
	}

	if cfg.Output.TranscriptLines <= 0 {
		errs = append(errs, "output.transcript_lines must be positive")
	}

	for i, pattern := range cfg.Output.NoisePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			errs = append(errs, fmt.Sprintf("output.noise_patterns[%d] %q is not valid regex: %v", i, pattern, err))
		}
	}
	for i, pattern := range cfg.Output.ErrorPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			errs = append(errs, fmt.Sprintf("output.error_patterns[%d] %q is not valid regex: %v", i, pattern, err))
		}
	}

	switch cfg.UI.Spinner {
	case "dot", "line", "minidot", "points", "none":
	default:
		errs = append(errs, fmt.Sprintf("ui.spinner %q must be \"dot\", \"line\", \"minidot\", \"points\", or \"none\"", cfg.UI.Spinner))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
