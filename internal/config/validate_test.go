package config

import (
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := validate(&cfg); err != nil {
		t.Fatalf("DefaultConfig() should pass validation, got: %v", err)
	}
}

func TestValidateEmptyExecutable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runner.Executable = "  "

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for empty executable")
	}
	if !strings.Contains(err.Error(), "runner.executable") {
		t.Errorf("expected error about runner.executable, got: %v", err)
	}
}

func TestValidateScriptName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "must not be empty"},
		{"sub/script.kts", "bare file name"},
		{"script", "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Runner.ScriptName = tt.name

			err := validate(&cfg)
			if err == nil {
				t.Fatalf("expected validation error for script name %q", tt.name)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateBadEnvKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runner.Env["A=B"] = "x"

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for env key containing '='")
	}
	if !strings.Contains(err.Error(), "runner.env") {
		t.Errorf("expected error about runner.env, got: %v", err)
	}
}

func TestValidateMinVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runner.MinVersion = ">= 1.9"
	if err := validate(&cfg); err != nil {
		t.Fatalf("expected valid constraint, got: %v", err)
	}

	cfg.Runner.MinVersion = "not a version"
	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for bad constraint")
	}
	if !strings.Contains(err.Error(), "min_version") {
		t.Errorf("expected error about min_version, got: %v", err)
	}
}

func TestValidateBadRegex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.ErrorPatterns = append(cfg.Output.ErrorPatterns, "[invalid")

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for bad regex")
	}
	if !strings.Contains(err.Error(), "[invalid") {
		t.Errorf("expected error mentioning the bad pattern, got: %v", err)
	}
}

func TestValidateBadSpinner(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.Spinner = "wheel"

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for unknown spinner")
	}
	if !strings.Contains(err.Error(), "ui.spinner") {
		t.Errorf("expected error about ui.spinner, got: %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runner.Executable = ""
	cfg.Output.TranscriptLines = 0
	cfg.Output.NoisePatterns = []string{"("}

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}
