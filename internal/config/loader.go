package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the project root for file
// discovery. Load calls it with the working directory.
func LoadFrom(dir string) (*Config, error) {
	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads an explicit config file. An empty path means defaults only.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "scriptrun.yaml"),
		filepath.Join(dir, "scriptrun.toml"),
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "scriptrun", "config.yaml"),
			filepath.Join(home, ".config", "scriptrun", "config.toml"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// loadFromFile reads and unmarshals a YAML or TOML config file, chosen by
// extension. Anything that is not .toml is parsed as YAML.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// merge deep-merges override onto base. Scalar fields override when non-zero.
// Maps merge at the key level. Slices replace entirely when non-nil.
// Pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	// Runner
	if override.Runner.Executable != "" {
		base.Runner.Executable = override.Runner.Executable
	}
	if override.Runner.Args != nil {
		base.Runner.Args = override.Runner.Args
	}
	if override.Runner.ScriptName != "" {
		base.Runner.ScriptName = override.Runner.ScriptName
	}
	if override.Runner.WindowsShell != nil {
		base.Runner.WindowsShell = override.Runner.WindowsShell
	}
	if override.Runner.Env != nil {
		if base.Runner.Env == nil {
			base.Runner.Env = make(map[string]string)
		}
		for k, v := range override.Runner.Env {
			base.Runner.Env[k] = v
		}
	}
	if override.Runner.TempDir != "" {
		base.Runner.TempDir = override.Runner.TempDir
	}
	if override.Runner.MinVersion != "" {
		base.Runner.MinVersion = override.Runner.MinVersion
	}
	if override.Runner.VersionArgs != nil {
		base.Runner.VersionArgs = override.Runner.VersionArgs
	}

	// Output
	if override.Output.NoisePatterns != nil {
		base.Output.NoisePatterns = override.Output.NoisePatterns
	}
	if override.Output.ErrorPatterns != nil {
		base.Output.ErrorPatterns = override.Output.ErrorPatterns
	}
	if override.Output.TranscriptLines != 0 {
		base.Output.TranscriptLines = override.Output.TranscriptLines
	}

	// UI
	if override.UI.Spinner != "" {
		base.UI.Spinner = override.UI.Spinner
	}
	if override.UI.Color != nil {
		base.UI.Color = override.UI.Color
	}
}

// applyEnvOverrides applies SCRIPTRUN_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCRIPTRUN_EXECUTABLE"); v != "" {
		cfg.Runner.Executable = v
	}
	if v := os.Getenv("SCRIPTRUN_TEMP_DIR"); v != "" {
		cfg.Runner.TempDir = v
	}
	if v := os.Getenv("SCRIPTRUN_MIN_VERSION"); v != "" {
		cfg.Runner.MinVersion = v
	}
	if v := os.Getenv("SCRIPTRUN_TRANSCRIPT_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.TranscriptLines = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: SCRIPTRUN_TRANSCRIPT_LINES=%q is not a valid integer, ignoring\n", v)
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.UI.Color = boolPtr(false)
	}
}
