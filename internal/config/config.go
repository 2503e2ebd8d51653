package config

type Config struct {
	Runner RunnerConfig `yaml:"runner" toml:"runner"`
	Output OutputConfig `yaml:"output" toml:"output"`
	UI     UIConfig     `yaml:"ui" toml:"ui"`
}

// RunnerConfig describes how the external compiler/runner is invoked.
type RunnerConfig struct {
	Executable   string            `yaml:"executable" toml:"executable"`
	Args         []string          `yaml:"args" toml:"args"`
	ScriptName   string            `yaml:"script_name" toml:"script_name"`
	WindowsShell []string          `yaml:"windows_shell" toml:"windows_shell"`
	Env          map[string]string `yaml:"env" toml:"env"`
	TempDir      string            `yaml:"temp_dir" toml:"temp_dir"`
	MinVersion   string            `yaml:"min_version" toml:"min_version"`
	VersionArgs  []string          `yaml:"version_args" toml:"version_args"`
}

type OutputConfig struct {
	NoisePatterns   []string `yaml:"noise_patterns" toml:"noise_patterns"`
	ErrorPatterns   []string `yaml:"error_patterns" toml:"error_patterns"`
	TranscriptLines int      `yaml:"transcript_lines" toml:"transcript_lines"`
}

type UIConfig struct {
	Spinner string `yaml:"spinner" toml:"spinner"`
	Color   *bool  `yaml:"color" toml:"color"`
}
