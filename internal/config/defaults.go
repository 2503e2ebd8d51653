package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Runner: RunnerConfig{
			Executable:   "kotlinc",
			Args:         []string{"-script"},
			ScriptName:   "script.kts",
			WindowsShell: []string{"cmd.exe", "/c"},
			Env: map[string]string{
				"JAVA_TOOL_OPTIONS": "-Dfile.encoding=UTF-8",
			},
			VersionArgs: []string{"-version"},
		},
		Output: OutputConfig{
			NoisePatterns: []string{
				`Picked up JAVA_TOOL_OPTIONS`,
			},
			ErrorPatterns: []string{
				`Exception`,
				`: error:`,
				`^error:`,
			},
			TranscriptLines: 10000,
		},
		UI: UIConfig{
			Spinner: "dot",
			Color:   boolPtr(true),
		},
	}
}
