package process

import (
	"fmt"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/justinpbarnett/scriptrun/internal/config"
)

// LaunchError is returned when the toolchain cannot be found or the OS
// refuses to start it.
type LaunchError struct {
	Executable string
	Err        error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Executable, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Script is the part of a workspace the launcher needs.
type Script interface {
	Dir() string
	ScriptPath() string
}

// Launcher builds and starts the compiler/runner invocation for a script.
type Launcher struct {
	Executable   string
	Args         []string
	WindowsShell []string
	Env          map[string]string

	// GOOS selects the invocation shape. Defaults to runtime.GOOS.
	GOOS string
}

func NewLauncher(cfg config.RunnerConfig) *Launcher {
	return &Launcher{
		Executable:   cfg.Executable,
		Args:         cfg.Args,
		WindowsShell: cfg.WindowsShell,
		Env:          cfg.Env,
		GOOS:         goruntime.GOOS,
	}
}

func (l *Launcher) goos() string {
	if l.GOOS == "" {
		return goruntime.GOOS
	}
	return l.GOOS
}

// Command returns the argv used to run the script at scriptPath.
func (l *Launcher) Command(scriptPath string) []string {
	var argv []string
	if l.goos() == "windows" {
		argv = append(argv, l.WindowsShell...)
	}
	argv = append(argv, l.Executable)
	argv = append(argv, l.Args...)
	return append(argv, scriptPath)
}

// Environ returns base with the launcher's overrides applied. Keys are
// compared case-insensitively on Windows.
func (l *Launcher) Environ(base []string) []string {
	fold := l.goos() == "windows"
	env := make([]string, 0, len(base)+len(l.Env))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if l.overrides(key, fold) {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range l.Env {
		env = append(env, k+"="+v)
	}
	return env
}

func (l *Launcher) overrides(key string, fold bool) bool {
	for k := range l.Env {
		if k == key || (fold && strings.EqualFold(k, key)) {
			return true
		}
	}
	return false
}

// Launch starts the toolchain against the script. Stdout and stderr are kept
// as separate pipes, and the child is placed in its own process tree so it
// can be killed together with anything it spawns.
func (l *Launcher) Launch(s Script) (*Process, error) {
	if _, err := exec.LookPath(l.Executable); err != nil {
		return nil, &LaunchError{Executable: l.Executable, Err: err}
	}

	argv := l.Command(s.ScriptPath())

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, &LaunchError{Executable: l.Executable, Err: fmt.Errorf("stdout pipe: %w", err)}
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		stdoutR.Close()
		stdoutW.Close()
		return nil, &LaunchError{Executable: l.Executable, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = s.Dir()
	cmd.Env = l.Environ(os.Environ())
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	prepareTree(cmd)

	startErr := cmd.Start()

	// The child holds its own copies of the write ends.
	stdoutW.Close()
	stderrW.Close()

	if startErr != nil {
		stdoutR.Close()
		stderrR.Close()
		return nil, &LaunchError{Executable: l.Executable, Err: fmt.Errorf("start: %w", startErr)}
	}

	return newProcess(cmd, stdoutR, stderrR), nil
}
