// Package toolchain locates the script compiler/runner and reports its
// version.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const probeTimeout = 30 * time.Second

var versionRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?`)

type Info struct {
	Path    string
	Raw     string // trimmed output of the version probe
	Version *semver.Version
}

// Detect resolves executable on PATH and runs it with versionArgs. A missing
// executable is an error; an unparseable version is not (Version stays nil).
func Detect(ctx context.Context, executable string, versionArgs []string) (*Info, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", executable, err)
	}

	info := &Info{Path: path}
	if len(versionArgs) == 0 {
		return info, nil
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, versionArgs...).CombinedOutput()
	info.Raw = strings.TrimSpace(string(out))
	if err != nil && info.Raw == "" {
		return info, fmt.Errorf("version probe: %w", err)
	}

	info.Version = ParseVersion(info.Raw)
	return info, nil
}

// ParseVersion extracts the first version-looking token from s, e.g.
// "info: kotlinc-jvm 2.0.21 (JRE 17.0.9+9)" yields 2.0.21.
func ParseVersion(s string) *semver.Version {
	for _, line := range strings.Split(s, "\n") {
		// JVM noise lines carry their own version numbers.
		if strings.Contains(line, "JAVA_TOOL_OPTIONS") {
			continue
		}
		if m := versionRe.FindString(line); m != "" {
			if v, err := semver.NewVersion(m); err == nil {
				return v
			}
		}
	}
	return nil
}

// Satisfies reports whether the detected version meets constraint. An empty
// constraint is always satisfied; an unknown version never is.
func (i *Info) Satisfies(constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parse constraint %q: %w", constraint, err)
	}
	if i.Version == nil {
		return false, nil
	}
	return c.Check(i.Version), nil
}

func (i *Info) VersionString() string {
	if i.Version == nil {
		return "unknown"
	}
	return i.Version.String()
}
