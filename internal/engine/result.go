package engine

import (
	"errors"
	"fmt"
	"time"
)

// NoExitCode is reported when the toolchain never produced an exit status.
const NoExitCode = -1

// ErrCancelled is the Result error of a run stopped by the user.
var ErrCancelled = errors.New("run cancelled")

type Outcome string

const (
	OutcomeExited    Outcome = "exited"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Result is the terminal value of a run. ExitCode is NoExitCode unless
// Outcome is OutcomeExited.
type Result struct {
	RunID    string
	Outcome  Outcome
	ExitCode int
	Err      error
	Duration time.Duration
}

func (r Result) Success() bool {
	return r.Outcome == OutcomeExited && r.ExitCode == 0
}

// Summary is the status line shown after a run's output.
func (r Result) Summary() string {
	switch r.Outcome {
	case OutcomeCancelled:
		return "[Terminated by user]"
	case OutcomeFailed:
		if r.Err != nil {
			return fmt.Sprintf("[Execution failed: %v]", r.Err)
		}
		return "[Execution failed]"
	default:
		if r.ExitCode == 0 {
			return "[Finished with exit code 0]"
		}
		return fmt.Sprintf("[Failed with exit code %d]", r.ExitCode)
	}
}
