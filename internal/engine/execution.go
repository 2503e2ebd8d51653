package engine

import (
	"sync"
	"sync/atomic"
)

type State int32

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateDraining
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Execution is the handle for one run. Cancel only signals; termination of
// the process tree and cleanup happen on the run's own goroutine.
type Execution struct {
	id    string
	state atomic.Int32
	pid   atomic.Int64

	cancelOnce sync.Once
	cancelCh   chan struct{}

	done   chan struct{}
	result Result
}

func newExecution(id string) *Execution {
	return &Execution{
		id:       id,
		cancelCh: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (x *Execution) RunID() string { return x.id }
func (x *Execution) State() State  { return State(x.state.Load()) }

// PID of the launched toolchain, or 0 before launch.
func (x *Execution) PID() int { return int(x.pid.Load()) }

// Cancel requests termination of the run and its whole process tree. It
// never blocks, and calling it again or after completion does nothing.
func (x *Execution) Cancel() {
	x.cancelOnce.Do(func() { close(x.cancelCh) })
}

// Done is closed once the Result is final.
func (x *Execution) Done() <-chan struct{} { return x.done }

// Wait blocks until the run finishes and returns its Result.
func (x *Execution) Wait() Result {
	<-x.done
	return x.result
}

func (x *Execution) setState(s State) { x.state.Store(int32(s)) }

func (x *Execution) cancelRequested() bool {
	select {
	case <-x.cancelCh:
		return true
	default:
		return false
	}
}

func (x *Execution) finish(res Result) {
	if res.Outcome == OutcomeCancelled {
		x.setState(StateCancelled)
	} else {
		x.setState(StateCompleted)
	}
	x.result = res
	close(x.done)
}
