// Package engine runs a script through the external toolchain: it sets up the
// workspace, launches the process, streams classified output to the caller,
// supports cancellation of the whole process tree, and always cleans up.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justinpbarnett/scriptrun/internal/config"
	"github.com/justinpbarnett/scriptrun/internal/output"
	"github.com/justinpbarnett/scriptrun/internal/process"
	"github.com/justinpbarnett/scriptrun/internal/toolchain"
	"github.com/justinpbarnett/scriptrun/internal/workspace"
)

// Request is the input of a single run.
type Request struct {
	Script string
}

type Engine struct {
	launcher    *process.Launcher
	classifier  *output.Classifier
	tempDir     string
	scriptName  string
	minVersion  string
	versionArgs []string

	versionMu   sync.Mutex
	versionDone bool
	versionErr  error
}

// drainGrace bounds how long output is still read after the toolchain exits.
// Descendants that escaped the process tree may hold the pipes open forever.
var drainGrace = 2 * time.Second

// testHookDraining runs on the coordinator once both readers are started.
var testHookDraining = func() {}

func New(cfg *config.Config) (*Engine, error) {
	cl, err := output.NewClassifier(output.RulesFromConfig(cfg.Output, cfg.Runner.ScriptName))
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	return &Engine{
		launcher:    process.NewLauncher(cfg.Runner),
		classifier:  cl,
		tempDir:     cfg.Runner.TempDir,
		scriptName:  cfg.Runner.ScriptName,
		minVersion:  cfg.Runner.MinVersion,
		versionArgs: cfg.Runner.VersionArgs,
	}, nil
}

func (e *Engine) Classifier() *output.Classifier { return e.classifier }

// Run executes req and blocks until it is finished. Cancelling ctx has the
// same effect as Execution.Cancel. The returned Result is the one passed to
// cb.OnResult.
func (e *Engine) Run(ctx context.Context, req Request, cb Callbacks) Result {
	x := newExecution(uuid.New().String())
	e.run(ctx, x, req, cb)
	return x.result
}

// Start executes req on a new goroutine and returns its handle immediately.
// The handle can be cancelled before the process exists.
func (e *Engine) Start(ctx context.Context, req Request, cb Callbacks) *Execution {
	x := newExecution(uuid.New().String())
	go e.run(ctx, x, req, cb)
	return x
}

// checkVersion enforces runner.min_version. A conclusive check (a version
// was read, or the executable is missing) is cached for the engine; a check
// cut short by ctx is not, and reports ErrCancelled.
func (e *Engine) checkVersion(ctx context.Context) error {
	if e.minVersion == "" {
		return nil
	}

	e.versionMu.Lock()
	defer e.versionMu.Unlock()
	if e.versionDone {
		return e.versionErr
	}

	info, err := toolchain.Detect(ctx, e.launcher.Executable, e.versionArgs)
	if ctx.Err() != nil {
		return ErrCancelled
	}
	switch {
	case err != nil && errors.Is(err, exec.ErrNotFound):
		e.versionErr = &process.LaunchError{Executable: e.launcher.Executable, Err: err}
	case err != nil:
		return &process.LaunchError{Executable: e.launcher.Executable, Err: err}
	default:
		e.versionErr = e.compareVersion(info)
	}
	e.versionDone = true
	return e.versionErr
}

func (e *Engine) compareVersion(info *toolchain.Info) error {
	ok, err := info.Satisfies(e.minVersion)
	if err != nil {
		return &process.LaunchError{Executable: e.launcher.Executable, Err: err}
	}
	if !ok {
		return &process.LaunchError{
			Executable: e.launcher.Executable,
			Err:        fmt.Errorf("version %s does not satisfy %q", info.VersionString(), e.minVersion),
		}
	}
	return nil
}

// runState is the coordinator's view of one run.
type runState struct {
	mu     sync.Mutex
	fault  error
	killed bool
}

func (s *runState) setFault(err error) {
	s.mu.Lock()
	if s.fault == nil {
		s.fault = err
	}
	s.mu.Unlock()
}

func (e *Engine) run(ctx context.Context, x *Execution, req Request, cb Callbacks) {
	start := time.Now()
	d := &dispatcher{cb: cb}
	rs := &runState{}

	var (
		ws       *workspace.Workspace
		proc     *process.Process
		readers  sync.WaitGroup
		stopOnce sync.Once
		stop     = make(chan struct{})
		res      = Result{RunID: x.id, ExitCode: NoExitCode}
	)
	stopWatch := func() { stopOnce.Do(func() { close(stop) }) }

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error: %v", r)
			if proc != nil {
				proc.KillTree()
				proc.ClosePipes()
			}
			readers.Wait()
			d.event(failureEvent(err))
			res = Result{RunID: x.id, Outcome: OutcomeFailed, ExitCode: NoExitCode, Err: err}
		}
		stopWatch()
		if proc != nil {
			if err := proc.KillTree(); err != nil {
				log.Printf("warning: run %s: kill process tree: %v", x.id, err)
			}
			proc.Close()
		}
		ws.Destroy()
		res.Duration = time.Since(start)
		x.finish(res)
		d.result(res)
	}()

	fail := func(err error) {
		d.event(failureEvent(err))
		res.Outcome = OutcomeFailed
		res.Err = err
	}
	cancel := func() {
		res.Outcome = OutcomeCancelled
		res.Err = ErrCancelled
	}
	cancelled := func() bool {
		return ctx.Err() != nil || x.cancelRequested()
	}

	x.setState(StateStarting)

	if cancelled() {
		cancel()
		return
	}

	if err := e.checkVersion(ctx); err != nil {
		if errors.Is(err, ErrCancelled) {
			cancel()
		} else {
			fail(err)
		}
		return
	}
	if cancelled() {
		cancel()
		return
	}

	var err error
	ws, err = workspace.Create(e.tempDir, e.scriptName, req.Script)
	if err != nil {
		fail(err)
		return
	}

	proc, err = e.launcher.Launch(ws)
	if err != nil {
		fail(err)
		return
	}

	x.pid.Store(int64(proc.PID()))
	x.setState(StateRunning)

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-stop:
			return
		case <-x.cancelCh:
		case <-ctx.Done():
		}
		rs.mu.Lock()
		rs.killed = true
		rs.mu.Unlock()
		if err := proc.KillTree(); err != nil {
			log.Printf("warning: run %s: kill process tree: %v", x.id, err)
		}
		// A descendant outside the tree may still hold the pipes.
		proc.ClosePipes()
	}()

	if err := d.start(x); err != nil {
		rs.setFault(err)
		proc.KillTree()
	}

	drain := func(r io.Reader, stream output.Stream) {
		defer readers.Done()
		defer func() {
			if r := recover(); r != nil {
				rs.setFault(fmt.Errorf("read %s: %v", stream, r))
				proc.KillTree()
			}
		}()
		process.ReadLines(r, func(line string) {
			ev, ok := e.classifier.Classify(line, stream)
			if !ok {
				return
			}
			if err := d.event(ev); err != nil {
				rs.setFault(err)
				proc.KillTree()
			}
		})
	}

	readers.Add(2)
	go drain(proc.Stdout(), output.Stdout)
	go drain(proc.Stderr(), output.Stderr)
	x.setState(StateDraining)
	testHookDraining()

	code, waitErr := proc.Wait()

	// Descendants left behind by the toolchain would hold the pipes open.
	// Whatever they already wrote stays buffered and is still drained.
	if err := proc.KillTree(); err != nil {
		log.Printf("warning: run %s: reap process tree: %v", x.id, err)
	}
	if !waitTimeout(&readers, drainGrace) {
		log.Printf("warning: run %s: output still held open after exit, closing pipes", x.id)
		proc.ClosePipes()
		readers.Wait()
	}

	stopWatch()
	<-watchDone

	rs.mu.Lock()
	killed, fault := rs.killed, rs.fault
	rs.mu.Unlock()

	switch {
	case fault != nil:
		fail(fault)
	case killed:
		cancel()
	case waitErr != nil:
		fail(fmt.Errorf("wait: %w", waitErr))
	default:
		res.Outcome = OutcomeExited
		res.ExitCode = code
	}
}

// waitTimeout reports whether wg finished within d.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-done:
		return true
	case <-t.C:
		return false
	}
}
