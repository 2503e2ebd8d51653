package process

import (
	"errors"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

// Process is a running toolchain invocation and the tree of processes it
// spawns.
type Process struct {
	cmd    *exec.Cmd
	stdout *os.File
	stderr *os.File
	tree   *tree

	// reaped is set once Wait has returned; the OS may reuse the pid after.
	reaped atomic.Bool

	pipesOnce sync.Once
	pipesErr  error
	treeOnce  sync.Once
}

func newProcess(cmd *exec.Cmd, stdout, stderr *os.File) *Process {
	t, err := attachTree(cmd)
	if err != nil {
		log.Printf("warning: track process tree of pid %d: %v", cmd.Process.Pid, err)
	}
	return &Process{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		tree:   t,
	}
}

func (p *Process) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *Process) Stdout() io.Reader { return p.stdout }
func (p *Process) Stderr() io.Reader { return p.stderr }

// KillTree forcibly terminates the process and every descendant still in its
// tree. Calling it again, or after the process has exited, is harmless.
func (p *Process) KillTree() error {
	if p.tree != nil {
		return p.tree.kill(!p.reaped.Load())
	}
	if p.cmd.Process == nil || p.reaped.Load() {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Wait blocks until the process exits and returns its exit code. A process
// terminated by a signal reports -1. A non-nil error means the exit status
// could not be obtained at all.
func (p *Process) Wait() (int, error) {
	err := p.cmd.Wait()
	p.reaped.Store(true)
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// ClosePipes closes the read ends of stdout and stderr. Pending reads return
// an error, which unblocks readers even while a detached descendant still
// holds the write ends.
func (p *Process) ClosePipes() error {
	p.pipesOnce.Do(func() {
		for _, f := range []*os.File{p.stdout, p.stderr} {
			if err := f.Close(); err != nil && p.pipesErr == nil {
				p.pipesErr = err
			}
		}
	})
	return p.pipesErr
}

// Close releases the output pipes and any OS handle held for the process
// tree.
func (p *Process) Close() error {
	err := p.ClosePipes()
	p.treeOnce.Do(func() {
		if p.tree == nil {
			return
		}
		if terr := p.tree.close(); terr != nil && err == nil {
			err = terr
		}
	})
	return err
}
