//go:build !windows

package process

import (
	"errors"
	"os/exec"
	goruntime "runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

// tree is the process group led by the launched child.
type tree struct {
	pgid int
}

func prepareTree(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func attachTree(cmd *exec.Cmd) (*tree, error) {
	return &tree{pgid: cmd.Process.Pid}, nil
}

// kill signals the whole group. The group outlives its leader, so this is
// also valid after the leader was reaped.
func (t *tree) kill(bool) error {
	err := unix.Kill(-t.pgid, unix.SIGKILL)
	switch {
	case err == nil, errors.Is(err, unix.ESRCH):
		return nil
	case errors.Is(err, unix.EPERM) && goruntime.GOOS == "darwin":
		// darwin reports EPERM for a group holding only zombies.
		return nil
	}
	return err
}

func (t *tree) close() error { return nil }
