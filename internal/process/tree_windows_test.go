//go:build windows

package process

import (
	"errors"
	"testing"
)

func stubTaskkill(t *testing.T, err error) *[]int {
	t.Helper()
	var calls []int
	orig := runTaskkill
	runTaskkill = func(pid int) error {
		calls = append(calls, pid)
		return err
	}
	t.Cleanup(func() { runTaskkill = orig })
	return &calls
}

func TestTreeKillReapedSkipsTaskkill(t *testing.T) {
	calls := stubTaskkill(t, nil)
	tr := &tree{pid: 4242}

	if err := tr.kill(false); err != nil {
		t.Fatalf("kill() error: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("taskkill must not target a reaped pid, got calls %v", *calls)
	}
}

func TestTreeKillLiveUsesTaskkill(t *testing.T) {
	calls := stubTaskkill(t, errors.New("exit status 128"))
	tr := &tree{pid: 4242}

	if err := tr.kill(true); err != nil {
		t.Fatalf("a taskkill failure is logged, not returned: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0] != 4242 {
		t.Errorf("expected one taskkill of 4242, got %v", *calls)
	}
}
