// Package workspace allocates the per-run temporary directory that holds the
// materialized script.
package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const dirPrefix = "scriptrun-"

// Error reports a failure to create or populate a workspace.
type Error struct {
	Op   string // "mkdir", "write" or "abs"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("workspace %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Workspace is an exclusively owned temp directory containing one script file.
type Workspace struct {
	dir        string
	scriptPath string
	once       sync.Once
}

// Create makes a uniquely named directory under root (os.TempDir() when root
// is empty) and writes script into it as name.
func Create(root, name, script string) (*Workspace, error) {
	if root == "" {
		root = os.TempDir()
	}

	dir := filepath.Join(root, dirPrefix+uuid.New().String())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, &Error{Op: "mkdir", Path: dir, Err: err}
	}

	ws := &Workspace{dir: dir}

	abs, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		ws.Destroy()
		return nil, &Error{Op: "abs", Path: dir, Err: err}
	}
	ws.scriptPath = abs

	if err := os.WriteFile(abs, []byte(script), 0o600); err != nil {
		ws.Destroy()
		return nil, &Error{Op: "write", Path: abs, Err: err}
	}

	return ws, nil
}

func (w *Workspace) Dir() string        { return w.dir }
func (w *Workspace) ScriptPath() string { return w.scriptPath }

// Destroy removes the workspace tree. Safe to call more than once and on a
// directory that is already gone; failures are logged, never returned.
func (w *Workspace) Destroy() {
	if w == nil {
		return
	}
	w.once.Do(func() {
		if err := os.RemoveAll(w.dir); err != nil {
			log.Printf("warning: remove workspace %s: %v", w.dir, err)
		}
	})
}
