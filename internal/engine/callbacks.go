package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/justinpbarnett/scriptrun/internal/output"
)

// Callbacks are the sinks a caller receives a run through. All are optional.
// The engine never invokes them concurrently.
type Callbacks struct {
	// OnStart receives the handle as soon as the process exists, before any
	// output is read.
	OnStart func(*Execution)
	// OnEvent receives each classified output line.
	OnEvent func(output.Event)
	// OnResult is called exactly once, after the workspace is gone.
	OnResult func(Result)
}

// dispatcher is the single merge point for both reader goroutines.
type dispatcher struct {
	mu sync.Mutex
	cb Callbacks
}

func (d *dispatcher) start(x *Execution) (err error) {
	if d.cb.OnStart == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	defer recoverCallback("start", &err)
	d.cb.OnStart(x)
	return nil
}

func (d *dispatcher) event(ev output.Event) (err error) {
	if d.cb.OnEvent == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	defer recoverCallback("output", &err)
	d.cb.OnEvent(ev)
	return nil
}

func (d *dispatcher) result(res Result) {
	if d.cb.OnResult == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var err error
	defer func() {
		if err != nil {
			log.Printf("warning: run %s: %v", res.RunID, err)
		}
	}()
	defer recoverCallback("result", &err)
	d.cb.OnResult(res)
}

func recoverCallback(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s callback panicked: %v", name, r)
	}
}

func failureEvent(err error) output.Event {
	return output.Event{
		Stream: output.Stderr,
		Kind:   output.KindError,
		Text:   fmt.Sprintf("Execution failed: %v", err),
	}
}
