package output

import (
	"fmt"
	"strings"
	"sync"
)

// Transcript records a run's events for copying and summaries. Only the
// newest limit lines are kept; error statistics cover the whole run.
type Transcript struct {
	mu      sync.RWMutex
	limit   int
	lines   []Event
	total   int
	errors  int
	firstEr *Event
}

func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = 10000
	}
	return &Transcript{limit: limit}
}

func (t *Transcript) Append(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if ev.IsError() {
		t.errors++
		if t.firstEr == nil {
			first := ev
			t.firstEr = &first
		}
	}

	t.lines = append(t.lines, ev)
	// Compact once the backing array holds two windows' worth.
	if len(t.lines) >= 2*t.limit {
		kept := make([]Event, t.limit, 2*t.limit)
		copy(kept, t.lines[len(t.lines)-t.limit:])
		t.lines = kept
	}
}

func (t *Transcript) windowLocked() []Event {
	if len(t.lines) > t.limit {
		return t.lines[len(t.lines)-t.limit:]
	}
	return t.lines
}

// Events returns the retained events, oldest first.
func (t *Transcript) Events() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	w := t.windowLocked()
	if len(w) == 0 {
		return nil
	}
	return append([]Event(nil), w...)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.windowLocked())
}

// Dropped reports how many early lines are no longer retained.
func (t *Transcript) Dropped() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total - len(t.windowLocked())
}

// Errors counts error events over the whole run, dropped lines included.
func (t *Transcript) Errors() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errors
}

// FirstError returns the run's first error event, even if its line has been
// dropped since.
func (t *Transcript) FirstError() (Event, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.firstEr == nil {
		return Event{}, false
	}
	return *t.firstEr, true
}

// Text joins the retained lines without markup. When early lines were
// dropped, a header line says how many.
func (t *Transcript) Text() string {
	return t.join(func(ev Event) string { return ev.Text })
}

// Markup is Text with error delimiters applied.
func (t *Transcript) Markup() string {
	return t.join(Event.Markup)
}

func (t *Transcript) join(line func(Event) string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	w := t.windowLocked()
	var b strings.Builder
	if dropped := t.total - len(w); dropped > 0 {
		fmt.Fprintf(&b, "[%d earlier lines dropped]\n", dropped)
	}
	for i, ev := range w {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line(ev))
	}
	return b.String()
}
