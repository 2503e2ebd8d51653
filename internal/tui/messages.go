package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/scriptrun/internal/engine"
	"github.com/justinpbarnett/scriptrun/internal/output"
)

// StartedMsg is sent once the toolchain process exists.
type StartedMsg struct {
	Execution *engine.Execution
}

// OutputMsg carries one classified output line.
type OutputMsg struct {
	Event output.Event
}

// FinishedMsg is sent exactly once per run, after cleanup.
type FinishedMsg struct {
	Result engine.Result
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Callbacks forwards engine callbacks into a bubbletea program.
func Callbacks(s Sender) engine.Callbacks {
	return engine.Callbacks{
		OnStart:  func(x *engine.Execution) { s.Send(StartedMsg{Execution: x}) },
		OnEvent:  func(ev output.Event) { s.Send(OutputMsg{Event: ev}) },
		OnResult: func(res engine.Result) { s.Send(FinishedMsg{Result: res}) },
	}
}
