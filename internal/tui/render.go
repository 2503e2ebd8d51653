package tui

import (
	"github.com/justinpbarnett/scriptrun/internal/engine"
	"github.com/justinpbarnett/scriptrun/internal/output"
)

// RenderLine styles one event for the terminal. Error lines are coloured and
// the script location they mention is underlined.
func RenderLine(ev output.Event, s Styles) string {
	if !s.Enabled {
		return ev.Text
	}
	base := s.Plain
	if ev.IsError() {
		base = s.Error
	}
	loc := ev.Location
	if loc == nil || loc.Start < 0 || loc.End > len(ev.Text) || loc.Start >= loc.End {
		return s.render(base, ev.Text)
	}
	return s.render(base, ev.Text[:loc.Start]) +
		s.render(base.Underline(true), ev.Text[loc.Start:loc.End]) +
		s.render(base, ev.Text[loc.End:])
}

// RenderSummary styles the status line printed after a run.
func RenderSummary(res engine.Result, s Styles) string {
	st := s.Failure
	switch {
	case res.Success():
		st = s.Success
	case res.Outcome == engine.OutcomeCancelled:
		st = s.Cancelled
	}
	return s.render(st, res.Summary())
}
