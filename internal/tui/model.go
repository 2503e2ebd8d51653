package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/scriptrun/internal/engine"
	"github.com/justinpbarnett/scriptrun/internal/output"
)

// RunModel is an inline view of a single run: output is printed above a
// spinner line as it arrives.
type RunModel struct {
	styles     Styles
	keys       KeyMap
	spinner    spinner.Model
	showSpin   bool
	transcript *output.Transcript

	cancel     func()
	exec       *engine.Execution
	cancelling bool

	result *engine.Result
}

// NewRunModel builds the view. cancel stops the run even before the process
// has started; transcript may be nil.
func NewRunModel(styles Styles, spinnerName string, transcript *output.Transcript, cancel func()) RunModel {
	sp, ok := spinnerByName(spinnerName)
	s := spinner.New(spinner.WithSpinner(sp))
	if styles.Enabled {
		s.Style = styles.Spinner
	}
	return RunModel{
		styles:     styles,
		keys:       DefaultKeyMap(),
		spinner:    s,
		showSpin:   ok,
		transcript: transcript,
		cancel:     cancel,
	}
}

func spinnerByName(name string) (spinner.Spinner, bool) {
	switch name {
	case "line":
		return spinner.Line, true
	case "minidot":
		return spinner.MiniDot, true
	case "points":
		return spinner.Points, true
	case "none":
		return spinner.Spinner{}, false
	default:
		return spinner.Dot, true
	}
}

func (m RunModel) Init() tea.Cmd {
	if !m.showSpin {
		return nil
	}
	return m.spinner.Tick
}

func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StartedMsg:
		m.exec = msg.Execution
		return m, nil

	case OutputMsg:
		if m.transcript != nil {
			m.transcript.Append(msg.Event)
		}
		return m, tea.Println(RenderLine(msg.Event, m.styles))

	case FinishedMsg:
		res := msg.Result
		m.result = &res
		return m, tea.Sequence(tea.Println(RenderSummary(res, m.styles)), tea.Quit)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if !key.Matches(msg, m.keys.Cancel) {
			return m, nil
		}
		if m.cancelling {
			return m, tea.Quit
		}
		m.cancelling = true
		if m.exec != nil {
			m.exec.Cancel()
		}
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.showSpin || m.result != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m RunModel) View() string {
	if m.result != nil {
		return ""
	}
	label := "running"
	if m.cancelling {
		label = "cancelling (ctrl+c again to quit)"
	}
	if m.exec != nil && m.exec.PID() > 0 && !m.cancelling {
		label += " (pid " + strconv.Itoa(m.exec.PID()) + ")"
	}
	label = m.styles.render(m.styles.Status, label)
	if !m.showSpin {
		return label
	}
	return m.spinner.View() + " " + label
}

// Result reports the finished run, if any.
func (m RunModel) Result() (engine.Result, bool) {
	if m.result == nil {
		return engine.Result{}, false
	}
	return *m.result, true
}

func (m RunModel) Cancelling() bool { return m.cancelling }
