package tui

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextDim       = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
)

// Styles is the palette used to render a run. With Enabled false every
// render is the identity.
type Styles struct {
	Enabled bool

	Plain     lipgloss.Style
	Error     lipgloss.Style
	Spinner   lipgloss.Style
	Status    lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	Cancelled lipgloss.Style
}

func DefaultStyles(color bool) Styles {
	if !color {
		return Styles{}
	}
	return Styles{
		Enabled:   true,
		Plain:     lipgloss.NewStyle().Foreground(TextPrimary),
		Error:     lipgloss.NewStyle().Foreground(StatusError),
		Spinner:   lipgloss.NewStyle().Foreground(StatusRunning),
		Status:    lipgloss.NewStyle().Foreground(TextDim),
		Success:   lipgloss.NewStyle().Foreground(StatusSuccess).Bold(true),
		Failure:   lipgloss.NewStyle().Foreground(StatusError).Bold(true),
		Cancelled: lipgloss.NewStyle().Foreground(StatusWarning).Bold(true),
	}
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.Enabled || text == "" {
		return text
	}
	return st.Render(text)
}
