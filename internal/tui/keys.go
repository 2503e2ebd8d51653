package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Cancel key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "stop run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+\\"),
			key.WithHelp("ctrl+\\", "quit without waiting"),
		),
	}
}
