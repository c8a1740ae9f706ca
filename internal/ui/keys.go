package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for every screen.
type KeyMap struct {
	Quit       key.Binding
	ToggleHelp key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	Back      key.Binding
	Submit    key.Binding
	Backspace key.Binding

	Stop key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s", "enter", "esc"),
			key.WithHelp("s", "stop"),
		),
	}
}

type screenKeyMap struct {
	keys   KeyMap
	screen screen
}

// ForScreen returns the bindings that apply on s, for the help bar.
func (k KeyMap) ForScreen(s screen) help.KeyMap {
	return screenKeyMap{keys: k, screen: s}
}

func (s screenKeyMap) ShortHelp() []key.Binding {
	switch s.screen {
	case screenMenu:
		return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Select, s.keys.ToggleHelp, s.keys.Quit}
	case screenTimedInput:
		return []key.Binding{s.keys.Submit, s.keys.Backspace, s.keys.Back}
	case screenRunning:
		return []key.Binding{s.keys.Stop, s.keys.ToggleHelp, s.keys.Quit}
	default:
		return []key.Binding{s.keys.ToggleHelp, s.keys.Quit}
	}
}

func (s screenKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{s.ShortHelp()}
}
