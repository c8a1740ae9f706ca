package ui

import (
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/jiggler/internal/util"
)

// tickMsg redraws the running screen once a second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(maxBarWidth, max(msg.Width-4, 10))
		return m, nil

	case EventMsg:
		m.stats.record(msg.Event)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.ToggleHelp, m.keys.Back, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.ToggleHelp) && m.screen != screenTimedInput {
			m.showHelp = true
			return m, nil
		}
	}

	switch m.screen {
	case screenMenu:
		return updateMenu(msg, m)
	case screenTimedInput:
		return updateTimedInput(msg, m)
	case screenRunning:
		return updateRunning(msg, m)
	}
	return m, nil
}

func updateMenu(msg tea.Msg, m Model) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.selected < menuItemCount-1 {
			m.selected++
		}
	case key.Matches(keyMsg, m.keys.Select):
		switch m.selected {
		case menuItemIndefinite:
			if err := m.jiggler.StartIndefinite(); err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			m.screen = screenRunning
			m.duration = 0
			m.errorMessage = ""
			return m, tick()
		case menuItemTimed:
			m.screen = screenTimedInput
			m.input = ""
			m.errorMessage = ""
		case menuItemQuit:
			return quit(m)
		}
	case key.Matches(keyMsg, m.keys.Quit):
		return quit(m)
	}
	return m, nil
}

func updateTimedInput(msg tea.Msg, m Model) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Submit):
		if m.input == "" {
			m.errorMessage = "Please enter a duration"
			return m, nil
		}
		// digits only, so this is the same minute count --duration accepts
		d, err := util.ParseDuration(m.input)
		if err != nil {
			m.errorMessage = "Invalid duration"
			return m, nil
		}
		if d <= 0 {
			m.errorMessage = "Duration must be positive"
			return m, nil
		}
		if err := m.jiggler.StartTimed(d); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.screen = screenRunning
		m.duration = d
		m.errorMessage = ""
		return m, tick()
	case key.Matches(keyMsg, m.keys.Back):
		m.screen = screenMenu
		m.errorMessage = ""
	case key.Matches(keyMsg, m.keys.Backspace):
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
			m.errorMessage = ""
		}
	case keyMsg.String() == "ctrl+c":
		return quit(m)
	default:
		s := keyMsg.String()
		if len(s) == 1 && unicode.IsDigit(rune(s[0])) && len(m.input) < maxInputDigits {
			m.input += s
			m.errorMessage = ""
		}
	}
	return m, nil
}

func updateRunning(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			if err := m.jiggler.Stop(); err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			m.screen = screenMenu
			m.errorMessage = ""
		case key.Matches(msg, m.keys.Quit):
			return quit(m)
		}
	case tickMsg:
		if !m.jiggler.IsRunning() {
			if err := m.jiggler.Err(); err != nil {
				m.errorMessage = err.Error()
			}
			m.screen = screenMenu
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func quit(m Model) (Model, tea.Cmd) {
	if m.jiggler.IsRunning() {
		if err := m.jiggler.Stop(); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
	}
	return m, tea.Quit
}
