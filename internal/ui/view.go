package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggler"
)

var menuItems = [menuItemCount]string{
	menuItemIndefinite: "Jiggle indefinitely",
	menuItemTimed:      "Jiggle for X minutes",
	menuItemQuit:       "Quit",
}

// View renders the current state of the model to a string.
func View(m Model) string {
	var body string
	switch {
	case m.showHelp:
		body = helpView()
	case m.screen == screenMenu:
		body = menuView(m)
	case m.screen == screenTimedInput:
		body = timedInputView(m)
	case m.screen == screenRunning:
		body = runningView(m)
	}

	if m.errorMessage != "" {
		body += "\n\n" + Current.Error.Render(m.errorMessage)
	}
	if !m.showHelp {
		body += "\n\n" + Current.Help.Render(m.help.View(m.keys.ForScreen(m.screen)))
	}
	return body
}

func header(m Model, title string) string {
	h := Current.Title.Render(title)
	if m.version != "" {
		h += Current.Version.Render("v" + m.version)
	}
	return h + "\n\n"
}

func menuView(m Model) string {
	var b strings.Builder
	b.WriteString(header(m, "Jiggler"))
	b.WriteString(Current.Unselected.Render("Select an option:"))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.selected {
			b.WriteString(Current.Selected.Render("> " + item))
		} else {
			b.WriteString(Current.Unselected.Render("  " + item))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Current.Help.Render(m.jiggler.Settings().String()))
	return b.String()
}

func timedInputView(m Model) string {
	var b strings.Builder
	b.WriteString(header(m, "Enter Duration"))
	b.WriteString(Current.Unselected.Render("Enter duration in minutes:"))
	b.WriteString("\n")

	input := m.input
	if input == "" {
		input = " "
	}
	b.WriteString(Current.InputBox.Render(input))
	return b.String()
}

func runningView(m Model) string {
	var b strings.Builder
	b.WriteString(header(m, "Jiggler Active"))

	s := m.jiggler.Settings()
	switch {
	case m.stats.working || !s.TrackInactivity:
		b.WriteString(Current.Working.Render("Working"))
	default:
		b.WriteString(Current.Waiting.Render(fmt.Sprintf("Waiting for %d minutes of inactivity", s.InactivityTimeout)))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(Current.Label.Render(label) + Current.Value.Render(value) + "\n")
	}
	row("Settings", s.String())
	if s.TrackInactivity {
		idle := m.now().Sub(m.jiggler.State().LastUserActivity()).Truncate(time.Second)
		row("Last user activity", idle.String()+" ago")
	}
	row("Mouse moves", fmt.Sprint(m.stats.moves))
	row("Key presses", fmt.Sprint(m.stats.taps))
	if m.stats.moved {
		row("Last position", m.stats.lastPos.String())
	}
	if m.jiggler.SimulationHealth() == jiggler.SimulationHealthFailed {
		b.WriteString(Current.Error.Render("Input simulation is failing, see the log file") + "\n")
	}

	if m.duration > 0 {
		remaining := m.TimeRemaining()
		countdown := fmt.Sprintf("%d:%02d remaining", int(remaining.Minutes()), int(remaining.Seconds())%60)
		b.WriteString("\n" + Current.Countdown.Render(countdown) + "\n")
		b.WriteString(" " + m.progress.ViewAs(m.percentDone()) + "\n")
	}

	if len(m.stats.log) > 0 {
		b.WriteString("\n")
		for _, line := range m.stats.log {
			b.WriteString(Current.LogLine.Render(line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func helpView() string {
	var b strings.Builder
	b.WriteString(Current.Title.Render("Jiggler Help"))
	b.WriteString("\n\n")
	b.WriteString(Current.Help.Render(fmt.Sprintf("Usage:\n  %s [flags]\n\nFlags:\n%s", config.AppName, config.NewFlagSet().FlagUsages())))
	b.WriteString("\n")
	b.WriteString(Current.Help.Render(`Settings file (key=value):
  MoveMouse=true
  PressKeys=false
  TrackInactivity=true
  InactivityTimeout=5

Press '?' or 'esc' to close help`))
	return b.String()
}
