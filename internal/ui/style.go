// Package ui provides the console and terminal user interfaces for the jiggler.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C98A00", Dark: "#F2C14E"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title      lipgloss.Style
	Version    lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Working    lipgloss.Style
	Waiting    lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	LogLine    lipgloss.Style
	InputBox   lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	ErrorBox   lipgloss.Style
	Countdown  lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Version: lipgloss.NewStyle().
			Foreground(defaultColors.Subtle),

		Selected: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Unselected: base,

		Working: base.
			Bold(true).
			Foreground(defaultColors.Special),

		Waiting: base.
			Foreground(defaultColors.Warning),

		Label: base.
			Width(22).
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle(),

		LogLine: base.
			Foreground(defaultColors.Subtle),

		InputBox: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Error).
			Padding(0, 1),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()

// RenderError formats a fatal startup error for the terminal.
func RenderError(err error) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(defaultColors.Error).
		Render("Error")

	msg := err.Error()
	// pkg/errors chains read "outer: inner"; put the cause on its own line
	var details string
	if i := strings.LastIndex(msg, ": "); i > 0 {
		msg, details = msg[:i], msg[i+2:]
	}

	body := header + "\n" + msg
	if details != "" {
		body += "\n" + Current.Version.Render(details)
	}
	return Current.ErrorBox.Render(body)
}
