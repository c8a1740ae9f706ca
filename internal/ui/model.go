package ui

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/jiggler/internal/jiggler"
	"github.com/stigoleg/jiggler/internal/platform"
)

type screen int

const (
	screenMenu screen = iota
	screenTimedInput
	screenRunning
)

func (s screen) String() string {
	switch s {
	case screenMenu:
		return "Menu"
	case screenTimedInput:
		return "TimedInput"
	case screenRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

const (
	menuItemIndefinite = iota
	menuItemTimed
	menuItemQuit
	menuItemCount
)

const (
	maxInputDigits = 4
	maxLogLines    = 6
	maxBarWidth    = 48
)

// EventMsg carries a driver event into the program.
type EventMsg struct {
	jiggler.Event
}

// Relay forwards driver events to a program once one is attached.
type Relay struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program events are sent to.
func (r *Relay) Attach(p *tea.Program) {
	r.program.Store(p)
}

func (r *Relay) Observe(e jiggler.Event) {
	if p := r.program.Load(); p != nil {
		p.Send(EventMsg{Event: e})
	}
}

type stats struct {
	moves   int
	taps    int
	lastPos platform.Point
	moved   bool
	working bool
	log     []string
}

func (s *stats) record(e jiggler.Event) {
	switch e.Kind {
	case jiggler.EventMouseMoved:
		s.moves++
		s.lastPos = e.Position
		s.moved = true
		s.working = true
	case jiggler.EventKeyPressed:
		s.taps++
		s.working = true
	case jiggler.EventUserInactive:
		s.working = true
	case jiggler.EventUserActive:
		s.working = false
	}

	s.log = append(s.log, e.Time.Format("15:04:05")+" "+FormatEvent(e))
	if len(s.log) > maxLogLines {
		s.log = s.log[len(s.log)-maxLogLines:]
	}
}

// Model is the bubbletea model for the interactive front end.
type Model struct {
	screen       screen
	selected     int
	input        string
	errorMessage string
	showHelp     bool

	jiggler  *jiggler.Jiggler
	version  string
	duration time.Duration
	now      func() time.Time

	stats    stats
	progress progress.Model
	help     help.Model
	keys     KeyMap
}

// NewModel returns a model showing the menu.
func NewModel(j *jiggler.Jiggler, version string) Model {
	return Model{
		screen:   screenMenu,
		jiggler:  j,
		version:  version,
		now:      time.Now,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		help:     help.New(),
		keys:     DefaultKeys(),
	}
}

// NewModelWithDuration returns a model that is already running a timed session.
// A start failure leaves the model on the menu with the error shown.
func NewModelWithDuration(j *jiggler.Jiggler, version string, d time.Duration) Model {
	m := NewModel(j, version)
	if err := j.StartTimed(d); err != nil {
		m.errorMessage = err.Error()
		return m
	}
	m.screen = screenRunning
	m.duration = d
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.screen == screenRunning {
		return tick()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// Jiggler returns the jiggler driven by the model.
func (m Model) Jiggler() *jiggler.Jiggler {
	return m.jiggler
}

// TimeRemaining returns the time left in a timed session.
func (m Model) TimeRemaining() time.Duration {
	if m.screen != screenRunning || m.duration <= 0 {
		return 0
	}
	return m.jiggler.TimeRemaining()
}

// percentDone is the share of a timed session that has elapsed.
func (m Model) percentDone() float64 {
	if m.duration <= 0 {
		return 0
	}
	p := 1 - float64(m.TimeRemaining())/float64(m.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
