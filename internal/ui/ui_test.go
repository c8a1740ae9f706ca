package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggler"
	"github.com/stigoleg/jiggler/internal/platform"
	"github.com/stigoleg/jiggler/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJiggler(t *testing.T, mutate func(*config.Settings)) *jiggler.Jiggler {
	t.Helper()
	s := config.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	j, err := jiggler.New(jiggler.Options{
		Settings:           s,
		Adapter:            platformtest.NewFake(platform.Point{}),
		SimulationInterval: time.Hour,
		MonitorInterval:    time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Stop() })
	return j
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Observe(jiggler.Event{Kind: jiggler.EventUserInactive})
	c.Observe(jiggler.Event{Kind: jiggler.EventMouseMoved, Position: platform.Point{X: 612, Y: -3}})
	c.Observe(jiggler.Event{Kind: jiggler.EventKeyPressed})
	c.Observe(jiggler.Event{Kind: jiggler.EventUserActive})

	want := "User inactive. Starting work.\n" +
		"> 612, -3\n" +
		"+\n" +
		"User activity detected. Stopping work.\n"
	assert.Equal(t, want, buf.String())
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	s := config.DefaultSettings()
	s.MoveMouse = true
	Banner(&buf, "Jiggler", s)

	assert.Equal(t,
		"Jiggler started. Press Ctrl+C to stop.\n"+
			"MoveMouse: true, PressKeys: false, TrackInactivity: false, InactivityTimeout: 5 minutes\n",
		buf.String())
}

func TestNewModel(t *testing.T) {
	m := NewModel(newTestJiggler(t, nil), "1.0.0")
	assert.Equal(t, screenMenu, m.screen)
	assert.Zero(t, m.selected)
	assert.Empty(t, m.input)
	assert.Empty(t, m.errorMessage)
	assert.Nil(t, m.Init())
}

func TestMenuView(t *testing.T) {
	view := View(NewModel(newTestJiggler(t, nil), "1.0.0"))

	for _, opt := range menuItems {
		assert.Contains(t, view, opt)
	}
	assert.Contains(t, view, "> Jiggle indefinitely", "cursor should start on the first option")
	assert.Contains(t, view, "v1.0.0")
}

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		name         string
		selected     int
		msg          tea.Msg
		wantSelected int
		wantScreen   screen
	}{
		{"up at top stays at top", 0, tea.KeyMsg{Type: tea.KeyUp}, 0, screenMenu},
		{"down moves selection", 0, tea.KeyMsg{Type: tea.KeyDown}, 1, screenMenu},
		{"j moves selection", 1, keyRunes("j"), 2, screenMenu},
		{"down at bottom stays at bottom", 2, tea.KeyMsg{Type: tea.KeyDown}, 2, screenMenu},
		{"enter on timed opens input", 1, tea.KeyMsg{Type: tea.KeyEnter}, 1, screenTimedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(newTestJiggler(t, nil), "")
			m.selected = tt.selected
			got, _ := Update(tt.msg, m)
			assert.Equal(t, tt.wantSelected, got.selected)
			assert.Equal(t, tt.wantScreen, got.screen)
		})
	}
}

func TestStartIndefiniteAndStop(t *testing.T) {
	j := newTestJiggler(t, nil)
	m := NewModel(j, "")

	m, cmd := Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	assert.Equal(t, screenRunning, m.screen)
	assert.NotNil(t, cmd)
	assert.True(t, j.IsRunning())
	assert.Contains(t, View(m), "Jiggler Active")
	assert.NotContains(t, View(m), "remaining")

	m, _ = Update(keyRunes("s"), m)
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, j.IsRunning())
}

func TestTimedInput(t *testing.T) {
	tests := []struct {
		name      string
		typed     string
		wantError string
	}{
		{"empty", "", "Please enter a duration"},
		{"zero", "0", "Duration must be positive"},
		{"zeros", "000", "Duration must be positive"},
		{"letters ignored", "abc", "Please enter a duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(newTestJiggler(t, nil), "")
			m.screen = screenTimedInput
			for _, r := range tt.typed {
				m, _ = Update(keyRunes(string(r)), m)
			}
			m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
			assert.Equal(t, screenTimedInput, m.screen)
			assert.Equal(t, tt.wantError, m.errorMessage)
		})
	}
}

func TestTimedInputEditing(t *testing.T) {
	m := NewModel(newTestJiggler(t, nil), "")
	m.screen = screenTimedInput

	for _, r := range "123456" {
		m, _ = Update(keyRunes(string(r)), m)
	}
	assert.Equal(t, "1234", m.input, "input is capped")

	m, _ = Update(tea.KeyMsg{Type: tea.KeyBackspace}, m)
	assert.Equal(t, "123", m.input)
	assert.Contains(t, View(m), "123")

	m, _ = Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.Equal(t, screenMenu, m.screen)
}

func TestTimedRun(t *testing.T) {
	j := newTestJiggler(t, nil)
	m := NewModel(j, "")
	m.screen = screenTimedInput

	m, _ = Update(keyRunes("5"), m)
	m, cmd := Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.Equal(t, screenRunning, m.screen)
	assert.NotNil(t, cmd)
	assert.Equal(t, 5*time.Minute, m.duration)

	remaining := m.TimeRemaining()
	assert.Greater(t, remaining, 4*time.Minute)
	assert.LessOrEqual(t, remaining, 5*time.Minute)
	assert.Contains(t, View(m), "remaining")

	require.NoError(t, j.Stop())
	m, cmd = Update(tickMsg(time.Now()), m)
	assert.Equal(t, screenMenu, m.screen, "a finished run returns to the menu")
	assert.Nil(t, cmd)
}

func TestNewModelWithDuration(t *testing.T) {
	j := newTestJiggler(t, nil)
	m := NewModelWithDuration(j, "", time.Minute)
	assert.Equal(t, screenRunning, m.screen)
	assert.NotNil(t, m.Init())
	assert.True(t, j.IsRunning())

	again := NewModelWithDuration(j, "", time.Minute)
	assert.Equal(t, screenMenu, again.screen)
	assert.Equal(t, jiggler.ErrRunning.Error(), again.errorMessage)
}

func TestEventsUpdateRunningView(t *testing.T) {
	j := newTestJiggler(t, func(s *config.Settings) { s.TrackInactivity = true })
	m := NewModel(j, "")
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.Equal(t, screenRunning, m.screen)
	assert.Contains(t, View(m), "Waiting for 5 minutes of inactivity")

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	events := []jiggler.Event{
		{Kind: jiggler.EventUserInactive, Time: at},
		{Kind: jiggler.EventMouseMoved, Position: platform.Point{X: 10, Y: 20}, Time: at},
		{Kind: jiggler.EventKeyPressed, Time: at},
		{Kind: jiggler.EventMouseMoved, Position: platform.Point{X: 11, Y: 19}, Time: at},
	}
	for _, e := range events {
		m, _ = Update(EventMsg{Event: e}, m)
	}

	assert.Equal(t, 2, m.stats.moves)
	assert.Equal(t, 1, m.stats.taps)
	assert.True(t, m.stats.working)

	view := View(m)
	assert.Contains(t, view, "Working")
	assert.Contains(t, view, "11, 19")
	assert.Contains(t, view, "09:30:00 > 10, 20")
	assert.Contains(t, view, "Last user activity")

	m, _ = Update(EventMsg{Event: jiggler.Event{Kind: jiggler.EventUserActive, Time: at}}, m)
	assert.False(t, m.stats.working)
}

func TestEventLogIsBounded(t *testing.T) {
	m := NewModel(newTestJiggler(t, nil), "")
	for i := 0; i < maxLogLines*3; i++ {
		m, _ = Update(EventMsg{Event: jiggler.Event{Kind: jiggler.EventKeyPressed}}, m)
	}
	assert.Len(t, m.stats.log, maxLogLines)
	assert.Equal(t, maxLogLines*3, m.stats.taps)
}

func TestHelpToggle(t *testing.T) {
	m := NewModel(newTestJiggler(t, nil), "")

	m, _ = Update(keyRunes("?"), m)
	require.True(t, m.showHelp)
	view := View(m)
	assert.Contains(t, view, "--settings")
	assert.Contains(t, view, "InactivityTimeout=5")

	m, _ = Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.False(t, m.showHelp)
	assert.Equal(t, screenMenu, m.screen)
}

func TestQuitStopsJiggler(t *testing.T) {
	j := newTestJiggler(t, nil)
	m := NewModel(j, "")
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.True(t, j.IsRunning())

	_, cmd := Update(keyRunes("q"), m)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, j.IsRunning())
}

func TestErrorDisplay(t *testing.T) {
	m := NewModel(newTestJiggler(t, nil), "")
	m.errorMessage = "test error"
	assert.Contains(t, View(m), "test error")
}

func TestRenderError(t *testing.T) {
	out := RenderError(errors.New("open settings settings.ini: no such file or directory"))
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "open settings settings.ini")
	assert.Contains(t, out, "no such file or directory")
	assert.True(t, strings.Contains(out, "\n"))
}
