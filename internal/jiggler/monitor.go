package jiggler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stigoleg/jiggler/internal/platform"
	"k8s.io/utils/clock"
)

// Monitor polls the platform for real keyboard and cursor activity and
// records it in State.
type Monitor struct {
	adapter  platform.Adapter
	state    *State
	clock    clock.WithTicker
	suppress bool

	// owned by the monitor goroutine
	baseline platform.Point
	scanKeys bool
}

// NewMonitor creates a monitor. With suppress set, input the driver caused
// is never counted as user activity.
func NewMonitor(adapter platform.Adapter, state *State, clk clock.WithTicker, suppress bool) *Monitor {
	return &Monitor{
		adapter:  adapter,
		state:    state,
		clock:    clk,
		suppress: suppress,
		scanKeys: true,
	}
}

// Reset re-reads the cursor baseline. A failed read leaves it at the origin.
func (m *Monitor) Reset() {
	m.scanKeys = true
	m.baseline = platform.Point{}
	if pos, err := m.adapter.CursorPosition(); err == nil {
		m.baseline = pos
	} else {
		log.Debug().Err(err).Str("component", "monitor").Msg("initial cursor read failed")
	}
}

// Run polls every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	m.Reset()

	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	log.Debug().Str("component", "monitor").Msg("started")
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("component", "monitor").Msg("stopped")
			return nil
		case <-ticker.C():
			m.Poll()
		}
	}
}

// Poll runs a single check and stamps the activity time when the user was active.
func (m *Monitor) Poll() bool {
	if !m.UserIsActive() {
		return false
	}
	m.state.MarkUserActivity(m.clock.Now())
	return true
}

// UserIsActive reports whether a key is held or the cursor moved since the
// last check for a reason other than the driver. Adapter failures count as
// inactive.
func (m *Monitor) UserIsActive() bool {
	if m.suppress && m.state.Simulating() {
		return false
	}

	if m.scanKeys {
		down, err := m.anyKeyDown()
		switch {
		case errors.Is(err, platform.ErrUnsupported):
			log.Debug().Str("component", "monitor").Msg("key state polling unsupported, watching cursor only")
			m.scanKeys = false
		case err != nil:
			log.Debug().Err(err).Str("component", "monitor").Msg("key scan failed")
			return false
		case down:
			return true
		}
	}

	pos, err := m.adapter.CursorPosition()
	if err != nil {
		log.Debug().Err(err).Str("component", "monitor").Msg("cursor read failed")
		return false
	}
	if pos == m.baseline {
		return false
	}
	if m.suppress {
		if marker, ok := m.state.Marker(); ok && marker == pos {
			return false
		}
	}

	m.baseline = pos
	return true
}

func (m *Monitor) anyKeyDown() (bool, error) {
	for code := 0; code < platform.KeyCodeCount; code++ {
		down, err := m.adapter.IsKeyDown(code)
		if err != nil {
			return false, err
		}
		if down {
			return true, nil
		}
	}
	return false, nil
}
