package jiggler

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/platform"
	"k8s.io/utils/clock"
)

const (
	// MaxMouseOffset bounds each axis of a simulated move to [-MaxMouseOffset, MaxMouseOffset).
	MaxMouseOffset = 100

	// randomIntervalSpread widens the driver cadence to [interval, interval+spread).
	randomIntervalSpread = 5 * time.Second
)

// Driver decides on every tick whether to simulate input and performs it.
type Driver struct {
	adapter  platform.Adapter
	state    *State
	clock    clock.WithTicker
	settings config.Settings
	rnd      *rand.Rand
	observer Observer

	working atomic.Bool

	// owned by the driver goroutine
	lastKeyPress time.Time

	// consecutive adapter failures
	failures atomic.Int64
}

// NewDriver creates a driver. observer may be nil.
func NewDriver(adapter platform.Adapter, state *State, clk clock.WithTicker, settings config.Settings, rnd *rand.Rand, observer Observer) *Driver {
	if observer == nil {
		observer = Observers()
	}
	return &Driver{
		adapter:  adapter,
		state:    state,
		clock:    clk,
		settings: settings,
		rnd:      rnd,
		observer: observer,
	}
}

// Reset forgets transition and key spacing history.
func (d *Driver) Reset() {
	d.working.Store(false)
	d.lastKeyPress = time.Time{}
}

// Run ticks until ctx is done. The first tick happens one interval after start.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	d.Reset()
	log.Debug().Str("component", "driver").Dur("interval", interval).
		Bool("randomized", d.settings.RandomizeInterval).Msg("started")
	defer log.Debug().Str("component", "driver").Msg("stopped")

	if d.settings.RandomizeInterval {
		return d.runJittered(ctx, interval)
	}

	ticker := d.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			d.Tick()
		}
	}
}

func (d *Driver) runJittered(ctx context.Context, interval time.Duration) error {
	for {
		timer := d.clock.NewTimer(d.NextInterval(interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C():
			d.Tick()
		}
	}
}

// NextInterval returns the delay before the next tick.
func (d *Driver) NextInterval(interval time.Duration) time.Duration {
	if !d.settings.RandomizeInterval {
		return interval
	}
	return interval + time.Duration(d.rnd.Int63n(int64(randomIntervalSpread)))
}

// ShouldSimulate reports whether input should be simulated at now.
func (d *Driver) ShouldSimulate(now time.Time) bool {
	if !d.settings.TrackInactivity {
		return true
	}
	return now.Sub(d.state.LastUserActivity()) >= d.settings.Timeout()
}

// Tick runs one driver cycle.
func (d *Driver) Tick() {
	now := d.clock.Now()

	if !d.ShouldSimulate(now) {
		if d.working.Swap(false) {
			d.emit(Event{Kind: EventUserActive, Time: now})
		}
		return
	}

	if !d.working.Swap(true) {
		if d.settings.TrackInactivity {
			d.emit(Event{Kind: EventUserInactive, Time: now})
		}
	}

	if d.settings.MoveMouse {
		d.moveMouse(now)
	}
	if d.settings.PressKeys {
		d.pressKey(now)
	}
}

// Working reports whether the last tick simulated input.
func (d *Driver) Working() bool {
	return d.working.Load()
}

// Failures returns the number of consecutive failed adapter calls.
func (d *Driver) Failures() int64 {
	return d.failures.Load()
}

func (d *Driver) moveMouse(now time.Time) {
	pos, err := d.adapter.CursorPosition()
	if err != nil {
		d.fail("read cursor", err)
		return
	}

	target := pos.Offset(d.offset(), d.offset())

	d.state.setSimulating(true)
	defer d.state.setSimulating(false)

	// publish the marker first so a monitor that sees target also sees the marker
	prev := d.state.swapMarker(&target)
	if err := d.adapter.SetCursorPosition(target); err != nil {
		d.state.swapMarker(prev)
		d.fail("set cursor", err)
		return
	}

	// the OS clamps moves at screen edges; mark where the cursor really is
	// while the simulating flag still hides it from the monitor
	if landed, err := d.adapter.CursorPosition(); err == nil && landed != target {
		d.state.swapMarker(&landed)
	}

	d.failures.Store(0)
	d.emit(Event{Kind: EventMouseMoved, Position: target, Time: now})
}

func (d *Driver) pressKey(now time.Time) {
	spacing := d.settings.KeyPressSpacing()
	if spacing > 0 && !d.lastKeyPress.IsZero() && now.Sub(d.lastKeyPress) < spacing {
		return
	}

	d.state.setSimulating(true)
	err := d.adapter.KeyTap()
	d.state.setSimulating(false)
	if err != nil {
		d.fail("key tap", err)
		return
	}

	d.failures.Store(0)
	d.lastKeyPress = now
	d.emit(Event{Kind: EventKeyPressed, Time: now})
}

func (d *Driver) offset() int {
	return d.rnd.Intn(2*MaxMouseOffset) - MaxMouseOffset
}

func (d *Driver) fail(op string, err error) {
	n := d.failures.Add(1)
	log.Warn().Err(err).Str("component", "driver").Str("op", op).Int64("consecutive", n).Msg("simulation failed")
}

func (d *Driver) emit(e Event) {
	log.Debug().Str("component", "driver").Stringer("event", e.Kind).Str("position", e.Position.String()).Msg("event")
	d.observer.Observe(e)
}
