// Package jiggler runs the activity monitor and the input simulation driver.
package jiggler

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/platform"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
)

const (
	// DefaultMonitorInterval is how often the monitor polls for user activity.
	DefaultMonitorInterval = time.Second

	// DefaultSimulationInterval is how often the driver considers simulating input.
	DefaultSimulationInterval = 5 * time.Second

	defaultStopTimeout = 5 * time.Second
)

var (
	// ErrRunning is returned when starting a jiggler that is already running.
	ErrRunning = errors.New("jiggler already running")

	// ErrStopTimeout is returned when the loops do not exit in time.
	ErrStopTimeout = errors.New("jiggler stop timeout exceeded")
)

// SimulationHealth represents the runtime health of input simulation
type SimulationHealth int

const (
	SimulationHealthUnknown SimulationHealth = iota
	SimulationHealthOK
	SimulationHealthFailed
)

func (h SimulationHealth) String() string {
	switch h {
	case SimulationHealthOK:
		return "ok"
	case SimulationHealthFailed:
		return "failing"
	default:
		return "unknown"
	}
}

// Options configures a Jiggler. Zero values get defaults.
type Options struct {
	Settings config.Settings
	Adapter  platform.Adapter
	Clock    clock.WithTicker
	Rand     *rand.Rand
	Observer Observer

	MonitorInterval    time.Duration
	SimulationInterval time.Duration
}

// Jiggler wires the monitor and the driver together and manages their lifetime.
type Jiggler struct {
	opts    Options
	state   *State
	monitor *Monitor
	driver  *Driver

	mu      sync.Mutex
	running bool
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	endTime time.Time
	err     error
}

// New creates a jiggler from opts.
func New(opts Options) (*Jiggler, error) {
	if opts.Adapter == nil {
		return nil, errors.New("jiggler: adapter is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.MonitorInterval <= 0 {
		opts.MonitorInterval = DefaultMonitorInterval
	}
	if opts.SimulationInterval <= 0 {
		opts.SimulationInterval = DefaultSimulationInterval
	}

	state := NewState(opts.Clock.Now())
	return &Jiggler{
		opts:    opts,
		state:   state,
		monitor: NewMonitor(opts.Adapter, state, opts.Clock, opts.Settings.SuppressSelfActivity),
		driver:  NewDriver(opts.Adapter, state, opts.Clock, opts.Settings, opts.Rand, opts.Observer),
	}, nil
}

// Settings returns the settings the jiggler was built with.
func (j *Jiggler) Settings() config.Settings {
	return j.opts.Settings
}

// State returns the shared activity state.
func (j *Jiggler) State() *State {
	return j.state
}

// Working reports whether the driver is currently simulating input.
func (j *Jiggler) Working() bool {
	return j.driver.Working()
}

// Run blocks until ctx is done, running the monitor (when inactivity
// tracking is on) and the driver side by side. Call it directly or through
// the Start methods, not both at once.
func (j *Jiggler) Run(ctx context.Context) error {
	s := j.opts.Settings
	j.state.MarkUserActivity(j.opts.Clock.Now())

	log.Info().Str("component", "jiggler").
		Bool("move_mouse", s.MoveMouse).
		Bool("press_keys", s.PressKeys).
		Bool("track_inactivity", s.TrackInactivity).
		Int("inactivity_timeout_min", s.InactivityTimeout).
		Msg("running")

	g, ctx := errgroup.WithContext(ctx)
	if s.TrackInactivity {
		g.Go(func() error {
			return j.monitor.Run(ctx, j.opts.MonitorInterval)
		})
	}
	g.Go(func() error {
		return j.driver.Run(ctx, j.opts.SimulationInterval)
	})

	err := g.Wait()
	log.Info().Str("component", "jiggler").Msg("stopped")
	return err
}

// StartIndefinite runs the jiggler in the background until Stop.
func (j *Jiggler) StartIndefinite() error {
	return j.start(0)
}

// StartTimed runs the jiggler in the background for d.
func (j *Jiggler) StartTimed(d time.Duration) error {
	if d <= 0 {
		return errors.New("duration must be positive")
	}
	return j.start(d)
}

func (j *Jiggler) start(d time.Duration) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.endTime = time.Time{}
	if d > 0 {
		// registered before returning so a fake clock stepped next sees it
		timer := j.opts.Clock.NewTimer(d)
		j.endTime = j.opts.Clock.Now().Add(d)
		go func() {
			select {
			case <-timer.C():
				cancel()
			case <-ctx.Done():
				timer.Stop()
			}
		}()
	}

	done := make(chan struct{})
	j.running = true
	j.started = true
	j.cancel = cancel
	j.done = done
	j.err = nil

	go func() {
		err := j.Run(ctx)
		cancel()

		j.mu.Lock()
		if j.done == done {
			j.running = false
			j.err = err
		}
		j.mu.Unlock()
		close(done)
	}()

	if d > 0 {
		log.Info().Str("component", "jiggler").Dur("duration", d).Msg("started (timed)")
	} else {
		log.Info().Str("component", "jiggler").Msg("started (indefinite)")
	}
	return nil
}

// IsRunning returns whether the background run is active.
func (j *Jiggler) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

// Done is closed when the current background run ends. It is nil before the
// first Start.
func (j *Jiggler) Done() <-chan struct{} {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done
}

// Err returns the error of the last finished background run.
func (j *Jiggler) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Stop stops the background run.
func (j *Jiggler) Stop() error {
	return j.StopWithTimeout(0)
}

// StopWithTimeout stops the background run and waits up to timeout for
// both loops to exit.
func (j *Jiggler) StopWithTimeout(timeout time.Duration) error {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return nil
	}
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}
	cancel, done := j.cancel, j.done
	j.mu.Unlock()

	cancel()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		log.Warn().Str("component", "jiggler").Dur("timeout", timeout).Msg("stop timeout exceeded")
		return ErrStopTimeout
	}
}

// TimeRemaining returns the remaining duration for a timed run.
func (j *Jiggler) TimeRemaining() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running || j.endTime.IsZero() {
		return 0
	}
	remaining := j.endTime.Sub(j.opts.Clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SimulationHealth reports whether the most recent simulated actions succeeded.
func (j *Jiggler) SimulationHealth() SimulationHealth {
	j.mu.Lock()
	started := j.started
	j.mu.Unlock()

	switch {
	case j.driver.Failures() > 0:
		return SimulationHealthFailed
	case started:
		return SimulationHealthOK
	default:
		return SimulationHealthUnknown
	}
}
