package jiggler

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/platform"
	"github.com/stigoleg/jiggler/internal/platform/platformtest"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	fake    *platformtest.Fake
	clock   *testingclock.FakeClock
	state   *State
	events  *recorder
	driver  *Driver
	monitor *Monitor
}

func newFixture(t *testing.T, s config.Settings) *fixture {
	t.Helper()
	f := &fixture{
		fake:   platformtest.NewFake(platform.Point{X: 500, Y: 500}),
		clock:  testingclock.NewFakeClock(epoch),
		events: &recorder{},
	}
	f.state = NewState(epoch)
	f.driver = NewDriver(f.fake, f.state, f.clock, s, rand.New(rand.NewSource(1)), f.events)
	f.monitor = NewMonitor(f.fake, f.state, f.clock, s.SuppressSelfActivity)
	f.monitor.Reset()
	return f
}

func settings(mutate func(*config.Settings)) config.Settings {
	s := config.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	return s
}
