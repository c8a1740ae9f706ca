package jiggler

import (
	"sync/atomic"
	"time"

	"github.com/stigoleg/jiggler/internal/platform"
)

// State is shared by the monitor and the driver. The monitor is the only
// writer of the activity timestamp; the driver is the only writer of the
// simulating flag and the self-set marker.
type State struct {
	lastUserActivity atomic.Int64 // unix nanos
	simulating       atomic.Bool
	marker           atomic.Pointer[platform.Point]
}

// NewState returns a state whose last user activity is now.
func NewState(now time.Time) *State {
	s := &State{}
	s.MarkUserActivity(now)
	return s
}

// LastUserActivity returns when the monitor last saw a real user.
func (s *State) LastUserActivity() time.Time {
	return time.Unix(0, s.lastUserActivity.Load())
}

// MarkUserActivity records user activity at t.
func (s *State) MarkUserActivity(t time.Time) {
	s.lastUserActivity.Store(t.UnixNano())
}

// Simulating reports whether the driver is injecting input right now.
func (s *State) Simulating() bool {
	return s.simulating.Load()
}

func (s *State) setSimulating(v bool) {
	s.simulating.Store(v)
}

// Marker returns the last cursor position the driver set, if any.
func (s *State) Marker() (platform.Point, bool) {
	p := s.marker.Load()
	if p == nil {
		return platform.Point{}, false
	}
	return *p, true
}

func (s *State) swapMarker(p *platform.Point) *platform.Point {
	return s.marker.Swap(p)
}
