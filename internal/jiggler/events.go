package jiggler

import (
	"time"

	"github.com/stigoleg/jiggler/internal/platform"
)

// EventKind identifies what the driver did.
type EventKind int

const (
	// EventMouseMoved is a simulated cursor move; Position holds the target.
	EventMouseMoved EventKind = iota
	// EventKeyPressed is a simulated key tap.
	EventKeyPressed
	// EventUserActive means tracking saw the user and simulation paused.
	EventUserActive
	// EventUserInactive means the user has been idle long enough and simulation started.
	EventUserInactive
)

func (k EventKind) String() string {
	switch k {
	case EventMouseMoved:
		return "MouseMoved"
	case EventKeyPressed:
		return "KeyPressed"
	case EventUserActive:
		return "UserActive"
	case EventUserInactive:
		return "UserInactive"
	default:
		return "Unknown"
	}
}

// Event is emitted by the driver for every action and state transition.
type Event struct {
	Kind     EventKind
	Position platform.Point
	Time     time.Time
}

// Observer receives driver events. Observe is called from the driver goroutine.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type observers []Observer

func (o observers) Observe(e Event) {
	for _, obs := range o {
		obs.Observe(e)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	var out observers
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
