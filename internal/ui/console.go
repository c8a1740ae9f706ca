package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/stigoleg/jiggler/internal/jiggler"
)

const (
	msgUserActive   = "User activity detected. Stopping work."
	msgUserInactive = "User inactive. Starting work."
)

// FormatEvent renders e as a single status line.
func FormatEvent(e jiggler.Event) string {
	switch e.Kind {
	case jiggler.EventMouseMoved:
		return fmt.Sprintf("> %d, %d", e.Position.X, e.Position.Y)
	case jiggler.EventKeyPressed:
		return "+"
	case jiggler.EventUserActive:
		return msgUserActive
	case jiggler.EventUserInactive:
		return msgUserInactive
	default:
		return e.Kind.String()
	}
}

// Console prints one line per driver event.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a console observer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Observe(e jiggler.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, FormatEvent(e))
}

// Banner is printed once at startup.
func Banner(w io.Writer, appName string, s fmt.Stringer) {
	fmt.Fprintf(w, "%s started. Press Ctrl+C to stop.\n", appName)
	fmt.Fprintln(w, s.String())
}

var _ jiggler.Observer = (*Console)(nil)
