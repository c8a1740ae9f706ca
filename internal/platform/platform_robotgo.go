//go:build !windows && cgo

package platform

import (
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"
)

// robotgoAdapter implements Adapter on macOS and X11 through robotgo.
type robotgoAdapter struct{}

func (a *robotgoAdapter) CursorPosition() (Point, error) {
	x, y := robotgo.Location()
	return Point{X: x, Y: y}, nil
}

func (a *robotgoAdapter) SetCursorPosition(p Point) error {
	robotgo.Move(p.X, p.Y)
	return nil
}

func (a *robotgoAdapter) KeyTap() error {
	if err := robotgo.KeyTap("ctrl"); err != nil {
		return errors.Wrap(err, "robotgo key tap")
	}
	return nil
}

// IsKeyDown is not available: robotgo only offers hook-based key events.
func (a *robotgoAdapter) IsKeyDown(code int) (bool, error) {
	return false, ErrUnsupported
}

// NewAdapter creates the platform-specific input adapter.
func NewAdapter() (Adapter, error) {
	warnDisplayServer()
	return &robotgoAdapter{}, nil
}
