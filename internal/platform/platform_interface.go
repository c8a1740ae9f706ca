// Package platform exposes the handful of OS input primitives the jiggler needs.
package platform

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned when the current build cannot perform an operation.
var ErrUnsupported = errors.New("unsupported platform")

// KeyCodeCount is the number of virtual key codes scanned for activity.
const KeyCodeCount = 256

// Point is a cursor position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Offset returns p moved by dx, dy.
func (p Point) Offset(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("%d, %d", p.X, p.Y)
}

// Adapter defines the platform-specific input operations.
type Adapter interface {
	// CursorPosition returns the current cursor position.
	CursorPosition() (Point, error)

	// SetCursorPosition warps the cursor to p.
	SetCursorPosition(p Point) error

	// KeyTap injects a key-down followed by a key-up of the Control key.
	KeyTap() error

	// IsKeyDown reports whether the virtual key code is currently held.
	IsKeyDown(code int) (bool, error)
}
