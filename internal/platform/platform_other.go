//go:build !windows && !cgo

package platform

// unsupportedAdapter implements Adapter for builds without an input backend
type unsupportedAdapter struct{}

func (a *unsupportedAdapter) CursorPosition() (Point, error) {
	return Point{}, ErrUnsupported
}

func (a *unsupportedAdapter) SetCursorPosition(p Point) error {
	return ErrUnsupported
}

func (a *unsupportedAdapter) KeyTap() error {
	return ErrUnsupported
}

func (a *unsupportedAdapter) IsKeyDown(code int) (bool, error) {
	return false, ErrUnsupported
}

// NewAdapter creates the platform-specific input adapter.
func NewAdapter() (Adapter, error) {
	return &unsupportedAdapter{}, nil
}
