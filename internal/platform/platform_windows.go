//go:build windows

package platform

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const (
	keyEventKeyUp = 0x0002
	vkControl     = 0x11
	keyDownMask   = 0x8000
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procSetCursorPos     = user32.NewProc("SetCursorPos")
	procKeybdEvent       = user32.NewProc("keybd_event")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

type point struct {
	X int32
	Y int32
}

// windowsAdapter implements Adapter with user32 calls
type windowsAdapter struct{}

func (a *windowsAdapter) CursorPosition() (Point, error) {
	var p point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return Point{}, errors.Wrap(err, "GetCursorPos")
	}
	return Point{X: int(p.X), Y: int(p.Y)}, nil
}

func (a *windowsAdapter) SetCursorPosition(p Point) error {
	r, _, err := procSetCursorPos.Call(uintptr(int32(p.X)), uintptr(int32(p.Y)))
	if r == 0 {
		return errors.Wrap(err, "SetCursorPos")
	}
	return nil
}

// KeyTap presses and releases Control. keybd_event has no return value,
// so the only failure mode is the proc failing to load.
func (a *windowsAdapter) KeyTap() error {
	if err := procKeybdEvent.Find(); err != nil {
		return errors.Wrap(err, "keybd_event")
	}
	procKeybdEvent.Call(uintptr(vkControl), 0, 0, 0)
	procKeybdEvent.Call(uintptr(vkControl), 0, uintptr(keyEventKeyUp), 0)
	return nil
}

func (a *windowsAdapter) IsKeyDown(code int) (bool, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return false, errors.Wrap(err, "GetAsyncKeyState")
	}
	r, _, _ := procGetAsyncKeyState.Call(uintptr(code))
	return uint16(r)&keyDownMask != 0, nil
}

// NewAdapter creates the platform-specific input adapter.
func NewAdapter() (Adapter, error) {
	if err := user32.Load(); err != nil {
		return nil, errors.Wrap(err, "load user32.dll")
	}
	return &windowsAdapter{}, nil
}
