// Package platformtest provides an in-memory platform.Adapter for tests.
package platformtest

import (
	"sync"

	"github.com/stigoleg/jiggler/internal/platform"
)

// Fake is a scriptable platform.Adapter. It is safe for concurrent use.
type Fake struct {
	mu       sync.Mutex
	pos      platform.Point
	keysDown map[int]bool
	moves    []platform.Point
	taps     int

	bounds *platform.Point

	readErr error
	setErr  error
	tapErr  error
	scanErr error
}

// NewFake returns a fake with the cursor at start and no keys held.
func NewFake(start platform.Point) *Fake {
	return &Fake{
		pos:      start,
		keysDown: make(map[int]bool),
	}
}

func (f *Fake) CursorPosition() (platform.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return platform.Point{}, f.readErr
	}
	return f.pos, nil
}

// SetCursorPosition records a simulated move.
func (f *Fake) SetCursorPosition(p platform.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.pos = f.clamp(p)
	f.moves = append(f.moves, f.pos)
	return nil
}

// ClampTo confines the cursor to [0, size.X) x [0, size.Y), as a screen does.
func (f *Fake) ClampTo(size platform.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bounds = &size
}

func (f *Fake) clamp(p platform.Point) platform.Point {
	if f.bounds == nil {
		return p
	}
	p.X = min(max(p.X, 0), f.bounds.X-1)
	p.Y = min(max(p.Y, 0), f.bounds.Y-1)
	return p
}

func (f *Fake) KeyTap() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tapErr != nil {
		return f.tapErr
	}
	f.taps++
	return nil
}

func (f *Fake) IsKeyDown(code int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scanErr != nil {
		return false, f.scanErr
	}
	return f.keysDown[code], nil
}

// UserMove moves the cursor the way a person would, without recording a simulated move.
func (f *Fake) UserMove(p platform.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = f.clamp(p)
}

// HoldKey marks code as held (true) or released (false).
func (f *Fake) HoldKey(code int, down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keysDown[code] = down
}

// FailCursorRead makes CursorPosition return err; nil clears it.
func (f *Fake) FailCursorRead(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

// FailCursorSet makes SetCursorPosition return err; nil clears it.
func (f *Fake) FailCursorSet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

// FailKeyTap makes KeyTap return err; nil clears it.
func (f *Fake) FailKeyTap(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tapErr = err
}

// FailKeyScan makes IsKeyDown return err; nil clears it.
func (f *Fake) FailKeyScan(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanErr = err
}

// Moves returns a copy of every position a simulated move landed on, oldest first.
func (f *Fake) Moves() []platform.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.Point(nil), f.moves...)
}

// Taps returns how many key taps were injected.
func (f *Fake) Taps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.taps
}

var _ platform.Adapter = (*Fake)(nil)
