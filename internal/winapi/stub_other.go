//go:build !windows

// Package winapi defines the desktop collaborators used by the confinement engine
// and their Win32 implementation.
package winapi

import (
	"context"
	"errors"

	"github.com/frudas24/cursorclip/internal/region"
)

// ErrUnsupported indicates the Win32 desktop is not available.
var ErrUnsupported = errors.New("winapi is only supported on Windows")

// NoopSystem is a placeholder System for non-Windows builds. Every query fails.
type NoopSystem struct{}

// NewSystem returns a non-functional System on non-Windows platforms.
func NewSystem() (System, error) {
	return &NoopSystem{}, ErrUnsupported
}

// NewInput returns a non-functional InputSource on non-Windows platforms.
func NewInput() (InputSource, error) {
	return &NoopInput{}, ErrUnsupported
}

// Foreground returns no window.
func (n *NoopSystem) Foreground() HWND { return 0 }

// IsWindow returns false.
func (n *NoopSystem) IsWindow(HWND) bool { return false }

// IsVisible returns false.
func (n *NoopSystem) IsVisible(HWND) bool { return false }

// IsMinimized returns false.
func (n *NoopSystem) IsMinimized(HWND) bool { return false }

// Title returns "".
func (n *NoopSystem) Title(HWND) string { return "" }

// ProcessID fails.
func (n *NoopSystem) ProcessID(HWND) (uint32, uint32, bool) { return 0, 0, false }

// ThreadState fails.
func (n *NoopSystem) ThreadState(uint32) (ThreadState, bool) { return ThreadState{}, false }

// WindowRect fails.
func (n *NoopSystem) WindowRect(HWND) (region.Rect, bool) { return region.Rect{}, false }

// ClientRect fails.
func (n *NoopSystem) ClientRect(HWND) (region.Rect, bool) { return region.Rect{}, false }

// ClientToScreen fails.
func (n *NoopSystem) ClientToScreen(HWND, int, int) (int, int, bool) { return 0, 0, false }

// MonitorRect fails.
func (n *NoopSystem) MonitorRect(HWND) (region.Rect, bool) { return region.Rect{}, false }

// CursorPos fails.
func (n *NoopSystem) CursorPos() (int, int, bool) { return 0, 0, false }

// SetCursorPos fails.
func (n *NoopSystem) SetCursorPos(int, int) bool { return false }

// PrimaryButtonDown returns false.
func (n *NoopSystem) PrimaryButtonDown() bool { return false }

// WindowAt returns no window.
func (n *NoopSystem) WindowAt(int, int) HWND { return 0 }

// RootOf returns no window.
func (n *NoopSystem) RootOf(HWND) HWND { return 0 }

// HitTest returns HitNowhere.
func (n *NoopSystem) HitTest(HWND, int, int) HitArea { return HitNowhere }

// Clip fails.
func (n *NoopSystem) Clip(region.Rect) bool { return false }

// Unclip fails.
func (n *NoopSystem) Unclip() bool { return false }

// ExeName returns ErrUnsupported.
func (n *NoopSystem) ExeName(uint32) (string, error) { return "", ErrUnsupported }

// NoopInput is a placeholder InputSource for non-Windows builds.
type NoopInput struct{}

// Run returns ErrUnsupported without registering anything.
func (n *NoopInput) Run(context.Context, []Hotkey, InputHandler) error {
	return ErrUnsupported
}
