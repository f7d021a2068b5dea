// Package winapi defines the desktop collaborators used by the confinement engine
// and their Win32 implementation.
package winapi

import (
	"context"

	"github.com/frudas24/cursorclip/internal/region"
)

// HWND is an opaque top-level window handle. Zero means "no window".
// A handle may become stale at any time; every query tolerates that.
type HWND uintptr

// HitArea classifies the result of a non-client hit test.
type HitArea int

const (
	// HitNowhere means the point hit nothing or the query failed.
	HitNowhere HitArea = iota
	// HitClient is the drawable interior of a window.
	HitClient
	// HitCaption is the title bar.
	HitCaption
	// HitBorder is any sizing border or corner.
	HitBorder
	// HitOther covers buttons, menus and similar non-client parts.
	HitOther
)

// Windows answers identity and state questions about a window.
type Windows interface {
	IsWindow(h HWND) bool
	IsVisible(h HWND) bool
	IsMinimized(h HWND) bool
	Title(h HWND) string
	// ProcessID returns the owning process and thread of h.
	ProcessID(h HWND) (pid uint32, tid uint32, ok bool)
}

// Geometry reads window and monitor rectangles. Every call reads fresh OS state.
type Geometry interface {
	WindowRect(h HWND) (region.Rect, bool)
	// ClientRect returns the client area in client coordinates (origin 0,0).
	ClientRect(h HWND) (region.Rect, bool)
	ClientToScreen(h HWND, x, y int) (int, int, bool)
	// MonitorRect returns the bounds of the monitor nearest to h.
	MonitorRect(h HWND) (region.Rect, bool)
}

// ThreadState mirrors the parts of the GUI thread record the engine uses.
type ThreadState struct {
	Active   HWND
	Capture  HWND
	MoveSize bool
}

// Focus reports foreground and per-thread input state.
type Focus interface {
	Foreground() HWND
	// ThreadState returns the GUI state of thread tid; tid 0 means the foreground thread.
	ThreadState(tid uint32) (ThreadState, bool)
}

// Pointer reads and moves the system cursor and hit-tests screen points.
type Pointer interface {
	CursorPos() (int, int, bool)
	SetCursorPos(x, y int) bool
	PrimaryButtonDown() bool
	WindowAt(x, y int) HWND
	// RootOf returns the top-level ancestor of h.
	RootOf(h HWND) HWND
	HitTest(h HWND, x, y int) HitArea
}

// Clipper drives the OS cursor confinement primitive.
type Clipper interface {
	Clip(r region.Rect) bool
	Unclip() bool
}

// Processes resolves process executable names.
type Processes interface {
	// ExeName returns the executable file name (no directory) of pid.
	ExeName(pid uint32) (string, error)
}

// System bundles every synchronous collaborator.
type System interface {
	Windows
	Geometry
	Focus
	Pointer
	Clipper
	Processes
}

// Hotkey is a global key chord registered with the OS.
type Hotkey struct {
	ID        int
	Modifiers uint32
	Key       uint32
}

// Modifier flags accepted by Hotkey.Modifiers (Win32 MOD_* values).
const (
	ModAlt      uint32 = 0x0001
	ModControl  uint32 = 0x0002
	ModShift    uint32 = 0x0004
	ModWin      uint32 = 0x0008
	ModNoRepeat uint32 = 0x4000
)

// InputHandler receives observed input. Implementations must return promptly.
type InputHandler interface {
	OnHotkey(id int)
	OnKeyDown(vk uint32)
}

// InputSource delivers hotkey and system-wide key-down events without consuming them.
type InputSource interface {
	// Run registers the hotkeys and key observation and blocks until ctx is done.
	// Partial registration failures are logged; an error is returned only when nothing
	// could be registered.
	Run(ctx context.Context, hotkeys []Hotkey, h InputHandler) error
}
