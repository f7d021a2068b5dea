// Package testutil provides scriptable desktop fakes for tests.
package testutil

import (
	"errors"
	"sync"

	"github.com/frudas24/cursorclip/internal/monitor"
	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/winapi"
)

// ErrAccessDenied mimics a process that cannot be opened.
var ErrAccessDenied = errors.New("access denied")

// Call records a single side-effecting desktop call.
type Call struct {
	Name   string
	Region region.Rect
	X      int
	Y      int
}

// Window describes one fake top-level window.
type Window struct {
	PID       uint32
	TID       uint32
	Exe       string
	ExeErr    error
	Title     string
	Rect      region.Rect
	Visible   bool
	Minimized bool
	// Client is the client area in screen coordinates; zero means "same as Rect".
	Client region.Rect
	// ClientFailures makes ClientToScreen fail this many times; negative fails forever.
	ClientFailures int
	// Hit is returned by HitTest for any point on the window.
	Hit winapi.HitArea
}

// FakeSystem implements winapi.System over an in-memory desktop.
// Z-order is the order of Stack, topmost first.
type FakeSystem struct {
	mu       sync.Mutex
	windows  map[winapi.HWND]*Window
	stack    []winapi.HWND
	monitors []monitor.Monitor
	fg       winapi.HWND
	threads  map[uint32]winapi.ThreadState
	cursorX  int
	cursorY  int
	button   bool
	clip     *region.Rect
	calls    []Call
}

// Ensure FakeSystem implements the interface.
var _ winapi.System = (*FakeSystem)(nil)

// NewFakeSystem returns an empty desktop with the given monitors.
func NewFakeSystem(monitors ...monitor.Monitor) *FakeSystem {
	return &FakeSystem{
		windows:  make(map[winapi.HWND]*Window),
		monitors: monitors,
		threads:  make(map[uint32]winapi.ThreadState),
	}
}

// AddWindow places w on top of the Z-order.
func (f *FakeSystem) AddWindow(h winapi.HWND, w Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := w
	f.windows[h] = &cp
	f.stack = append([]winapi.HWND{h}, f.stack...)
}

// UpdateWindow mutates a window in place.
func (f *FakeSystem) UpdateWindow(h winapi.HWND, fn func(w *Window)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.windows[h]; ok {
		fn(w)
	}
}

// CloseWindow removes h, leaving any caller holding a stale handle.
func (f *FakeSystem) CloseWindow(h winapi.HWND) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.windows, h)
	for i, s := range f.stack {
		if s == h {
			f.stack = append(f.stack[:i], f.stack[i+1:]...)
			break
		}
	}
	if f.fg == h {
		f.fg = 0
	}
}

// SetForeground sets the foreground window and records it as active on its thread.
func (f *FakeSystem) SetForeground(h winapi.HWND) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fg = h
	if w, ok := f.windows[h]; ok {
		st := f.threads[w.TID]
		st.Active = h
		f.threads[w.TID] = st
	}
}

// SetThreadState overrides the GUI state of a thread (0 = foreground thread).
func (f *FakeSystem) SetThreadState(tid uint32, st winapi.ThreadState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[tid] = st
}

// SetMouse sets the cursor position and primary button state.
func (f *FakeSystem) SetMouse(x, y int, down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorX, f.cursorY, f.button = x, y, down
}

// Clipped returns the active clip region, if any.
func (f *FakeSystem) Clipped() (region.Rect, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clip == nil {
		return region.Rect{}, false
	}
	return *f.clip, true
}

// Calls returns a copy of the recorded side effects.
func (f *FakeSystem) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CountCalls returns how many recorded calls have the given name.
func (f *FakeSystem) CountCalls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeSystem) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Foreground returns the foreground window.
func (f *FakeSystem) Foreground() winapi.HWND {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fg
}

// IsWindow reports whether h exists.
func (f *FakeSystem) IsWindow(h winapi.HWND) bool {
	_, ok := f.window(h)
	return ok
}

// IsVisible reports the window visibility flag.
func (f *FakeSystem) IsVisible(h winapi.HWND) bool {
	w, ok := f.window(h)
	return ok && w.Visible
}

// IsMinimized reports the window minimized flag.
func (f *FakeSystem) IsMinimized(h winapi.HWND) bool {
	w, ok := f.window(h)
	return ok && w.Minimized
}

// Title returns the window title.
func (f *FakeSystem) Title(h winapi.HWND) string {
	w, ok := f.window(h)
	if !ok {
		return ""
	}
	return w.Title
}

// ProcessID returns the window owner.
func (f *FakeSystem) ProcessID(h winapi.HWND) (uint32, uint32, bool) {
	w, ok := f.window(h)
	if !ok {
		return 0, 0, false
	}
	return w.PID, w.TID, true
}

// ExeName resolves a pid through the registered windows.
func (f *FakeSystem) ExeName(pid uint32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.PID == pid {
			if w.ExeErr != nil {
				return "", w.ExeErr
			}
			return w.Exe, nil
		}
	}
	return "", ErrAccessDenied
}

// ThreadState returns the scripted thread state; tid 0 resolves to the foreground thread.
func (f *FakeSystem) ThreadState(tid uint32) (winapi.ThreadState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.threads[tid]; ok {
		return st, true
	}
	if tid == 0 {
		if w, ok := f.windows[f.fg]; ok {
			st, found := f.threads[w.TID]
			return st, found
		}
	}
	return winapi.ThreadState{}, false
}

// WindowRect returns the outer rectangle.
func (f *FakeSystem) WindowRect(h winapi.HWND) (region.Rect, bool) {
	w, ok := f.window(h)
	if !ok {
		return region.Rect{}, false
	}
	return w.Rect, true
}

// ClientRect returns the client area in client coordinates.
func (f *FakeSystem) ClientRect(h winapi.HWND) (region.Rect, bool) {
	w, ok := f.window(h)
	if !ok {
		return region.Rect{}, false
	}
	c := clientOf(w)
	return region.Rect{Right: c.Width(), Bottom: c.Height()}, true
}

// ClientToScreen offsets a client point by the client origin, failing as scripted.
func (f *FakeSystem) ClientToScreen(h winapi.HWND, x, y int) (int, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: "ClientToScreen", X: x, Y: y})
	w, ok := f.windows[h]
	if !ok {
		return 0, 0, false
	}
	if w.ClientFailures < 0 {
		return 0, 0, false
	}
	if w.ClientFailures > 0 {
		w.ClientFailures--
		return 0, 0, false
	}
	c := clientOf(*w)
	return c.Left + x, c.Top + y, true
}

// MonitorRect returns the bounds of the monitor nearest to the window.
func (f *FakeSystem) MonitorRect(h winapi.HWND) (region.Rect, bool) {
	w, ok := f.window(h)
	if !ok {
		return region.Rect{}, false
	}
	m, ok := monitor.Nearest(f.monitors, w.Rect)
	if !ok {
		return region.Rect{}, false
	}
	return m.Bounds, true
}

// CursorPos returns the fake cursor position.
func (f *FakeSystem) CursorPos() (int, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursorX, f.cursorY, true
}

// SetCursorPos moves the fake cursor and records the call.
func (f *FakeSystem) SetCursorPos(x, y int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorX, f.cursorY = x, y
	f.calls = append(f.calls, Call{Name: "SetCursorPos", X: x, Y: y})
	return true
}

// PrimaryButtonDown returns the scripted button state.
func (f *FakeSystem) PrimaryButtonDown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.button
}

// WindowAt returns the topmost visible, non-minimized window containing the point.
func (f *FakeSystem) WindowAt(x, y int) winapi.HWND {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.stack {
		w := f.windows[h]
		if w.Visible && !w.Minimized && w.Rect.Contains(x, y) {
			return h
		}
	}
	return 0
}

// RootOf returns h itself; fake windows are all top-level.
func (f *FakeSystem) RootOf(h winapi.HWND) winapi.HWND {
	if _, ok := f.window(h); !ok {
		return 0
	}
	return h
}

// HitTest returns the scripted hit area for points on the window.
func (f *FakeSystem) HitTest(h winapi.HWND, x, y int) winapi.HitArea {
	w, ok := f.window(h)
	if !ok || !w.Rect.Contains(x, y) {
		return winapi.HitNowhere
	}
	return w.Hit
}

// Clip records and activates a confinement region.
func (f *FakeSystem) Clip(r region.Rect) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := r
	f.clip = &cp
	f.calls = append(f.calls, Call{Name: "Clip", Region: r})
	return true
}

// Unclip records and clears any confinement.
func (f *FakeSystem) Unclip() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clip = nil
	f.calls = append(f.calls, Call{Name: "Unclip"})
	return true
}

// window returns a copy of the window state.
func (f *FakeSystem) window(h winapi.HWND) (Window, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[h]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// clientOf returns the client area in screen coordinates.
func clientOf(w Window) region.Rect {
	if w.Client == (region.Rect{}) {
		return w.Rect
	}
	return w.Client
}
