//go:build windows

// Package winapi defines the desktop collaborators used by the confinement engine
// and their Win32 implementation.
package winapi

import (
	"unsafe"

	"github.com/frudas24/cursorclip/internal/region"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// WinSystem implements System using user32 and kernel32.
type WinSystem struct{}

// NewSystem returns the Win32 desktop collaborator.
func NewSystem() (System, error) {
	return &WinSystem{}, nil
}

// Foreground returns the window currently receiving keyboard input.
func (s *WinSystem) Foreground() HWND {
	return HWND(win.GetForegroundWindow())
}

// IsWindow reports whether h still identifies an existing window.
func (s *WinSystem) IsWindow(h HWND) bool {
	if h == 0 {
		return false
	}
	return windows.IsWindow(windows.HWND(h))
}

// IsVisible reports whether h has the WS_VISIBLE style.
func (s *WinSystem) IsVisible(h HWND) bool {
	return h != 0 && win.IsWindowVisible(win.HWND(h))
}

// IsMinimized reports whether h is iconic.
func (s *WinSystem) IsMinimized(h HWND) bool {
	return h != 0 && win.IsIconic(win.HWND(h))
}

// Title returns the window caption, or "" when it cannot be read.
func (s *WinSystem) Title(h HWND) string {
	if h == 0 {
		return ""
	}
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(h))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	got, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if got == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:got])
}

// ProcessID returns the owning process and thread of h.
func (s *WinSystem) ProcessID(h HWND) (uint32, uint32, bool) {
	if h == 0 {
		return 0, 0, false
	}
	var pid uint32
	tid := win.GetWindowThreadProcessId(win.HWND(h), &pid)
	if tid == 0 {
		return 0, 0, false
	}
	return pid, tid, true
}

// ThreadState returns the GUI thread record for tid (0 = foreground thread).
func (s *WinSystem) ThreadState(tid uint32) (ThreadState, bool) {
	var info windows.GUIThreadInfo
	info.Size = uint32(unsafe.Sizeof(info))
	if err := windows.GetGUIThreadInfo(tid, &info); err != nil {
		return ThreadState{}, false
	}
	return ThreadState{
		Active:   HWND(info.Active),
		Capture:  HWND(info.Capture),
		MoveSize: info.Flags&guiInMoveSize != 0,
	}, true
}

// WindowRect returns the outer bounds of h in screen coordinates.
func (s *WinSystem) WindowRect(h HWND) (region.Rect, bool) {
	if h == 0 {
		return region.Rect{}, false
	}
	var r win.RECT
	if !win.GetWindowRect(win.HWND(h), &r) {
		return region.Rect{}, false
	}
	return fromRECT(r), true
}

// ClientRect returns the client area of h in client coordinates.
func (s *WinSystem) ClientRect(h HWND) (region.Rect, bool) {
	if h == 0 {
		return region.Rect{}, false
	}
	var r win.RECT
	if !win.GetClientRect(win.HWND(h), &r) {
		return region.Rect{}, false
	}
	return fromRECT(r), true
}

// ClientToScreen converts a client point of h to screen coordinates.
func (s *WinSystem) ClientToScreen(h HWND, x, y int) (int, int, bool) {
	if h == 0 {
		return 0, 0, false
	}
	p := win.POINT{X: int32(x), Y: int32(y)}
	if !win.ClientToScreen(win.HWND(h), &p) {
		return 0, 0, false
	}
	return int(p.X), int(p.Y), true
}

// MonitorRect returns the bounds of the monitor nearest to h.
func (s *WinSystem) MonitorRect(h HWND) (region.Rect, bool) {
	if h == 0 {
		return region.Rect{}, false
	}
	mon := win.MonitorFromWindow(win.HWND(h), win.MONITOR_DEFAULTTONEAREST)
	if mon == 0 {
		return region.Rect{}, false
	}
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(mon, &info) {
		return region.Rect{}, false
	}
	return fromRECT(info.RcMonitor), true
}

// CursorPos returns the cursor position in screen coordinates.
func (s *WinSystem) CursorPos() (int, int, bool) {
	var p win.POINT
	if !win.GetCursorPos(&p) {
		return 0, 0, false
	}
	return int(p.X), int(p.Y), true
}

// SetCursorPos moves the cursor to a screen coordinate.
func (s *WinSystem) SetCursorPos(x, y int) bool {
	return win.SetCursorPos(int32(x), int32(y))
}

// PrimaryButtonDown reports whether the primary mouse button is physically held,
// honouring swapped buttons.
func (s *WinSystem) PrimaryButtonDown() bool {
	vk := uintptr(win.VK_LBUTTON)
	if win.GetSystemMetrics(win.SM_SWAPBUTTON) != 0 {
		vk = uintptr(win.VK_RBUTTON)
	}
	state, _, _ := procGetAsyncKeyState.Call(vk)
	return uint16(state)&0x8000 != 0
}

// WindowAt returns the window under a screen point.
func (s *WinSystem) WindowAt(x, y int) HWND {
	return HWND(win.WindowFromPoint(win.POINT{X: int32(x), Y: int32(y)}))
}

// RootOf returns the top-level ancestor of h.
func (s *WinSystem) RootOf(h HWND) HWND {
	if h == 0 {
		return 0
	}
	return HWND(win.GetAncestor(win.HWND(h), win.GA_ROOT))
}

// HitTest sends WM_NCHITTEST to h with a short timeout so a hung window cannot stall the caller.
func (s *WinSystem) HitTest(h HWND, x, y int) HitArea {
	if h == 0 {
		return HitNowhere
	}
	lparam := uintptr(uint16(int16(x))) | uintptr(uint16(int16(y)))<<16
	var result uintptr
	ok, _, _ := procSendMessageTimeoutW.Call(
		uintptr(h),
		uintptr(win.WM_NCHITTEST),
		0,
		lparam,
		smtoBlock|smtoAbortIfHung,
		hitTestTimeoutMs,
		uintptr(unsafe.Pointer(&result)),
	)
	if ok == 0 {
		return HitNowhere
	}
	return classifyHit(int32(result))
}

// Clip confines the cursor to r.
func (s *WinSystem) Clip(r region.Rect) bool {
	rc := win.RECT{Left: int32(r.Left), Top: int32(r.Top), Right: int32(r.Right), Bottom: int32(r.Bottom)}
	ret, _, _ := procClipCursor.Call(uintptr(unsafe.Pointer(&rc)))
	return ret != 0
}

// Unclip releases any cursor confinement.
func (s *WinSystem) Unclip() bool {
	ret, _, _ := procClipCursor.Call(0)
	return ret != 0
}

// classifyHit maps an HT* code to a HitArea.
func classifyHit(code int32) HitArea {
	switch {
	case code == win.HTCLIENT:
		return HitClient
	case code == win.HTCAPTION:
		return HitCaption
	case code >= win.HTLEFT && code <= win.HTBOTTOMRIGHT, code == win.HTBORDER:
		return HitBorder
	case code == win.HTNOWHERE:
		return HitNowhere
	default:
		return HitOther
	}
}

// fromRECT converts a Win32 RECT.
func fromRECT(r win.RECT) region.Rect {
	return region.Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}
