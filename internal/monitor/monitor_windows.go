//go:build windows

// Package monitor describes display geometry and enumeration.
package monitor

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/frudas24/cursorclip/internal/region"
	"github.com/lxn/win"
)

// The enumeration callback is created once; Windows caps the number of
// callbacks a process may create.
var (
	enumMu       sync.Mutex
	enumFound    []Monitor
	enumCallback = syscall.NewCallback(collect)
)

// ListMonitors returns the displays in left-to-right order.
func ListMonitors() ([]Monitor, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumFound = enumFound[:0]
	if !win.EnumDisplayMonitors(0, nil, enumCallback, 0) {
		return nil, fmt.Errorf("enumerate monitors: %w", syscall.GetLastError())
	}
	if len(enumFound) == 0 {
		return nil, errors.New("no monitors detected")
	}
	return Arrange(enumFound), nil
}

// collect is the MONITORENUMPROC; it skips monitors whose info cannot be read.
func collect(h win.HMONITOR, _ win.HDC, _ *win.RECT, _ uintptr) uintptr {
	if m, ok := describe(h); ok {
		enumFound = append(enumFound, m)
	}
	return 1
}

// describe reads the bounds, work area, and primary flag of h.
func describe(h win.HMONITOR) (Monitor, bool) {
	info := win.MONITORINFO{CbSize: uint32(unsafe.Sizeof(win.MONITORINFO{}))}
	if !win.GetMonitorInfo(h, &info) {
		return Monitor{}, false
	}
	return Monitor{
		Bounds:  rectOf(info.RcMonitor),
		Work:    rectOf(info.RcWork),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	}, true
}

func rectOf(r win.RECT) region.Rect {
	return region.Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}
