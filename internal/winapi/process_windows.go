//go:build windows

// Package winapi defines the desktop collaborators used by the confinement engine
// and their Win32 implementation.
package winapi

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// ExeName returns the image file name of pid using a limited-information handle,
// which works for UWP and most elevated processes. A single query, no retry.
func (s *WinSystem) ExeName(pid uint32) (string, error) {
	if pid == 0 {
		return "", fmt.Errorf("pid 0 has no image")
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("open process %d: %w", pid, err)
	}
	defer func() {
		_ = windows.CloseHandle(h)
	}()

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", fmt.Errorf("query image name %d: %w", pid, err)
	}
	return filepath.Base(windows.UTF16ToString(buf[:size])), nil
}
