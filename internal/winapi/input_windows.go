//go:build windows

// Package winapi defines the desktop collaborators used by the confinement engine
// and their Win32 implementation.
package winapi

import (
	"context"
	"errors"
	"log"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// WinInput observes input through RegisterHotKey and a WH_KEYBOARD_LL hook.
// The hook always chains to CallNextHookEx, so key presses still reach their window.
type WinInput struct{}

// NewInput returns the Win32 input source.
func NewInput() (InputSource, error) {
	return &WinInput{}, nil
}

// Run pins a dedicated OS thread, registers hotkeys and the keyboard hook on it,
// and pumps its message queue until ctx is done.
func (in *WinInput) Run(ctx context.Context, hotkeys []Hotkey, h InputHandler) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Force creation of the thread message queue before anyone posts to it.
	var msg win.MSG
	win.PeekMessage(&msg, 0, 0, 0, win.PM_NOREMOVE)
	tid := windows.GetCurrentThreadId()

	registered := 0
	for _, hk := range hotkeys {
		ok, _, err := procRegisterHotKey.Call(0, uintptr(hk.ID), uintptr(hk.Modifiers|ModNoRepeat), uintptr(hk.Key))
		if ok == 0 {
			log.Printf("input: hotkey %d registration failed: %v", hk.ID, err)
			continue
		}
		id := hk.ID
		defer func() {
			_, _, _ = procUnregisterHotKey.Call(0, uintptr(id))
		}()
		registered++
	}

	callback := syscall.NewCallback(func(code, wParam, lParam uintptr) uintptr {
		if int32(code) == hcAction && (wParam == win.WM_KEYDOWN || wParam == win.WM_SYSKEYDOWN) {
			kb := (*kbdLLHookStruct)(unsafe.Pointer(lParam))
			h.OnKeyDown(kb.VkCode)
		}
		ret, _, _ := procCallNextHookEx.Call(0, code, wParam, lParam)
		return ret
	})
	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, callback, uintptr(win.GetModuleHandle(nil)), 0)
	if hook == 0 {
		log.Printf("input: keyboard hook registration failed: %v", err)
	} else {
		defer func() {
			_, _, _ = procUnhookWindowsHookEx.Call(hook)
		}()
		registered++
	}

	if registered == 0 {
		return errors.New("no hotkey or keyboard hook could be registered")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_, _, _ = procPostThreadMessageW.Call(uintptr(tid), win.WM_QUIT, 0, 0)
		case <-done:
		}
	}()

	for {
		r := win.GetMessage(&msg, 0, 0, 0)
		if r == 0 || r == -1 {
			return nil
		}
		if msg.Message == win.WM_HOTKEY {
			h.OnHotkey(int(msg.WParam))
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}
