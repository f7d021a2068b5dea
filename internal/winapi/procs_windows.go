//go:build windows

// Package winapi defines the desktop collaborators used by the confinement engine
// and their Win32 implementation.
package winapi

import "golang.org/x/sys/windows"

// user32 entry points not wrapped by lxn/win.
var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procClipCursor           = user32.NewProc("ClipCursor")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetAsyncKeyState     = user32.NewProc("GetAsyncKeyState")
	procSendMessageTimeoutW  = user32.NewProc("SendMessageTimeoutW")
	procRegisterHotKey       = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey     = user32.NewProc("UnregisterHotKey")
	procSetWindowsHookExW    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx       = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx  = user32.NewProc("UnhookWindowsHookEx")
	procPostThreadMessageW   = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL    = 13
	hcAction        = 0
	guiInMoveSize   = 0x00000002
	smtoBlock       = 0x0001
	smtoAbortIfHung = 0x0002
	// hitTestTimeoutMs bounds WM_NCHITTEST against a hung window.
	hitTestTimeoutMs = 25
)

// kbdLLHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}
