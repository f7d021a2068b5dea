// Package hotkeys dispatches the toggle chord and the recenter keys.
package hotkeys

import "github.com/frudas24/cursorclip/internal/winapi"

// ActionType identifies a queued input action.
type ActionType string

const (
	// ActRecenter moves the cursor to the center of the target window.
	ActRecenter ActionType = "recenter"
)

const (
	// ToggleHotkeyID is the RegisterHotKey id of the toggle chord.
	ToggleHotkeyID = 1
	// ToggleKey is the letter of the toggle chord (Ctrl+Shift+C).
	ToggleKey uint32 = 'C'
	// CancelKey is Escape; it always recenters, independent of the configured key.
	CancelKey uint32 = 0x1B
)

// ToggleChord is the fixed global toggle hotkey.
var ToggleChord = winapi.Hotkey{
	ID:        ToggleHotkeyID,
	Modifiers: winapi.ModControl | winapi.ModShift | winapi.ModNoRepeat,
	Key:       ToggleKey,
}

// ChordName returns the display name of the toggle chord.
func ChordName() string {
	return "Ctrl+Shift+C"
}
