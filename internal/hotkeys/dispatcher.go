package hotkeys

import (
	"context"
	"log"

	"github.com/frudas24/cursorclip/internal/events"
	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/session"
	"github.com/frudas24/cursorclip/internal/winapi"
)

// requestBuffer bounds pending recenter requests; extra presses are dropped.
const requestBuffer = 4

// Desktop is the subset of the OS the dispatcher touches.
type Desktop interface {
	winapi.Clipper
	Foreground() winapi.HWND
	WindowRect(h winapi.HWND) (region.Rect, bool)
	SetCursorPos(x, y int) bool
}

// Locator identifies the target window.
type Locator interface {
	IsTargetWindow(h winapi.HWND) bool
}

// Verifier performs the optional strict visibility check.
type Verifier interface {
	Verify(h winapi.HWND) bool
}

// Publisher receives toggle events.
type Publisher interface {
	Publish(ev events.Event)
}

// Dispatcher observes hotkeys and key-downs. OnHotkey and OnKeyDown are called
// from the input thread and never block.
type Dispatcher struct {
	sess     *session.Session
	desk     Desktop
	locator  Locator
	verifier Verifier
	events   Publisher
	requests chan ActionType
}

// Ensure Dispatcher implements the input handler.
var _ winapi.InputHandler = (*Dispatcher)(nil)

// New creates a dispatcher. verifier and pub may be nil.
func New(sess *session.Session, desk Desktop, locator Locator, verifier Verifier, pub Publisher) *Dispatcher {
	return &Dispatcher{
		sess:     sess,
		desk:     desk,
		locator:  locator,
		verifier: verifier,
		events:   pub,
		requests: make(chan ActionType, requestBuffer),
	}
}

// Hotkeys returns the global hotkeys to register.
func (d *Dispatcher) Hotkeys() []winapi.Hotkey {
	return []winapi.Hotkey{ToggleChord}
}

// OnHotkey handles a registered hotkey.
func (d *Dispatcher) OnHotkey(id int) {
	switch id {
	case ToggleHotkeyID:
		d.Toggle()
	default:
	}
}

// OnKeyDown queues a recenter when vk is the recenter key or the cancel key.
func (d *Dispatcher) OnKeyDown(vk uint32) {
	if vk != CancelKey && vk != d.sess.RecenterKey() {
		return
	}
	select {
	case d.requests <- ActRecenter:
	default:
	}
}

// Toggle flips confinement and clears it at once when it was turned off.
func (d *Dispatcher) Toggle() bool {
	enabled := d.sess.Toggle()
	if !enabled {
		d.desk.Unclip()
		d.sess.SetConfined(false)
		log.Printf("input: confinement disabled")
	} else {
		log.Printf("input: confinement enabled")
	}
	if d.events != nil {
		from, to := "enabled", "disabled"
		if enabled {
			from, to = to, from
		}
		d.events.Publish(events.Event{From: from, To: to, Reason: "toggle", Enabled: enabled})
	}
	return enabled
}

// Recenter moves the cursor to the center of the focused target window and
// reports whether it did.
func (d *Dispatcher) Recenter() bool {
	fg := d.desk.Foreground()
	if fg == 0 || !d.locator.IsTargetWindow(fg) {
		return false
	}
	if d.verifier != nil && !d.verifier.Verify(fg) {
		return false
	}
	r, ok := d.desk.WindowRect(fg)
	if !ok || !r.Valid() {
		return false
	}
	x, y := r.Center()
	if !d.desk.SetCursorPos(x, y) {
		log.Printf("input: recenter to (%d,%d) failed", x, y)
		return false
	}
	return true
}

// Run executes queued actions until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case act := <-d.requests:
			d.apply(act)
		}
	}
}

// apply executes a single queued action.
func (d *Dispatcher) apply(act ActionType) {
	switch act {
	case ActRecenter:
		d.Recenter()
	default:
	}
}
