package hotkeys

import (
	"context"
	"testing"
	"time"

	"github.com/frudas24/cursorclip/internal/events"
	"github.com/frudas24/cursorclip/internal/locator"
	"github.com/frudas24/cursorclip/internal/monitor"
	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/session"
	"github.com/frudas24/cursorclip/internal/testutil"
	"github.com/frudas24/cursorclip/internal/winapi"
	"github.com/google/go-cmp/cmp"
)

const (
	game  winapi.HWND = 10
	other winapi.HWND = 20
	keyE  uint32      = 'E'
)

func newDispatcher(t *testing.T) (*Dispatcher, *testutil.FakeSystem, *session.Session) {
	t.Helper()
	sys := testutil.NewFakeSystem(monitor.Monitor{Index: 1, Bounds: region.Rect{Right: 1920, Bottom: 1080}, Primary: true})
	sys.AddWindow(other, testutil.Window{PID: 2, TID: 2, Exe: "notepad.exe", Rect: region.Rect{Left: 0, Top: 0, Right: 50, Bottom: 50}, Visible: true})
	sys.AddWindow(game, testutil.Window{PID: 1, TID: 1, Exe: "Minecraft.Windows.exe", Rect: region.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}, Visible: true})
	id, err := locator.NewIdentity("Minecraft.Windows.exe", "Minecraft")
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	sess := session.New(keyE)
	return New(sess, sys, locator.New(id, sys, sys), nil, nil), sys, sess
}

// TestRecenter_MovesToWindowCenter verifies the cursor lands at the outer rect center.
func TestRecenter_MovesToWindowCenter(t *testing.T) {
	d, sys, _ := newDispatcher(t)
	sys.SetForeground(game)
	if !d.Recenter() {
		t.Fatalf("expected recenter")
	}
	x, y, _ := sys.CursorPos()
	if x != 500 || y != 400 {
		t.Fatalf("expected (500,400), got (%d,%d)", x, y)
	}
}

// TestRecenter_IgnoresOtherWindows verifies nothing moves when the target is not focused.
func TestRecenter_IgnoresOtherWindows(t *testing.T) {
	d, sys, _ := newDispatcher(t)
	sys.SetForeground(other)
	if d.Recenter() {
		t.Fatalf("unexpected recenter")
	}
	if n := sys.CountCalls("SetCursorPos"); n != 0 {
		t.Fatalf("expected no cursor moves, got %d", n)
	}
}

// TestToggle_OffClearsImmediately verifies toggle-off releases without waiting for a tick.
func TestToggle_OffClearsImmediately(t *testing.T) {
	d, sys, sess := newDispatcher(t)
	hub := events.NewHub()
	d.events = hub
	sys.Clip(region.Rect{Right: 1920, Bottom: 1080})
	sess.SetRegion(region.Rect{Right: 1920, Bottom: 1080})

	d.OnHotkey(ToggleHotkeyID)
	if sess.Enabled() {
		t.Fatalf("expected disabled")
	}
	if _, ok := sys.Clipped(); ok {
		t.Fatalf("expected clip released")
	}
	if sess.Confined() {
		t.Fatalf("expected session not confined")
	}
	ev, ok := hub.Last()
	if !ok || ev.Reason != "toggle" || ev.Enabled {
		t.Fatalf("unexpected event %+v", ev)
	}

	d.OnHotkey(ToggleHotkeyID)
	if !sess.Enabled() {
		t.Fatalf("expected enabled after second toggle")
	}
}

// TestOnHotkey_IgnoresUnknownIDs verifies foreign hotkey ids are ignored.
func TestOnHotkey_IgnoresUnknownIDs(t *testing.T) {
	d, _, sess := newDispatcher(t)
	d.OnHotkey(99)
	if !sess.Enabled() {
		t.Fatalf("unexpected toggle")
	}
}

// TestOnKeyDown_NeverBlocks verifies a flood of key-downs with no consumer returns.
func TestOnKeyDown_NeverBlocks(t *testing.T) {
	d, _, _ := newDispatcher(t)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			d.OnKeyDown(keyE)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnKeyDown blocked")
	}
	if len(d.requests) != requestBuffer {
		t.Fatalf("expected %d queued, got %d", requestBuffer, len(d.requests))
	}
}

// TestOnKeyDown_FiltersKeys verifies only the recenter key and Escape queue requests.
func TestOnKeyDown_FiltersKeys(t *testing.T) {
	d, _, sess := newDispatcher(t)
	d.OnKeyDown('Q')
	if len(d.requests) != 0 {
		t.Fatalf("unexpected request for Q")
	}
	d.OnKeyDown(CancelKey)
	sess.SetRecenterKey('R')
	d.OnKeyDown(keyE)
	d.OnKeyDown('R')
	if len(d.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(d.requests))
	}
}

// TestRun_InputToRecenter verifies key events from the input source reach the cursor.
func TestRun_InputToRecenter(t *testing.T) {
	d, sys, _ := newDispatcher(t)
	sys.SetForeground(game)
	in := testutil.NewFakeInput()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = in.Run(ctx, d.Hotkeys(), d) }()
	go d.Run(ctx)
	<-in.Ready()

	if diff := cmp.Diff([]winapi.Hotkey{ToggleChord}, in.Hotkeys()); diff != "" {
		t.Fatalf("hotkeys mismatch (-want +got):\n%s", diff)
	}

	in.PressKey(CancelKey)
	deadline := time.Now().Add(2 * time.Second)
	for sys.CountCalls("SetCursorPos") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("recenter never happened")
		}
		time.Sleep(5 * time.Millisecond)
	}
	x, y, _ := sys.CursorPos()
	if x != 500 || y != 400 {
		t.Fatalf("expected (500,400), got (%d,%d)", x, y)
	}
}
