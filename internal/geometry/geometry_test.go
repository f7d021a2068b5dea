package geometry

import (
	"testing"
	"time"

	"github.com/frudas24/cursorclip/internal/monitor"
	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/testutil"
	"github.com/frudas24/cursorclip/internal/winapi"
)

var screen = region.Rect{Left: 0, Top: 0, Right: 1000, Bottom: 1000}

func newSystem() *testutil.FakeSystem {
	return testutil.NewFakeSystem(monitor.Monitor{Index: 1, Bounds: screen, Primary: true})
}

func newClassifier(sys *testutil.FakeSystem, p Policy) *Classifier {
	c := New(sys, p, DefaultThresholds())
	c.sleep = func(time.Duration) {}
	return c
}

// TestMonitorCover_ExactFullscreen verifies a window equal to its monitor is fullscreen.
func TestMonitorCover_ExactFullscreen(t *testing.T) {
	sys := newSystem()
	sys.AddWindow(1, testutil.Window{Rect: screen, Visible: true})
	r, kind := newClassifier(sys, MonitorCover).Classify(1)
	if kind != Fullscreen || r != screen {
		t.Fatalf("expected fullscreen %v, got %v %v", screen, kind, r)
	}
}

// TestMonitorCover_EdgeTolerance verifies DPI overshoot within 8 units still counts.
func TestMonitorCover_EdgeTolerance(t *testing.T) {
	sys := newSystem()
	sys.AddWindow(1, testutil.Window{Rect: region.Rect{Left: -8, Top: -8, Right: 1008, Bottom: 1008}, Visible: true})
	r, kind := newClassifier(sys, MonitorCover).Classify(1)
	if kind != Fullscreen || r != screen {
		t.Fatalf("expected fullscreen clipped to monitor, got %v %v", kind, r)
	}
}

// TestMonitorCover_AreaCoverage verifies the 90% area rule on both sides of the threshold.
func TestMonitorCover_AreaCoverage(t *testing.T) {
	cases := []struct {
		name string
		rect region.Rect
		want Kind
	}{
		{"95 percent", region.Rect{Left: 50, Top: 0, Right: 1000, Bottom: 1000}, Fullscreen},
		{"90 percent", region.Rect{Left: 0, Top: 100, Right: 1000, Bottom: 1000}, Fullscreen},
		{"80 percent", region.Rect{Left: 100, Top: 0, Right: 900, Bottom: 1000}, Invalid},
	}
	for _, tc := range cases {
		sys := newSystem()
		sys.AddWindow(1, testutil.Window{Rect: tc.rect, Visible: true})
		_, kind := newClassifier(sys, MonitorCover).Classify(1)
		if kind != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, kind)
		}
	}
}

// TestClassify_InvalidHandles verifies hidden, missing and null windows are invalid.
func TestClassify_InvalidHandles(t *testing.T) {
	sys := newSystem()
	sys.AddWindow(1, testutil.Window{Rect: screen, Visible: false})
	for _, p := range []Policy{MonitorCover, ClientArea} {
		c := newClassifier(sys, p)
		for _, h := range []winapi.HWND{0, 1, 2} {
			if _, kind := c.Classify(h); kind != Invalid {
				t.Fatalf("policy %v handle %d: expected invalid, got %v", p, h, kind)
			}
		}
	}
}

// TestClientArea_UsesClientRect verifies the region is the client area, inside the window.
func TestClientArea_UsesClientRect(t *testing.T) {
	sys := newSystem()
	outer := region.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}
	client := region.Rect{Left: 108, Top: 131, Right: 892, Bottom: 692}
	sys.AddWindow(1, testutil.Window{Rect: outer, Client: client, Visible: true})
	r, kind := newClassifier(sys, ClientArea).Classify(1)
	if kind != Windowed {
		t.Fatalf("expected windowed, got %v", kind)
	}
	if r != client {
		t.Fatalf("expected client %v, got %v", client, r)
	}
	if !r.Within(outer, 0) {
		t.Fatalf("expected region inside outer rect")
	}
}

// TestClientArea_Fullscreen verifies a covering window is reported as fullscreen.
func TestClientArea_Fullscreen(t *testing.T) {
	sys := newSystem()
	sys.AddWindow(1, testutil.Window{Rect: screen, Visible: true})
	r, kind := newClassifier(sys, ClientArea).Classify(1)
	if kind != Fullscreen || r != screen {
		t.Fatalf("expected fullscreen %v, got %v %v", screen, kind, r)
	}
}

// TestClientArea_RetriesThenSucceeds verifies transient conversion failures are retried.
func TestClientArea_RetriesThenSucceeds(t *testing.T) {
	sys := newSystem()
	outer := region.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}
	client := region.Rect{Left: 110, Top: 130, Right: 890, Bottom: 690}
	sys.AddWindow(1, testutil.Window{Rect: outer, Client: client, ClientFailures: 2, Visible: true})
	c := newClassifier(sys, ClientArea)
	sleeps := 0
	c.sleep = func(time.Duration) { sleeps++ }
	r, _ := c.Classify(1)
	if r != client {
		t.Fatalf("expected client %v after retries, got %v", client, r)
	}
	if sleeps != 2 {
		t.Fatalf("expected 2 retry delays, got %d", sleeps)
	}
}

// TestClientArea_FallbackAfterThreeFailures verifies the outer rect is used after three failed conversions.
func TestClientArea_FallbackAfterThreeFailures(t *testing.T) {
	sys := newSystem()
	outer := region.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}
	sys.AddWindow(1, testutil.Window{Rect: outer, Client: region.Rect{Left: 110, Top: 130, Right: 890, Bottom: 690}, ClientFailures: -1, Visible: true})
	r, kind := newClassifier(sys, ClientArea).Classify(1)
	if kind != Windowed || r != outer {
		t.Fatalf("expected outer fallback %v, got %v %v", outer, kind, r)
	}
	if n := sys.CountCalls("ClientToScreen"); n != 3 {
		t.Fatalf("expected 3 conversion attempts, got %d", n)
	}
}

// TestClientArea_InconsistentClientFallsBack verifies a client rect far outside the window is ignored.
func TestClientArea_InconsistentClientFallsBack(t *testing.T) {
	sys := newSystem()
	outer := region.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}
	sys.AddWindow(1, testutil.Window{Rect: outer, Client: region.Rect{Left: 80, Top: 130, Right: 890, Bottom: 690}, Visible: true})
	r, _ := newClassifier(sys, ClientArea).Classify(1)
	if r != outer {
		t.Fatalf("expected outer fallback %v, got %v", outer, r)
	}
}

// TestClassify_Idempotent verifies repeated classification of unchanged geometry is stable.
func TestClassify_Idempotent(t *testing.T) {
	sys := newSystem()
	sys.AddWindow(1, testutil.Window{Rect: region.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}, Visible: true})
	c := newClassifier(sys, ClientArea)
	first, _ := c.Classify(1)
	for i := 0; i < 5; i++ {
		next, _ := c.Classify(1)
		if !next.NearlyEqual(first, 2) {
			t.Fatalf("classification drifted: %v vs %v", next, first)
		}
	}
}

// TestClassify_ReadsFreshGeometry verifies a moved window is reclassified from new geometry.
func TestClassify_ReadsFreshGeometry(t *testing.T) {
	sys := newSystem()
	sys.AddWindow(1, testutil.Window{Rect: region.Rect{Left: 100, Top: 100, Right: 500, Bottom: 400}, Visible: true})
	c := newClassifier(sys, ClientArea)
	before, _ := c.Classify(1)
	moved := region.Rect{Left: 200, Top: 150, Right: 600, Bottom: 450}
	sys.UpdateWindow(1, func(w *testutil.Window) { w.Rect = moved })
	after, _ := c.Classify(1)
	if after == before || after != moved {
		t.Fatalf("expected fresh rect %v, got %v", moved, after)
	}
}

// TestParsePolicy verifies config names.
func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("client"); err != nil || p != ClientArea {
		t.Fatalf("expected client policy, got %v %v", p, err)
	}
	if p, err := ParsePolicy("fullscreen"); err != nil || p != MonitorCover {
		t.Fatalf("expected monitor policy, got %v %v", p, err)
	}
	if _, err := ParsePolicy("bogus"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
