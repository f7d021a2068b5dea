package monitor

import (
	"testing"

	"github.com/frudas24/cursorclip/internal/region"
)

var dual = []Monitor{
	{Index: 1, Bounds: region.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}, Primary: true},
	{Index: 2, Bounds: region.Rect{Left: 1920, Top: 0, Right: 4480, Bottom: 1440}},
}

// TestNearest_LargestOverlap verifies a window spanning two monitors picks the larger overlap.
func TestNearest_LargestOverlap(t *testing.T) {
	r := region.Rect{Left: 1800, Top: 100, Right: 2600, Bottom: 700}
	m, ok := Nearest(dual, r)
	if !ok || m.Index != 2 {
		t.Fatalf("expected monitor 2, got ok=%v monitor=%+v", ok, m)
	}
}

// TestNearest_Offscreen verifies an off-screen window maps to the closest monitor.
func TestNearest_Offscreen(t *testing.T) {
	r := region.Rect{Left: -900, Top: 100, Right: -100, Bottom: 700}
	m, ok := Nearest(dual, r)
	if !ok || m.Index != 1 {
		t.Fatalf("expected monitor 1, got ok=%v monitor=%+v", ok, m)
	}
}

// TestNearest_Empty verifies an empty list returns false.
func TestNearest_Empty(t *testing.T) {
	if _, ok := Nearest(nil, region.Rect{Right: 10, Bottom: 10}); ok {
		t.Fatalf("expected not found")
	}
}

// TestPrimary verifies the flagged monitor wins and the first is the fallback.
func TestPrimary(t *testing.T) {
	m, ok := Primary(dual)
	if !ok || m.Index != 1 {
		t.Fatalf("expected primary index 1, got %+v", m)
	}
	m, ok = Primary([]Monitor{{Index: 3}, {Index: 4}})
	if !ok || m.Index != 3 {
		t.Fatalf("expected fallback index 3, got %+v", m)
	}
}

// TestArrange_OrdersAndNumbers verifies enumeration order does not leak into indices.
func TestArrange_OrdersAndNumbers(t *testing.T) {
	in := []Monitor{
		{Bounds: region.Rect{Left: 1920, Top: 0, Right: 4480, Bottom: 1440}},
		{Bounds: region.Rect{Left: -1280, Top: 0, Right: 0, Bottom: 1024}},
		{Bounds: region.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}, Primary: true},
	}
	got := Arrange(in)
	wantLeft := []int{-1280, 0, 1920}
	for i, m := range got {
		if m.Index != i+1 || m.Bounds.Left != wantLeft[i] {
			t.Fatalf("position %d: unexpected %+v", i, m)
		}
		if m.Primary != (i == 1) {
			t.Fatalf("position %d: primary=%v", i, m.Primary)
		}
	}
	if in[0].Index != 0 {
		t.Fatalf("Arrange must not mutate its input")
	}
}

// TestPrimary_FallsBackToOrigin verifies the origin monitor wins when none is flagged.
func TestPrimary_FallsBackToOrigin(t *testing.T) {
	list := []Monitor{
		{Index: 1, Bounds: region.Rect{Left: -1920, Top: 0, Right: 0, Bottom: 1080}},
		{Index: 2, Bounds: region.Rect{Left: 0, Top: 0, Right: 2560, Bottom: 1440}},
	}
	m, ok := Primary(list)
	if !ok || m.Index != 2 {
		t.Fatalf("expected monitor 2, got ok=%v monitor=%+v", ok, m)
	}
	if got := Arrange(list); !got[1].Primary || got[0].Primary {
		t.Fatalf("expected only the origin monitor primary, got %+v", got)
	}
	if _, ok := Primary(nil); ok {
		t.Fatalf("expected no primary for an empty list")
	}
}
