// Package monitor describes display geometry and enumeration.
package monitor

import (
	"sort"

	"github.com/frudas24/cursorclip/internal/region"
)

// Monitor describes a display and its bounds.
type Monitor struct {
	Index   int         `json:"index"`
	Bounds  region.Rect `json:"bounds"`
	Work    region.Rect `json:"work"`
	Primary bool        `json:"primary"`
}

// Primary returns the primary monitor. Without a flagged one, the monitor holding
// the desktop origin wins, then the first one.
func Primary(list []Monitor) (Monitor, bool) {
	i := primaryIndex(list)
	if i < 0 {
		return Monitor{}, false
	}
	return list[i], true
}

// Arrange orders displays left to right, then top to bottom, numbers them from 1,
// and leaves exactly one marked primary.
func Arrange(list []Monitor) []Monitor {
	out := append([]Monitor(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Bounds, out[j].Bounds
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return a.Top < b.Top
	})
	p := primaryIndex(out)
	for i := range out {
		out[i].Index = i + 1
		out[i].Primary = i == p
	}
	return out
}

// primaryIndex returns the position of the primary monitor, or -1 for an empty list.
func primaryIndex(list []Monitor) int {
	for i, m := range list {
		if m.Primary {
			return i
		}
	}
	for i, m := range list {
		if m.Bounds.Contains(0, 0) {
			return i
		}
	}
	if len(list) > 0 {
		return 0
	}
	return -1
}

// Nearest returns the monitor with the largest overlap with r. When r overlaps no
// monitor, the monitor whose center is closest to r's center wins.
func Nearest(list []Monitor, r region.Rect) (Monitor, bool) {
	if len(list) == 0 {
		return Monitor{}, false
	}
	best := -1
	var bestArea int64
	for i, m := range list {
		if a := m.Bounds.Intersect(r).Area(); a > bestArea {
			best, bestArea = i, a
		}
	}
	if best >= 0 {
		return list[best], true
	}

	cx, cy := r.Center()
	var bestDist int64
	for i, m := range list {
		mx, my := m.Bounds.Center()
		dx, dy := int64(mx-cx), int64(my-cy)
		if d := dx*dx + dy*dy; best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return list[best], true
}
