// Package geometry computes the confinement region for a window and classifies it.
package geometry

import (
	"fmt"
	"time"

	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/winapi"
)

// Kind is the classification of a window's geometry.
type Kind int

const (
	// Invalid means no region should be applied.
	Invalid Kind = iota
	// Fullscreen means the window covers its monitor.
	Fullscreen
	// Windowed means the window is a regular, non-covering window.
	Windowed
)

// String returns the log name of k.
func (k Kind) String() string {
	switch k {
	case Fullscreen:
		return "fullscreen"
	case Windowed:
		return "windowed"
	default:
		return "invalid"
	}
}

// Policy selects how a confinement region is derived.
type Policy int

const (
	// MonitorCover confines only during true fullscreen, to the monitor bounds.
	MonitorCover Policy = iota
	// ClientArea confines to the client area whether fullscreen or windowed.
	ClientArea
)

// String returns the config name of p.
func (p Policy) String() string {
	if p == ClientArea {
		return "client"
	}
	return "fullscreen"
}

// ParsePolicy maps a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fullscreen", "monitor":
		return MonitorCover, nil
	case "client", "windowed":
		return ClientArea, nil
	default:
		return MonitorCover, fmt.Errorf("unknown clip policy %q", s)
	}
}

// Default thresholds.
const (
	// DefaultEdgeTolerance is the per-edge slack, in logical units, for "covers its monitor".
	DefaultEdgeTolerance = 8
	// DefaultAreaCoverage is the window/monitor area ratio treated as borderless fullscreen.
	DefaultAreaCoverage = 0.90
	// DefaultClientSlop is how far a converted client rect may sit outside the window rect.
	DefaultClientSlop = 10
	// DefaultClientRetries bounds client-to-screen conversion attempts.
	DefaultClientRetries = 3
	// DefaultClientRetryDelay is the pause between conversion attempts.
	DefaultClientRetryDelay = 2 * time.Millisecond
)

// Thresholds holds the classification tolerances.
type Thresholds struct {
	EdgeTolerance    int
	AreaCoverage     float64
	ClientSlop       int
	ClientRetries    int
	ClientRetryDelay time.Duration
}

// DefaultThresholds returns the shipped tolerances.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EdgeTolerance:    DefaultEdgeTolerance,
		AreaCoverage:     DefaultAreaCoverage,
		ClientSlop:       DefaultClientSlop,
		ClientRetries:    DefaultClientRetries,
		ClientRetryDelay: DefaultClientRetryDelay,
	}
}

// Source is the subset of the desktop the classifier reads.
type Source interface {
	winapi.Geometry
	IsWindow(h winapi.HWND) bool
	IsVisible(h winapi.HWND) bool
}

// Classifier derives confinement regions. It never caches geometry.
type Classifier struct {
	src    Source
	policy Policy
	th     Thresholds
	sleep  func(time.Duration)
}

// New returns a Classifier using policy and th.
func New(src Source, policy Policy, th Thresholds) *Classifier {
	return &Classifier{src: src, policy: policy, th: th, sleep: time.Sleep}
}

// Policy returns the active policy.
func (c *Classifier) Policy() Policy {
	return c.policy
}

// Classify returns the region to confine to and its kind. Kind is Invalid when
// nothing should be applied; the region is then meaningless.
func (c *Classifier) Classify(h winapi.HWND) (region.Rect, Kind) {
	if h == 0 || !c.src.IsWindow(h) || !c.src.IsVisible(h) {
		return region.Rect{}, Invalid
	}
	wr, ok := c.src.WindowRect(h)
	if !ok || !wr.Valid() {
		return region.Rect{}, Invalid
	}
	if c.policy == ClientArea {
		return c.classifyClient(h, wr)
	}
	return c.classifyMonitor(h, wr)
}

// WindowAndMonitor returns the fresh window and monitor rectangles of h, for diagnostics.
func (c *Classifier) WindowAndMonitor(h winapi.HWND) (region.Rect, region.Rect, bool) {
	wr, ok := c.src.WindowRect(h)
	if !ok {
		return region.Rect{}, region.Rect{}, false
	}
	mr, ok := c.src.MonitorRect(h)
	if !ok {
		return wr, region.Rect{}, false
	}
	return wr, mr, true
}

// classifyMonitor implements the monitor-cover policy.
func (c *Classifier) classifyMonitor(h winapi.HWND, wr region.Rect) (region.Rect, Kind) {
	mr, ok := c.src.MonitorRect(h)
	if !ok || !mr.Valid() {
		return region.Rect{}, Invalid
	}
	if c.coversMonitor(wr, mr) {
		return mr, Fullscreen
	}
	return region.Rect{}, Invalid
}

// classifyClient implements the client-area policy.
func (c *Classifier) classifyClient(h winapi.HWND, wr region.Rect) (region.Rect, Kind) {
	kind := Windowed
	if mr, ok := c.src.MonitorRect(h); ok && mr.Valid() && c.coversMonitor(wr, mr) {
		kind = Fullscreen
	}
	cr, ok := c.ClientScreenRect(h)
	if !ok || !cr.Valid() || !cr.Within(wr, c.th.ClientSlop) {
		return wr, kind
	}
	return cr, kind
}

// coversMonitor reports whether wr is the monitor, within edge tolerance or by area ratio.
func (c *Classifier) coversMonitor(wr, mr region.Rect) bool {
	if wr.EdgesNear(mr, c.th.EdgeTolerance) {
		return true
	}
	ma := mr.Area()
	if ma == 0 {
		return false
	}
	return float64(wr.Area())/float64(ma) >= c.th.AreaCoverage
}

// ClientScreenRect returns the client area of h in screen coordinates. The
// conversion is retried up to ClientRetries times with a short fixed delay.
func (c *Classifier) ClientScreenRect(h winapi.HWND) (region.Rect, bool) {
	cr, ok := c.src.ClientRect(h)
	if !ok {
		return region.Rect{}, false
	}
	attempts := max(c.th.ClientRetries, 1)
	for i := 0; i < attempts; i++ {
		if i > 0 && c.th.ClientRetryDelay > 0 {
			c.sleep(c.th.ClientRetryDelay)
		}
		left, top, ok := c.src.ClientToScreen(h, cr.Left, cr.Top)
		if !ok {
			continue
		}
		right, bottom, ok := c.src.ClientToScreen(h, cr.Right, cr.Bottom)
		if !ok {
			continue
		}
		return region.Rect{Left: left, Top: top, Right: right, Bottom: bottom}, true
	}
	return region.Rect{}, false
}
