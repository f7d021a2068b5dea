// Package visibility verifies that a foreground window is genuinely unoccluded.
//
// A window can stay the OS foreground window while an always-on-top overlay
// covers it. Verify samples the client area with hit tests and requires most
// samples to land on the window itself.
package visibility

import (
	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/winapi"
)

const (
	// DefaultGrid is the number of sample rows and columns.
	DefaultGrid = 5
	// DefaultCoverage is the fraction of samples that must resolve to the window.
	DefaultCoverage = 0.90
)

// Options tunes the sampling.
type Options struct {
	Grid     int
	Coverage float64
}

// DefaultOptions returns the shipped sampling options.
func DefaultOptions() Options {
	return Options{Grid: DefaultGrid, Coverage: DefaultCoverage}
}

// Source is the subset of the desktop the verifier reads.
type Source interface {
	winapi.Windows
	winapi.Focus
	winapi.Pointer
	WindowRect(h winapi.HWND) (region.Rect, bool)
}

// ClientRects converts a client area to screen coordinates.
type ClientRects interface {
	ClientScreenRect(h winapi.HWND) (region.Rect, bool)
}

// Verifier runs the strict visibility checks.
type Verifier struct {
	src     Source
	clients ClientRects
	opts    Options
}

// New returns a Verifier.
func New(src Source, clients ClientRects, opts Options) *Verifier {
	if opts.Grid <= 0 {
		opts.Grid = DefaultGrid
	}
	return &Verifier{src: src, clients: clients, opts: opts}
}

// Verify reports whether h is not minimized, is the active window of its thread,
// is not fighting another window's input capture, and owns its center point and
// at least Coverage of the sampled grid.
func (v *Verifier) Verify(h winapi.HWND) bool {
	if h == 0 || v.src.IsMinimized(h) {
		return false
	}
	_, tid, ok := v.src.ProcessID(h)
	if !ok {
		return false
	}
	st, ok := v.src.ThreadState(tid)
	if !ok || v.src.RootOf(st.Active) != h {
		return false
	}
	if fg, ok := v.src.ThreadState(0); ok && fg.Capture != 0 && v.src.RootOf(fg.Capture) != h {
		return false
	}

	area, ok := v.clients.ClientScreenRect(h)
	if !ok || !area.Valid() {
		if area, ok = v.src.WindowRect(h); !ok || !area.Valid() {
			return false
		}
	}
	cx, cy := area.Center()
	if !v.owns(h, cx, cy) {
		return false
	}
	return v.Coverage(h, area) >= v.opts.Coverage
}

// Coverage returns the fraction of grid samples over area that resolve to h.
func (v *Verifier) Coverage(h winapi.HWND, area region.Rect) float64 {
	n := v.opts.Grid
	hits := 0
	for row := 0; row < n; row++ {
		y := area.Top + (2*row+1)*area.Height()/(2*n)
		for col := 0; col < n; col++ {
			x := area.Left + (2*col+1)*area.Width()/(2*n)
			if v.owns(h, x, y) {
				hits++
			}
		}
	}
	return float64(hits) / float64(n*n)
}

// owns reports whether the top-level window under (x,y) is h.
func (v *Verifier) owns(h winapi.HWND, x, y int) bool {
	at := v.src.WindowAt(x, y)
	return at != 0 && v.src.RootOf(at) == h
}
