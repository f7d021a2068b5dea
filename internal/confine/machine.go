// Package confine runs the cursor confinement state machine.
package confine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/frudas24/cursorclip/internal/events"
	"github.com/frudas24/cursorclip/internal/geometry"
	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/session"
	"github.com/frudas24/cursorclip/internal/winapi"
)

const (
	// DefaultInterval is the poll period.
	DefaultInterval = 10 * time.Millisecond
	// DefaultRegionTolerance is the per-edge slack under which a new region counts as unchanged.
	DefaultRegionTolerance = 2
)

// Desktop is the subset of the OS the machine touches directly.
type Desktop interface {
	winapi.Clipper
	Foreground() winapi.HWND
	IsVisible(h winapi.HWND) bool
}

// Locator identifies the target window.
type Locator interface {
	IsTargetWindow(h winapi.HWND) bool
}

// Classifier computes confinement regions.
type Classifier interface {
	Classify(h winapi.HWND) (region.Rect, geometry.Kind)
}

// DragDetector reports window drags in progress.
type DragDetector interface {
	IsDragInProgress() bool
}

// Verifier performs the optional strict visibility check.
type Verifier interface {
	Verify(h winapi.HWND) bool
}

// Publisher receives transition events.
type Publisher interface {
	Publish(ev events.Event)
}

// diagnoser is implemented by classifiers that can report raw rectangles.
type diagnoser interface {
	WindowAndMonitor(h winapi.HWND) (region.Rect, region.Rect, bool)
}

// Options configures a Machine.
type Options struct {
	Interval        time.Duration
	RegionTolerance int
	// Verifier enables strict visibility checks when non-nil.
	Verifier Verifier
	// Events receives transitions when non-nil.
	Events Publisher
}

// Machine is the confinement state machine. Tick is driven by a single goroutine;
// Shutdown may be called from any goroutine.
type Machine struct {
	mu         sync.Mutex
	sess       *session.Session
	desk       Desktop
	locator    Locator
	classifier Classifier
	drag       DragDetector
	opts       Options

	lastFG     winapi.HWND
	applied    *region.Rect
	owed       bool
	diagLogged bool
	terminated bool
	stopOnce   sync.Once
}

// New returns a Machine in the Idle state.
func New(sess *session.Session, desk Desktop, locator Locator, classifier Classifier, drag DragDetector, opts Options) *Machine {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.RegionTolerance < 0 {
		opts.RegionTolerance = DefaultRegionTolerance
	}
	sess.SetState(session.Idle)
	return &Machine{
		sess:       sess,
		desk:       desk,
		locator:    locator,
		classifier: classifier,
		drag:       drag,
		opts:       opts,
	}
}

// State returns the current state.
func (m *Machine) State() session.State {
	return m.sess.State()
}

// Run ticks every Interval until ctx is done, then shuts down.
func (m *Machine) Run(ctx context.Context) {
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()
	defer m.Shutdown()

	m.Tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick evaluates one transition and returns the resulting state.
func (m *Machine) Tick() session.State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.terminated {
		return session.Disabled
	}
	if !m.sess.Enabled() {
		m.release("disabled")
		return m.transition(session.Disabled, "disabled")
	}
	if m.drag.IsDragInProgress() {
		m.release("drag")
		m.owed = true
		return m.transition(session.Suspended, "drag")
	}

	fg := m.desk.Foreground()
	isTarget := fg != 0 && m.locator.IsTargetWindow(fg)
	if fg != m.lastFG {
		if isTarget {
			log.Printf("confine: target focused (hwnd=%#x)", uintptr(fg))
			m.owed = true
			m.diagLogged = false
		} else if m.release("focus lost") {
			log.Printf("confine: target not active, cursor released")
		}
		m.lastFG = fg
		m.sess.SetForeground(fg)
	}

	if !isTarget || !m.desk.IsVisible(fg) {
		m.release("not target")
		return m.transition(session.Idle, "not target")
	}
	if m.opts.Verifier != nil && !m.opts.Verifier.Verify(fg) {
		m.release("occluded")
		m.owed = true
		return m.transition(session.Idle, "occluded")
	}

	m.logDiagnostics(fg)
	r, kind := m.classifier.Classify(fg)
	if kind == geometry.Invalid {
		if m.release("geometry") {
			log.Printf("confine: target no longer %s, cursor released", m.wantKind())
		}
		return m.transition(session.Idle, "geometry")
	}

	current, ok := m.current()
	switch {
	case !ok || m.owed || !current.NearlyEqual(r, m.opts.RegionTolerance):
		if !m.apply(r) {
			m.owed = true
			return m.transition(session.Idle, "clip failed")
		}
		m.owed = false
		log.Printf("confine: %s, clipping to %v", kind, r)
	default:
		// Re-assert in case something else released the clip.
		m.desk.Clip(current)
		if debugEnabled() {
			log.Printf("confine: re-applied %v", current)
		}
	}
	return m.transition(session.Confined, kind.String())
}

// Shutdown releases confinement exactly once and stops all further ticks.
func (m *Machine) Shutdown() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.terminated = true
		m.sess.SetEnabled(false)
		m.desk.Unclip()
		m.applied = nil
		m.sess.SetConfined(false)
		m.transition(session.Disabled, "shutdown")
		log.Printf("confine: shutdown, cursor released")
	})
}

// current returns the applied region, unless another actor already cleared it.
func (m *Machine) current() (region.Rect, bool) {
	if m.applied == nil || !m.sess.Confined() {
		return region.Rect{}, false
	}
	return *m.applied, true
}

// apply sets the OS clip to r.
func (m *Machine) apply(r region.Rect) bool {
	if !m.desk.Clip(r) {
		log.Printf("confine: clip to %v failed", r)
		m.applied = nil
		m.sess.SetConfined(false)
		return false
	}
	cp := r
	m.applied = &cp
	m.sess.SetRegion(r)
	return true
}

// release clears the OS clip if one is applied and reports whether it did.
func (m *Machine) release(reason string) bool {
	if m.applied == nil && !m.sess.Confined() {
		return false
	}
	m.desk.Unclip()
	m.applied = nil
	m.sess.SetConfined(false)
	if debugEnabled() {
		log.Printf("confine: released (%s)", reason)
	}
	return true
}

// transition publishes st and emits an event when it changed.
func (m *Machine) transition(st session.State, reason string) session.State {
	prev := m.sess.SetState(st)
	if prev == st {
		return st
	}
	if debugEnabled() {
		log.Printf("confine: %s -> %s (%s)", prev, st, reason)
	}
	if m.opts.Events != nil {
		ev := events.Event{From: prev.String(), To: st.String(), Reason: reason, Enabled: m.sess.Enabled()}
		if r, ok := m.sess.Region(); ok && st == session.Confined {
			ev.Region = &r
		}
		m.opts.Events.Publish(ev)
	}
	return st
}

// logDiagnostics prints raw window and monitor rectangles once per focus gain.
func (m *Machine) logDiagnostics(h winapi.HWND) {
	if m.diagLogged {
		return
	}
	m.diagLogged = true
	d, ok := m.classifier.(diagnoser)
	if !ok {
		return
	}
	wr, mr, ok := d.WindowAndMonitor(h)
	if !ok {
		return
	}
	log.Printf("confine: window %v", wr)
	log.Printf("confine: monitor %v", mr)
}

// wantKind describes what the classifier accepts, for log lines.
func (m *Machine) wantKind() string {
	if p, ok := m.classifier.(interface{ Policy() geometry.Policy }); ok && p.Policy() == geometry.ClientArea {
		return "valid"
	}
	return "fullscreen"
}
