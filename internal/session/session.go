// Package session holds the process-wide confinement state shared between the
// polling loop and the input dispatcher.
package session

import (
	"sync/atomic"

	"github.com/frudas24/cursorclip/internal/region"
	"github.com/frudas24/cursorclip/internal/winapi"
)

// State is the confinement state machine position.
type State int32

const (
	// Idle means enabled with the target not in focus.
	Idle State = iota
	// Confined means the target is focused and a region is applied.
	Confined
	// Suspended means a drag is in progress and the region is temporarily cleared.
	Suspended
	// Disabled means clipping has been toggled off or the process is shutting down.
	Disabled
)

// String returns the log name of s.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confined:
		return "confined"
	case Suspended:
		return "suspended"
	case Disabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Enabled     bool         `json:"enabled"`
	Confined    bool         `json:"confined"`
	State       string       `json:"state"`
	Foreground  uintptr      `json:"foreground"`
	Region      *region.Rect `json:"region,omitempty"`
	RecenterKey uint32       `json:"recenterKey"`
}

// Session holds the shared state. Every field is atomic; no lock is ever held
// across an OS call.
type Session struct {
	enabled     atomic.Bool
	confined    atomic.Bool
	recenterKey atomic.Uint32
	state       atomic.Int32
	foreground  atomic.Uintptr
	region      atomic.Pointer[region.Rect]
}

// New returns a session with clipping enabled and nothing applied.
func New(recenterKey uint32) *Session {
	s := &Session{}
	s.enabled.Store(true)
	s.recenterKey.Store(recenterKey)
	s.state.Store(int32(Idle))
	return s
}

// Enabled reports whether clipping is enabled.
func (s *Session) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled sets the enabled flag.
func (s *Session) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// Toggle flips the enabled flag and returns the new value.
func (s *Session) Toggle() bool {
	for {
		old := s.enabled.Load()
		if s.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Confined reports whether a region is currently applied.
func (s *Session) Confined() bool {
	return s.confined.Load()
}

// SetConfined records whether a region is applied. Clearing also drops the region.
func (s *Session) SetConfined(confined bool) {
	s.confined.Store(confined)
	if !confined {
		s.region.Store(nil)
	}
}

// RecenterKey returns the virtual-key code of the recenter binding.
func (s *Session) RecenterKey() uint32 {
	return s.recenterKey.Load()
}

// SetRecenterKey replaces the recenter binding.
func (s *Session) SetRecenterKey(vk uint32) {
	s.recenterKey.Store(vk)
}

// State returns the last state published by the state machine.
func (s *Session) State() State {
	return State(s.state.Load())
}

// SetState publishes the state machine position and returns the previous one.
func (s *Session) SetState(st State) State {
	return State(s.state.Swap(int32(st)))
}

// Foreground returns the last foreground window seen by the poller.
func (s *Session) Foreground() winapi.HWND {
	return winapi.HWND(s.foreground.Load())
}

// SetForeground records the last foreground window.
func (s *Session) SetForeground(h winapi.HWND) {
	s.foreground.Store(uintptr(h))
}

// Region returns the last applied region.
func (s *Session) Region() (region.Rect, bool) {
	r := s.region.Load()
	if r == nil {
		return region.Rect{}, false
	}
	return *r, true
}

// SetRegion records the applied region and marks the session confined.
func (s *Session) SetRegion(r region.Rect) {
	cp := r
	s.region.Store(&cp)
	s.confined.Store(true)
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Enabled:     s.Enabled(),
		Confined:    s.Confined(),
		State:       s.State().String(),
		Foreground:  uintptr(s.Foreground()),
		RecenterKey: s.RecenterKey(),
	}
	if r, ok := s.Region(); ok {
		snap.Region = &r
	}
	return snap
}
