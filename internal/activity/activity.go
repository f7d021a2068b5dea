// Package activity detects window drag and resize operations in progress.
package activity

import "github.com/frudas24/cursorclip/internal/winapi"

// Source is the subset of the desktop the monitor reads.
type Source interface {
	winapi.Pointer
	winapi.Focus
}

// Monitor is a best-effort drag detector. False positives only delay re-confinement.
type Monitor struct {
	src Source
}

// New returns a Monitor.
func New(src Source) *Monitor {
	return &Monitor{src: src}
}

// IsDragInProgress reports whether the primary button is held while the cursor sits
// on a title bar or sizing border, or the foreground thread is in a move/size loop.
func (m *Monitor) IsDragInProgress() bool {
	if !m.src.PrimaryButtonDown() {
		return false
	}
	if st, ok := m.src.ThreadState(0); ok && st.MoveSize {
		return true
	}
	x, y, ok := m.src.CursorPos()
	if !ok {
		return false
	}
	under := m.src.WindowAt(x, y)
	if under == 0 {
		return false
	}
	root := m.src.RootOf(under)
	if root == 0 {
		root = under
	}
	switch m.src.HitTest(root, x, y) {
	case winapi.HitCaption, winapi.HitBorder:
		return true
	default:
		return false
	}
}
