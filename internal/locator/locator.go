// Package locator decides whether a window belongs to the target application.
package locator

import (
	"errors"
	"strings"

	"github.com/frudas24/cursorclip/internal/winapi"
)

// Identity names the target application. It is immutable after construction.
type Identity struct {
	exeName        string
	titleSubstring string
}

// NewIdentity validates and returns a target identity. At least one of exe and title must be set.
func NewIdentity(exe, title string) (Identity, error) {
	exe = strings.TrimSpace(exe)
	if exe == "" && title == "" {
		return Identity{}, errors.New("target identity needs an executable name or a title substring")
	}
	return Identity{exeName: exe, titleSubstring: title}, nil
}

// ExeName returns the executable file name matched case-insensitively.
func (id Identity) ExeName() string {
	return id.exeName
}

// TitleSubstring returns the title fallback.
func (id Identity) TitleSubstring() string {
	return id.titleSubstring
}

// Locator matches windows against an Identity.
type Locator struct {
	id      Identity
	windows winapi.Windows
	procs   winapi.Processes
}

// New returns a Locator for id.
func New(id Identity, windows winapi.Windows, procs winapi.Processes) *Locator {
	return &Locator{id: id, windows: windows, procs: procs}
}

// Identity returns the configured target.
func (l *Locator) Identity() Identity {
	return l.id
}

// IsTargetWindow reports whether h belongs to the target. Null or stale handles
// and unqueryable processes never fail; they fall through to the title check
// and then to false.
func (l *Locator) IsTargetWindow(h winapi.HWND) bool {
	if h == 0 || !l.windows.IsWindow(h) {
		return false
	}
	if l.id.exeName != "" {
		if pid, _, ok := l.windows.ProcessID(h); ok && pid != 0 {
			if name, err := l.procs.ExeName(pid); err == nil && strings.EqualFold(name, l.id.exeName) {
				return true
			}
		}
	}
	if l.id.titleSubstring == "" {
		return false
	}
	return strings.Contains(l.windows.Title(h), l.id.titleSubstring)
}
