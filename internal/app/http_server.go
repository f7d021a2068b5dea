package app

import (
	"encoding/json"
	"net/http"

	"github.com/frudas24/cursorclip/internal/hotkeys"
	"github.com/frudas24/cursorclip/internal/keybind"
	"github.com/frudas24/cursorclip/internal/session"
)

// RegisterRoutes wires the status API and event stream onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.Handle("/ws/events", a.events)
	mux.HandleFunc("/favicon.ico", handleFavicon)
}

type stateResponse struct {
	session.Snapshot
	RecenterKeyName string `json:"recenterKeyName"`
	ToggleChord     string `json:"toggleChord"`
	Policy          string `json:"policy"`
	Strict          bool   `json:"strictVisibility"`
	Target          target `json:"target"`
}

type target struct {
	Exe   string `json:"exe"`
	Title string `json:"title"`
}

// handleState returns the current confinement state.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	snap := a.session.Snapshot()
	resp := stateResponse{
		Snapshot:        snap,
		RecenterKeyName: keybind.Name(snap.RecenterKey),
		ToggleChord:     hotkeys.ChordName(),
		Policy:          a.cfg.Policy.String(),
		Strict:          a.cfg.StrictVisibility,
		Target:          target{Exe: a.cfg.TargetExe, Title: a.cfg.TargetTitle},
	}
	writeJSON(w, resp)
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	list, err := a.ListMonitors()
	if err != nil {
		http.Error(w, "failed to list monitors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// allowGet rejects anything but GET and HEAD.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
