// Package app wires the confinement machine, input dispatch, and status server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/cursorclip/internal/activity"
	"github.com/frudas24/cursorclip/internal/config"
	"github.com/frudas24/cursorclip/internal/confine"
	"github.com/frudas24/cursorclip/internal/events"
	"github.com/frudas24/cursorclip/internal/geometry"
	"github.com/frudas24/cursorclip/internal/hotkeys"
	"github.com/frudas24/cursorclip/internal/locator"
	"github.com/frudas24/cursorclip/internal/monitor"
	"github.com/frudas24/cursorclip/internal/session"
	"github.com/frudas24/cursorclip/internal/visibility"
	"github.com/frudas24/cursorclip/internal/winapi"
)

const shutdownTimeout = 2 * time.Second

// MonitorProvider returns the current list of monitors.
type MonitorProvider func() ([]monitor.Monitor, error)

// App owns the polling loop, the input loop, and the optional status server.
type App struct {
	mu           sync.Mutex
	cfg          config.Config
	session      *session.Session
	sys          winapi.System
	input        winapi.InputSource
	listMonitors MonitorProvider
	monitors     []monitor.Monitor

	hub        *events.Hub
	events     *events.Server
	machine    *confine.Machine
	dispatcher *hotkeys.Dispatcher

	cancel context.CancelFunc
	wg     sync.WaitGroup
	server *http.Server
	addr   string
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, sys winapi.System, input winapi.InputSource, listMonitors MonitorProvider) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if sys == nil {
		return nil, errors.New("desktop system is required")
	}
	if input == nil {
		return nil, errors.New("input source is required")
	}
	if listMonitors == nil {
		listMonitors = monitor.ListMonitors
	}

	id, err := locator.NewIdentity(cfg.TargetExe, cfg.TargetTitle)
	if err != nil {
		return nil, err
	}
	loc := locator.New(id, sys, sys)
	classifier := geometry.New(sys, cfg.Policy, cfg.Tuning.Geometry)

	var verifier *visibility.Verifier
	if cfg.StrictVisibility {
		verifier = visibility.New(sys, classifier, cfg.Tuning.Visibility)
	}

	a := &App{
		cfg:          cfg,
		session:      sess,
		sys:          sys,
		input:        input,
		listMonitors: listMonitors,
		hub:          events.NewHub(),
	}
	a.events = events.NewServer(a.hub)

	opts := confine.Options{
		Interval:        cfg.PollInterval,
		RegionTolerance: cfg.Tuning.RegionTolerance,
		Events:          a.hub,
	}
	// A typed nil pointer must not reach the interface fields.
	if verifier != nil {
		opts.Verifier = verifier
		a.dispatcher = hotkeys.New(sess, sys, loc, verifier, a.hub)
	} else {
		a.dispatcher = hotkeys.New(sess, sys, loc, nil, a.hub)
	}
	a.machine = confine.New(sess, sys, loc, classifier, activity.New(sys), opts)
	return a, nil
}

// Start loads monitors, launches the polling and input loops, and starts the
// status server when configured. Loops stop when ctx ends or Stop is called.
func (a *App) Start(ctx context.Context) error {
	if err := a.RefreshMonitors(); err != nil {
		log.Printf("monitors: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	if a.cfg.StatusAddr != "" {
		if err := a.startStatus(a.cfg.StatusAddr); err != nil {
			cancel()
			return err
		}
	}

	a.wg.Add(3)
	go func() {
		defer a.wg.Done()
		a.machine.Run(ctx)
	}()
	go func() {
		defer a.wg.Done()
		a.dispatcher.Run(ctx)
	}()
	go func() {
		defer a.wg.Done()
		if err := a.input.Run(ctx, a.dispatcher.Hotkeys(), a.dispatcher); err != nil {
			log.Printf("input: %v (toggle and recenter unavailable)", err)
		}
	}()
	return nil
}

// Stop releases confinement first, then stops every loop and the status server.
func (a *App) Stop() error {
	a.machine.Shutdown()

	a.mu.Lock()
	cancel := a.cancel
	server := a.server
	a.server = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if server != nil {
		ctx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		err = server.Shutdown(ctx)
		done()
	}
	a.events.Close()
	a.wg.Wait()
	return err
}

// startStatus listens on addr and serves the status routes in the background.
func (a *App) startStatus(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("status listen %s: %w", addr, err)
	}
	if host, _, err := net.SplitHostPort(ln.Addr().String()); err == nil {
		if ip := net.ParseIP(host); ip != nil && !ip.IsLoopback() {
			log.Printf("status: warning, %s is not a loopback address", addr)
		}
	}
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	a.mu.Lock()
	a.server = server
	a.addr = ln.Addr().String()
	a.mu.Unlock()

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("status: %v", err)
		}
	}()
	log.Printf("status: listening on http://%s", ln.Addr())
	return nil
}

// StatusAddr returns the bound status address, or "" when disabled.
func (a *App) StatusAddr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addr
}

// RefreshMonitors reloads the cached monitor list.
func (a *App) RefreshMonitors() error {
	list, err := a.listMonitors()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.monitors = list
	a.mu.Unlock()
	return nil
}

// ListMonitors returns the cached monitor list.
func (a *App) ListMonitors() ([]monitor.Monitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]monitor.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out, nil
}

// Machine returns the confinement state machine.
func (a *App) Machine() *confine.Machine {
	return a.machine
}

// Events returns the transition hub.
func (a *App) Events() *events.Hub {
	return a.hub
}
