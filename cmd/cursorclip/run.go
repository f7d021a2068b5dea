package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/frudas24/cursorclip/internal/app"
	"github.com/frudas24/cursorclip/internal/config"
	"github.com/frudas24/cursorclip/internal/confine"
	"github.com/frudas24/cursorclip/internal/hotkeys"
	"github.com/frudas24/cursorclip/internal/keybind"
	"github.com/frudas24/cursorclip/internal/monitor"
	"github.com/frudas24/cursorclip/internal/session"
	"github.com/frudas24/cursorclip/internal/winapi"
)

// run wires the application and blocks until a termination signal.
func run(ctx context.Context, opts rootOptions) error {
	cfg, err := config.Load(opts.dataDir)
	if err != nil {
		return err
	}
	confine.SetDebugLogging(opts.debug)
	if opts.debug {
		log.Printf("debug: enabled")
	}

	key, err := keybind.Load(cfg.KeybindPath)
	if err != nil {
		log.Printf("keybind: %v, using %s", err, keybind.Name(key))
	}

	sys, err := winapi.NewSystem()
	if err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	input, err := winapi.NewInput()
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	sess := session.New(key)
	appInstance, err := app.New(cfg, sess, sys, input, monitor.ListMonitors)
	if err != nil {
		return err
	}
	if err := appInstance.Start(ctx); err != nil {
		return err
	}
	monitors, _ := appInstance.ListMonitors()
	logStartup(cfg, key, len(monitors))

	<-ctx.Done()
	log.Printf("shutdown: releasing cursor")
	return appInstance.Stop()
}

// logStartup prints the startup banner.
func logStartup(cfg config.Config, key uint32, monitors int) {
	log.Printf("cursorclip starting")
	log.Printf("target: exe=%q title=%q", cfg.TargetExe, cfg.TargetTitle)
	log.Printf("policy: %s (strict visibility: %t)", cfg.Policy, cfg.StrictVisibility)
	log.Printf("toggle: %s", hotkeys.ChordName())
	log.Printf("recenter: %s or Escape (%s)", keybind.Name(key), cfg.KeybindPath)
	log.Printf("monitors: %d", monitors)
	log.Printf("poll interval: %s", cfg.PollInterval)
	logEnvStatus(cfg)
}

// logEnvStatus reports whether a .env file was found.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
}
