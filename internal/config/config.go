// Package config loads environment configuration for cursorclip.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frudas24/cursorclip/internal/geometry"
)

const (
	defaultDataDir        = "./data"
	defaultTargetExe      = "Minecraft.Windows.exe"
	defaultTargetTitle    = "Minecraft"
	defaultPollIntervalMs = 10
	defaultKeybindFile    = "recenter_key.txt"
	defaultTuningFile     = "tuning.yaml"
)

// Config holds runtime configuration values.
type Config struct {
	DataDir          string
	TargetExe        string
	TargetTitle      string
	PollInterval     time.Duration
	Policy           geometry.Policy
	StrictVisibility bool
	KeybindPath      string
	TuningPath       string
	StatusAddr       string
	Tuning           Tuning
}

// Load reads configuration from <dataDir>/.env and environment variables. An
// empty dataDir uses DATA_DIR or ./data. Invalid values log a warning and keep
// their defaults; only an unreadable .env file is an error.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = envString("DATA_DIR", defaultDataDir)
	}
	cfg := Config{
		DataDir:      dataDir,
		TargetExe:    defaultTargetExe,
		TargetTitle:  defaultTargetTitle,
		PollInterval: defaultPollIntervalMs * time.Millisecond,
		Policy:       geometry.MonitorCover,
		Tuning:       DefaultTuning(),
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg.TargetExe = envString("TARGET_EXE", cfg.TargetExe)
	cfg.TargetTitle = envString("TARGET_TITLE", cfg.TargetTitle)
	cfg.KeybindPath = envString("KEYBIND_PATH", filepath.Join(cfg.DataDir, defaultKeybindFile))
	cfg.TuningPath = envString("TUNING_PATH", filepath.Join(cfg.DataDir, defaultTuningFile))
	cfg.StatusAddr = envString("STATUS_ADDR", "")
	cfg.StrictVisibility = envBool("STRICT_VISIBILITY", cfg.StrictVisibility)

	if ms, err := envInt("POLL_INTERVAL_MS", defaultPollIntervalMs); err != nil {
		log.Printf("config: %v, using %d", err, defaultPollIntervalMs)
	} else if ms <= 0 {
		log.Printf("config: POLL_INTERVAL_MS must be > 0, using %d", defaultPollIntervalMs)
	} else {
		cfg.PollInterval = time.Duration(ms) * time.Millisecond
	}

	if raw := envString("CLIP_POLICY", ""); raw != "" {
		p, err := geometry.ParsePolicy(strings.ToLower(raw))
		if err != nil {
			log.Printf("config: %v, using %s", err, cfg.Policy)
		} else {
			cfg.Policy = p
		}
	}

	tuning, err := LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Printf("config: %v, using default thresholds", err)
	} else {
		cfg.Tuning = tuning
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		log.Printf("config: %s must be a boolean, using %t", key, def)
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file. Existing variables win.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return key, value, true
}
