package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frudas24/cursorclip/internal/geometry"
	"github.com/google/go-cmp/cmp"
)

// clearEnv blanks every key Load reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_DIR", "TARGET_EXE", "TARGET_TITLE", "POLL_INTERVAL_MS", "CLIP_POLICY", "STRICT_VISIBILITY", "KEYBIND_PATH", "TUNING_PATH", "STATUS_ADDR"} {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies an empty data dir yields the shipped defaults.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Config{
		DataDir:      dir,
		TargetExe:    "Minecraft.Windows.exe",
		TargetTitle:  "Minecraft",
		PollInterval: 10 * time.Millisecond,
		Policy:       geometry.MonitorCover,
		KeybindPath:  filepath.Join(dir, "recenter_key.txt"),
		TuningPath:   filepath.Join(dir, "tuning.yaml"),
		Tuning:       DefaultTuning(),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

// TestLoad_EnvFileAndOverrides verifies .env values apply and real env wins.
func TestLoad_EnvFileAndOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := "# comment\nexport TARGET_EXE=\"game.exe\"\nCLIP_POLICY=Client\nSTRICT_VISIBILITY=yes\nPOLL_INTERVAL_MS=25\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// t.Setenv("X", "") leaves X set, so .env cannot override cleared keys; unset them.
	for _, key := range []string{"TARGET_EXE", "CLIP_POLICY", "STRICT_VISIBILITY"} {
		os.Unsetenv(key)
	}
	t.Setenv("POLL_INTERVAL_MS", "15")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TargetExe != "game.exe" {
		t.Fatalf("expected game.exe, got %q", cfg.TargetExe)
	}
	if cfg.Policy != geometry.ClientArea {
		t.Fatalf("expected client policy, got %v", cfg.Policy)
	}
	if !cfg.StrictVisibility {
		t.Fatalf("expected strict visibility")
	}
	if cfg.PollInterval != 15*time.Millisecond {
		t.Fatalf("expected env to win, got %v", cfg.PollInterval)
	}
}

// TestLoad_InvalidValuesKeepDefaults verifies bad values warn instead of failing.
func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_INTERVAL_MS", "-3")
	t.Setenv("CLIP_POLICY", "sideways")
	t.Setenv("STRICT_VISIBILITY", "maybe")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PollInterval != 10*time.Millisecond || cfg.Policy != geometry.MonitorCover || cfg.StrictVisibility {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

// TestParseEnvLine_Forms verifies the accepted .env line syntax.
func TestParseEnvLine_Forms(t *testing.T) {
	cases := []struct {
		line, key, value string
		ok               bool
	}{
		{"A=1", "A", "1", true},
		{"export B = 'two'", "B", "two", true},
		{"C=x=y", "C", "x=y", true},
		{"# D=1", "", "", false},
		{"noequals", "", "", false},
		{"=v", "", "", false},
	}
	for _, tc := range cases {
		k, v, ok := parseEnvLine(tc.line)
		if k != tc.key || v != tc.value || ok != tc.ok {
			t.Fatalf("parseEnvLine(%q) = %q,%q,%v", tc.line, k, v, ok)
		}
	}
}
