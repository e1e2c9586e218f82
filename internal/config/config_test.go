package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PULSE_FEED", "")
	t.Setenv("PULSE_IDLE_HEADER", "")
	t.Setenv("PULSE_ACCENT", "")
	t.Setenv("PULSE_TICK_INTERVAL", "")
	t.Setenv("PULSE_DEMO_INTERVAL", "")

	globalDir := filepath.Join(home, ".config", "pulse")
	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatalf("mkdir global: %v", err)
	}
	if err := os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte("idle_header: Global idle\naccent: \"39\"\n"), 0644); err != nil {
		t.Fatalf("write global config: %v", err)
	}

	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".pulse"), 0755); err != nil {
		t.Fatalf("mkdir repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repo, ".pulse", "config.yaml"), []byte("idle_header: Repo idle\nfeed: events.feed\ntick_interval: 250ms\n"), 0644); err != nil {
		t.Fatalf("write repo config: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(repo); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.IdleHeader != "Repo idle" {
		t.Errorf("IdleHeader = %q, repo config should win", cfg.IdleHeader)
	}
	if cfg.Accent != "39" {
		t.Errorf("Accent = %q, global value should survive", cfg.Accent)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, want 250ms", cfg.TickInterval)
	}
	// Relative feed paths resolve against the repo root at load time.
	if !filepath.IsAbs(cfg.Feed) || filepath.Base(cfg.Feed) != "events.feed" {
		t.Errorf("Feed = %q, want absolute path ending in events.feed", cfg.Feed)
	}

	t.Setenv("PULSE_IDLE_HEADER", "Env idle")
	cfgEnv, err := Load()
	if err != nil {
		t.Fatalf("Load env error: %v", err)
	}
	// Repo config still outranks env.
	if cfgEnv.IdleHeader != "Repo idle" {
		t.Errorf("IdleHeader = %q, repo config should outrank env", cfgEnv.IdleHeader)
	}
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PULSE_TICK_INTERVAL", "")
	t.Setenv("PULSE_DEMO_INTERVAL", "")

	empty := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(empty); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.TickInterval != DefaultTickInterval {
		t.Errorf("TickInterval = %v, want default", cfg.TickInterval)
	}
	if cfg.DemoInterval != DefaultDemoInterval {
		t.Errorf("DemoInterval = %v, want default", cfg.DemoInterval)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("idle_header: Explicit\nfeed: events.feed\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.IdleHeader != "Explicit" {
		t.Errorf("IdleHeader = %q, want value from explicit file", cfg.IdleHeader)
	}
	if cfg.TickInterval != DefaultTickInterval {
		t.Errorf("TickInterval = %v, want default applied", cfg.TickInterval)
	}
	if cfg.Feed != filepath.Join(dir, "events.feed") {
		t.Errorf("Feed = %q, want resolved against the config dir", cfg.Feed)
	}

	// An explicit path that does not exist is an error, unlike the search path.
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile accepted a missing file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		base string
		want string
	}{
		{"empty", "", "/base", ""},
		{"absolute unchanged", "/abs/feed", "/base", "/abs/feed"},
		{"relative joined", "events.feed", "/base", "/base/events.feed"},
		{"tilde expanded", "~/feeds/a", "", filepath.Join(home, "feeds", "a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path, tt.base); got != tt.want {
				t.Errorf("ExpandPath(%q, %q) = %q, want %q", tt.path, tt.base, got, tt.want)
			}
		})
	}
}
