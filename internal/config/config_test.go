package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test asset defaults
	if cfg.Asset.Scene != -1 {
		t.Errorf("expected scene -1, got %d", cfg.Asset.Scene)
	}

	// Test playback defaults
	if cfg.Playback.Speed != 1 {
		t.Errorf("expected speed 1, got %f", cfg.Playback.Speed)
	}
	if !cfg.Playback.Loop {
		t.Error("expected loop to be true by default")
	}
	if cfg.Playback.FrameRate != 60 {
		t.Errorf("expected frame rate 60, got %d", cfg.Playback.FrameRate)
	}

	// Test server defaults
	if cfg.Server.Enabled {
		t.Error("expected server to be disabled by default")
	}
	if cfg.Server.Addr != "127.0.0.1:8642" {
		t.Errorf("expected addr 127.0.0.1:8642, got %s", cfg.Server.Addr)
	}
	if cfg.Server.PushInterval != 50*time.Millisecond {
		t.Errorf("expected push interval 50ms, got %v", cfg.Server.PushInterval)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
asset:
  path: "models/fox.glb"
  scene: 1

playback:
  clip: "Walk"
  speed: 0.5
  loop: false
  frame_rate: 30
  frames: 120

server:
  enabled: true
  addr: ":9000"
  push_interval: 100ms

logging:
  level: "debug"
  log_file: "anim.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Asset.Path != "models/fox.glb" || cfg.Asset.Scene != 1 {
		t.Errorf("unexpected asset config %+v", cfg.Asset)
	}
	if cfg.Playback.Clip != "Walk" {
		t.Errorf("expected clip Walk, got %s", cfg.Playback.Clip)
	}
	if cfg.Playback.Speed != 0.5 {
		t.Errorf("expected speed 0.5, got %f", cfg.Playback.Speed)
	}
	if cfg.Playback.Loop {
		t.Error("expected loop to be false")
	}
	if cfg.Playback.FrameRate != 30 || cfg.Playback.Frames != 120 {
		t.Errorf("unexpected frame settings %+v", cfg.Playback)
	}
	if !cfg.Server.Enabled || cfg.Server.Addr != ":9000" {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Server.PushInterval != 100*time.Millisecond {
		t.Errorf("expected push interval 100ms, got %v", cfg.Server.PushInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "anim.log" {
		t.Errorf("expected log file 'anim.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
playback:
  speed: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("playback:\n  speed: -2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(configPath); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for negative speed, got %v", err)
	}

	if err := os.WriteFile(configPath, []byte("playback:\n  clip: Run\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Playback.Clip != "Run" || cfg.Playback.Speed != 1 {
		t.Errorf("expected file clip over defaults, got %+v", cfg.Playback)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"scene below -1", func(c *Config) { c.Asset.Scene = -2 }},
		{"negative speed", func(c *Config) { c.Playback.Speed = -0.5 }},
		{"zero frame rate", func(c *Config) { c.Playback.FrameRate = 0 }},
		{"negative frames", func(c *Config) { c.Playback.Frames = -1 }},
		{"server without addr", func(c *Config) { c.Server.Enabled = true; c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestFrameStep(t *testing.T) {
	p := PlaybackConfig{FrameRate: 50}
	if got := p.FrameStep(); got != 20*time.Millisecond {
		t.Errorf("expected 20ms, got %v", got)
	}
	p.FrameRate = 0
	if got := p.FrameStep(); got != 0 {
		t.Errorf("expected 0 for zero frame rate, got %v", got)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("playback:\n  speed: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Playback.Clip = "Survey"
	cfg.Server.PushInterval = time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Playback.Clip != "Survey" || loaded.Server.PushInterval != time.Second {
		t.Errorf("saved config did not load back: %+v", loaded)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Dir(path) != ConfigDir() {
		t.Errorf("Save() wrote %s, want it under %s", path, ConfigDir())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "asset and scene flags",
			setup: func() {
				*flagAsset = "rig.yaml"
				*flagScene = 2
			},
			verify: func(cfg *Config) {
				if cfg.Asset.Path != "rig.yaml" || cfg.Asset.Scene != 2 {
					t.Errorf("unexpected asset config %+v", cfg.Asset)
				}
			},
			teardown: func() {
				*flagAsset = ""
				*flagScene = -1
			},
		},
		{
			name: "playback flags",
			setup: func() {
				*flagClip = "Run"
				*flagSpeed = 2.5
				*flagNoLoop = true
				*flagFrames = 10
			},
			verify: func(cfg *Config) {
				if cfg.Playback.Clip != "Run" || cfg.Playback.Speed != 2.5 {
					t.Errorf("unexpected playback config %+v", cfg.Playback)
				}
				if cfg.Playback.Loop {
					t.Error("expected loop to be off with noloop flag")
				}
				if cfg.Playback.Frames != 10 {
					t.Errorf("expected 10 frames, got %d", cfg.Playback.Frames)
				}
			},
			teardown: func() {
				*flagClip = ""
				*flagSpeed = 0
				*flagNoLoop = false
				*flagFrames = 0
			},
		},
		{
			name: "server flags",
			setup: func() {
				*flagServe = true
				*flagAddr = ":7000"
			},
			verify: func(cfg *Config) {
				if !cfg.Server.Enabled || cfg.Server.Addr != ":7000" {
					t.Errorf("unexpected server config %+v", cfg.Server)
				}
			},
			teardown: func() {
				*flagServe = false
				*flagAddr = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
playback:
  clip: "Idle"
  speed: 0.25
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagSpeed = 3
	defer func() {
		*flagConfig = ""
		*flagSpeed = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Speed should be from flag, not file
	if cfg.Playback.Speed != 3 {
		t.Errorf("expected speed 3 from flag, got %f", cfg.Playback.Speed)
	}

	// Clip should be from file since no flag override
	if cfg.Playback.Clip != "Idle" {
		t.Errorf("expected clip Idle from file, got %s", cfg.Playback.Clip)
	}
}
