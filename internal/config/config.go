// Package config handles player configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all player settings.
type Config struct {
	Asset    AssetConfig    `yaml:"asset"`
	Playback PlaybackConfig `yaml:"playback"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AssetConfig selects the model to load.
type AssetConfig struct {
	Path  string `yaml:"path"`  // .gltf, .glb or .yaml rig
	Scene int    `yaml:"scene"` // glTF scene index, -1 for the document default
}

// PlaybackConfig holds clip and clock settings.
type PlaybackConfig struct {
	Clip      string  `yaml:"clip"` // empty plays the first clip
	Speed     float32 `yaml:"speed"`
	Loop      bool    `yaml:"loop"`
	FrameRate int     `yaml:"frame_rate"` // fixed update rate in Hz
	Frames    int     `yaml:"frames"`     // 0 runs until interrupted
}

// ServerConfig holds debug server settings.
type ServerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Addr         string        `yaml:"addr"`
	PushInterval time.Duration `yaml:"push_interval"` // websocket frame rate limit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Asset: AssetConfig{
			Scene: -1,
		},
		Playback: PlaybackConfig{
			Speed:     1,
			Loop:      true,
			FrameRate: 60,
		},
		Server: ServerConfig{
			Enabled:      false,
			Addr:         "127.0.0.1:8642",
			PushInterval: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would make playback meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Asset.Scene < -1:
		return fmt.Errorf("%w: asset.scene %d", ErrInvalid, c.Asset.Scene)
	case c.Playback.Speed < 0:
		return fmt.Errorf("%w: playback.speed %v must not be negative", ErrInvalid, c.Playback.Speed)
	case c.Playback.FrameRate <= 0:
		return fmt.Errorf("%w: playback.frame_rate %d must be positive", ErrInvalid, c.Playback.FrameRate)
	case c.Playback.Frames < 0:
		return fmt.Errorf("%w: playback.frames %d", ErrInvalid, c.Playback.Frames)
	case c.Server.Enabled && c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	return nil
}

// FrameStep returns the fixed update step.
func (c *PlaybackConfig) FrameStep() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FrameRate)
}
