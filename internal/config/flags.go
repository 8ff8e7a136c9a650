package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAsset  = flag.String("asset", "", "Model to load (.gltf, .glb, .yaml)")
	flagScene  = flag.Int("scene", -1, "glTF scene index")
	flagClip   = flag.String("clip", "", "Clip to play")
	flagSpeed  = flag.Float64("speed", 0, "Playback speed multiplier")
	flagNoLoop = flag.Bool("noloop", false, "Hold the last frame instead of looping")
	flagFrames = flag.Int("frames", 0, "Stop after this many frames")
	flagServe  = flag.Bool("serve", false, "Run the debug server")
	flagAddr   = flag.String("addr", "", "Debug server listen address")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAsset != "" {
		cfg.Asset.Path = *flagAsset
	}
	if *flagScene >= 0 {
		cfg.Asset.Scene = *flagScene
	}
	if *flagClip != "" {
		cfg.Playback.Clip = *flagClip
	}
	if *flagSpeed > 0 {
		cfg.Playback.Speed = float32(*flagSpeed)
	}
	if *flagNoLoop {
		cfg.Playback.Loop = false
	}
	if *flagFrames > 0 {
		cfg.Playback.Frames = *flagFrames
	}
	if *flagServe {
		cfg.Server.Enabled = true
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
}
