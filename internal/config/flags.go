package config

import "flag"

var (
	flagConfig           = flag.String("config", "", "Path to config file")
	flagDebug            = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed         = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen       = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth            = flag.Int("width", 0, "Window width")
	flagHeight           = flag.Int("height", 0, "Window height")
	flagBodyHeight       = flag.Float64("body-height", 0, "Body height in cm")
	flagBodyWeight       = flag.Float64("body-weight", 0, "Body weight in kg")
	flagGender           = flag.String("gender", "", "Body gender (male or female)")
	flagBodies           = flag.String("bodies", "", "Path to a YAML file listing bodies")
	flagTimestep         = flag.Duration("timestep", 0, "Fixed animation timestep per frame")
	flagVariableTimestep = flag.Bool("variable-timestep", false, "Advance animation by measured frame time")
	flagSnapshotDir      = flag.String("snapshot-dir", "", "Directory for snapshots")
	flagFormat           = flag.String("format", "", "Snapshot format (png or webp)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
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
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagBodyHeight > 0 {
		cfg.Body.Height = float32(*flagBodyHeight)
	}
	if *flagBodyWeight > 0 {
		cfg.Body.Weight = float32(*flagBodyWeight)
	}
	if *flagGender != "" {
		cfg.Body.Gender = *flagGender
	}
	if *flagBodies != "" {
		cfg.Body.File = *flagBodies
	}
	if *flagTimestep > 0 {
		cfg.Render.Timestep = *flagTimestep
	}
	if *flagVariableTimestep {
		cfg.Render.VariableTimestep = true
	}
	if *flagSnapshotDir != "" {
		cfg.Snapshot.Dir = *flagSnapshotDir
	}
	if *flagFormat != "" {
		cfg.Snapshot.Format = *flagFormat
	}
}
