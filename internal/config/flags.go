package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagStrategy  = flag.String("strategy", "", "Visibility strategy: painter, zbuffer or raycast")
	flagWidth     = flag.Int("width", 0, "Output width in pixels")
	flagHeight    = flag.Int("height", 0, "Output height in pixels")
	flagScale     = flag.Float64("scale", 0, "World-to-pixel scale factor")
	flagAntialias = flag.Bool("antialias", false, "Enable ray-casting antialiasing")
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
	if *flagStrategy != "" {
		cfg.Render.Strategy = *flagStrategy
	}
	if *flagWidth > 0 {
		cfg.Output.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Output.Height = *flagHeight
	}
	if *flagScale > 0 {
		cfg.Output.Scale = *flagScale
	}
	if *flagAntialias {
		cfg.Render.Antialias = true
	}
}
