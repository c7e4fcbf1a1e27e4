// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds the output image settings.
type OutputConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"` // world units to pixels
}

// RenderConfig holds the visibility-strategy settings.
type RenderConfig struct {
	// Strategy selects the visibility strategy: painter, zbuffer or
	// raycast.
	Strategy string `yaml:"strategy"`

	// MaxFootprint is the painter's subdivision threshold in pixels;
	// zero disables subdivision.
	MaxFootprint float64 `yaml:"max_footprint"`

	// Supersample is the zbuffer oversampling factor.
	Supersample int `yaml:"supersample"`

	// Antialias enables the raycaster's sub-pixel sampling.
	Antialias bool `yaml:"antialias"`

	// ShadowSamples is the number of disc samples soft-shadow area
	// lights take.
	ShadowSamples int `yaml:"shadow_samples"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Width:  800,
			Height: 600,
			Scale:  100,
		},
		Render: RenderConfig{
			Strategy:      "zbuffer",
			MaxFootprint:  0,
			Supersample:   1,
			Antialias:     true,
			ShadowSamples: 8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
