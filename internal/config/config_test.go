package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Output.Width)
	}
	if cfg.Output.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Output.Height)
	}
	if cfg.Output.Scale != 100 {
		t.Errorf("expected scale 100, got %f", cfg.Output.Scale)
	}

	if cfg.Render.Strategy != "zbuffer" {
		t.Errorf("expected strategy 'zbuffer', got %s", cfg.Render.Strategy)
	}
	if cfg.Render.MaxFootprint != 0 {
		t.Errorf("expected subdivision disabled, got %f", cfg.Render.MaxFootprint)
	}
	if cfg.Render.Supersample != 1 {
		t.Errorf("expected supersample 1, got %d", cfg.Render.Supersample)
	}
	if !cfg.Render.Antialias {
		t.Error("expected antialias to be true by default")
	}
	if cfg.Render.ShadowSamples != 8 {
		t.Errorf("expected 8 shadow samples, got %d", cfg.Render.ShadowSamples)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
output:
  width: 1920
  height: 1080
  scale: 50

render:
  strategy: raycast
  max_footprint: 64
  supersample: 2
  antialias: false
  shadow_samples: 16

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Output.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Output.Width)
	}
	if cfg.Output.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Output.Height)
	}
	if cfg.Output.Scale != 50 {
		t.Errorf("expected scale 50, got %f", cfg.Output.Scale)
	}

	if cfg.Render.Strategy != "raycast" {
		t.Errorf("expected strategy 'raycast', got %s", cfg.Render.Strategy)
	}
	if cfg.Render.MaxFootprint != 64 {
		t.Errorf("expected max footprint 64, got %f", cfg.Render.MaxFootprint)
	}
	if cfg.Render.Supersample != 2 {
		t.Errorf("expected supersample 2, got %d", cfg.Render.Supersample)
	}
	if cfg.Render.Antialias {
		t.Error("expected antialias to be false")
	}
	if cfg.Render.ShadowSamples != 16 {
		t.Errorf("expected 16 shadow samples, got %d", cfg.Render.ShadowSamples)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "render.log" {
		t.Errorf("expected log file 'render.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
output:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Strategy = "painter"
	cfg.Render.MaxFootprint = 32
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Render.Strategy != "painter" {
		t.Errorf("expected strategy 'painter', got %s", loaded.Render.Strategy)
	}
	if loaded.Render.MaxFootprint != 32 {
		t.Errorf("expected max footprint 32, got %f", loaded.Render.MaxFootprint)
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
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "strategy flag",
			setup: func() {
				*flagStrategy = "raycast"
			},
			verify: func(cfg *Config) {
				if cfg.Render.Strategy != "raycast" {
					t.Errorf("expected strategy 'raycast', got %s", cfg.Render.Strategy)
				}
			},
			teardown: func() {
				*flagStrategy = ""
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Output.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Output.Width)
				}
				if cfg.Output.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Output.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scale flag",
			setup: func() {
				*flagScale = 25
			},
			verify: func(cfg *Config) {
				if cfg.Output.Scale != 25 {
					t.Errorf("expected scale 25, got %f", cfg.Output.Scale)
				}
			},
			teardown: func() {
				*flagScale = 0
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
output:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Output.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Output.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Output.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Output.Height)
	}
}
