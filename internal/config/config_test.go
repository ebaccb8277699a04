package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Render.Timestep != 16*time.Millisecond {
		t.Errorf("expected 16ms timestep, got %v", cfg.Render.Timestep)
	}
	if cfg.Render.VariableTimestep {
		t.Error("expected fixed timestep by default")
	}
	if cfg.Render.FOV != 90 || cfg.Render.Near != 1 || cfg.Render.Far != 10 {
		t.Errorf("unexpected projection defaults: fov=%g near=%g far=%g",
			cfg.Render.FOV, cfg.Render.Near, cfg.Render.Far)
	}

	if cfg.Camera.Distance != 3 {
		t.Errorf("expected camera distance 3, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.RotationY != 15 {
		t.Errorf("expected camera pitch 15, got %f", cfg.Camera.RotationY)
	}
	if cfg.Camera.DragSensitivity != 0.5 {
		t.Errorf("expected drag sensitivity 0.5, got %f", cfg.Camera.DragSensitivity)
	}

	if cfg.Body.Gender != "male" {
		t.Errorf("expected gender 'male', got %s", cfg.Body.Gender)
	}
	if cfg.Snapshot.Format != "png" {
		t.Errorf("expected snapshot format 'png', got %s", cfg.Snapshot.Format)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

render:
  timestep: 33ms
  variable_timestep: true
  clear_color: [0, 0, 0, 1]

camera:
  distance: 4.5
  rotation_y: -20

body:
  height: 162
  weight: 55
  gender: female
  file: bodies.yaml

snapshot:
  format: webp
  size: 1024

logging:
  level: "debug"
  log_file: "mannequin.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.Title != "Mannequin" {
		t.Errorf("unset title should keep default, got %q", cfg.Window.Title)
	}

	if cfg.Render.Timestep != 33*time.Millisecond {
		t.Errorf("expected 33ms timestep, got %v", cfg.Render.Timestep)
	}
	if !cfg.Render.VariableTimestep {
		t.Error("expected variable timestep to be true")
	}
	if cfg.Render.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}

	if cfg.Camera.Distance != 4.5 || cfg.Camera.RotationY != -20 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}

	if cfg.Body.Height != 162 || cfg.Body.Weight != 55 || cfg.Body.Gender != "female" {
		t.Errorf("unexpected body %+v", cfg.Body)
	}
	if cfg.Body.File != "bodies.yaml" {
		t.Errorf("expected body file 'bodies.yaml', got %s", cfg.Body.File)
	}

	if cfg.Snapshot.Format != "webp" || cfg.Snapshot.Size != 1024 {
		t.Errorf("unexpected snapshot %+v", cfg.Snapshot)
	}
	if cfg.Snapshot.Supersample != 2 {
		t.Errorf("unset supersample should keep default, got %d", cfg.Snapshot.Supersample)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "mannequin.log" {
		t.Errorf("expected log file 'mannequin.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
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

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative timestep", func(c *Config) { c.Render.Timestep = -time.Millisecond }},
		{"far before near", func(c *Config) { c.Render.Far = 0.5 }},
		{"zero near", func(c *Config) { c.Render.Near = 0 }},
		{"flat fov", func(c *Config) { c.Render.FOV = 180 }},
		{"no supersample", func(c *Config) { c.Snapshot.Supersample = 0 }},
		{"negative ambient", func(c *Config) { c.Render.Light.Ambient = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
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

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// Only the working directory candidate is under our control here.
	if _, err := os.Stat(filepath.Join(ConfigDir(), "config.yaml")); err == nil {
		t.Skip("user config present")
	}

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.Distance = 5
	cfg.Body.Gender = "female"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Camera.Distance != 5 || loaded.Body.Gender != "female" {
		t.Errorf("saved values not restored: %+v %+v", loaded.Camera, loaded.Body)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "body flags",
			setup: func() {
				*flagBodyHeight = 181
				*flagBodyWeight = 90
				*flagGender = "female"
				*flagBodies = "crowd.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Body.Height != 181 || cfg.Body.Weight != 90 {
					t.Errorf("expected 181cm/90kg, got %+v", cfg.Body)
				}
				if cfg.Body.Gender != "female" || cfg.Body.File != "crowd.yaml" {
					t.Errorf("unexpected body %+v", cfg.Body)
				}
			},
			teardown: func() {
				*flagBodyHeight = 0
				*flagBodyWeight = 0
				*flagGender = ""
				*flagBodies = ""
			},
		},
		{
			name: "timestep flags",
			setup: func() {
				*flagTimestep = 8 * time.Millisecond
				*flagVariableTimestep = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Timestep != 8*time.Millisecond {
					t.Errorf("expected 8ms, got %v", cfg.Render.Timestep)
				}
				if !cfg.Render.VariableTimestep {
					t.Error("expected variable timestep")
				}
			},
			teardown: func() {
				*flagTimestep = 0
				*flagVariableTimestep = false
			},
		},
		{
			name: "snapshot flags",
			setup: func() {
				*flagSnapshotDir = "/tmp/shots"
				*flagFormat = "webp"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Snapshot.Dir != "/tmp/shots" || cfg.Snapshot.Format != "webp" {
					t.Errorf("unexpected snapshot %+v", cfg.Snapshot)
				}
			},
			teardown: func() {
				*flagSnapshotDir = ""
				*flagFormat = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

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

	// Flag beats file, file beats default.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  near: 5\n  far: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject far < near")
	}
}
