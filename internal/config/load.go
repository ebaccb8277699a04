package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.Timestep <= 0 {
		return fmt.Errorf("timestep must be positive, got %s", c.Render.Timestep)
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Render.Near, c.Render.Far)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		return fmt.Errorf("fov must be in (0, 180), got %g", c.Render.FOV)
	}
	if l := c.Render.Light; l.Ambient < 0 || l.Diffuse < 0 {
		return fmt.Errorf("light terms must not be negative, ambient=%g diffuse=%g", l.Ambient, l.Diffuse)
	}
	if c.Snapshot.Size <= 0 || c.Snapshot.Supersample < 1 {
		return fmt.Errorf("invalid snapshot size %d x%d", c.Snapshot.Size, c.Snapshot.Supersample)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Mannequin")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Mannequin")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mannequin")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "mannequin")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
