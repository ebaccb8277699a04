// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Body     BodyConfig     `yaml:"body"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RenderConfig holds frame and projection settings.
type RenderConfig struct {
	Timestep         time.Duration `yaml:"timestep"`          // Fixed animation step per frame
	VariableTimestep bool          `yaml:"variable_timestep"` // Use measured wall-clock dt instead
	FOV              float32       `yaml:"fov"`               // Vertical field of view, degrees
	Near             float32       `yaml:"near"`
	Far              float32       `yaml:"far"`
	ClearColor       [4]float32    `yaml:"clear_color"`
	Light            LightConfig   `yaml:"light"`
}

// LightConfig holds the key light. Angles are in degrees; longitude turns
// about the vertical axis from the camera's default side.
type LightConfig struct {
	Longitude float32 `yaml:"longitude"`
	Latitude  float32 `yaml:"latitude"`
	Ambient   float32 `yaml:"ambient"`
	Diffuse   float32 `yaml:"diffuse"`
}

// CameraConfig holds the initial orbit camera and gesture sensitivities.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	RotationX       float32 `yaml:"rotation_x"`
	RotationY       float32 `yaml:"rotation_y"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// BodyConfig describes the initial body. Height and weight feed the
// measurement predictor; File points to a YAML list of bodies instead.
type BodyConfig struct {
	Height float32 `yaml:"height"`
	Weight float32 `yaml:"weight"`
	Gender string  `yaml:"gender"`
	File   string  `yaml:"file"`
}

// SnapshotConfig holds image export settings.
type SnapshotConfig struct {
	Dir         string `yaml:"dir"`
	Format      string `yaml:"format"` // png or webp
	Size        int    `yaml:"size"`
	Supersample int    `yaml:"supersample"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Mannequin",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			Timestep:         16 * time.Millisecond,
			VariableTimestep: false,
			FOV:              90,
			Near:             1,
			Far:              10,
			ClearColor:       [4]float32{0.95, 0.95, 0.97, 1},
			Light: LightConfig{
				Longitude: 34,
				Latitude:  48,
				Ambient:   0.55,
				Diffuse:   0.45,
			},
		},
		Camera: CameraConfig{
			Distance:        3,
			RotationX:       0,
			RotationY:       15,
			DragSensitivity: 0.5,
			ZoomSensitivity: 0.1,
		},
		Body: BodyConfig{
			Height: 175,
			Weight: 70,
			Gender: "male",
		},
		Snapshot: SnapshotConfig{
			Dir:         "snapshots",
			Format:      "png",
			Size:        512,
			Supersample: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
