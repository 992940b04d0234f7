package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window        WindowConfig  `yaml:"window"`
	Surface       SurfaceConfig `yaml:"surface"`
	Speed         SpeedConfig   `yaml:"speed"`
	MaxIterations uint32        `yaml:"max_iterations"`
	LogLevel      slog.Level    `yaml:"log_level"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`

	// height in pixels reserved above the fractal panel
	TopBarHeight uint32 `yaml:"top_bar_height"`
}

type SurfaceConfig struct {
	// initial size of the offscreen surface, replaced after the first frame
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// SpeedConfig holds the pan and zoom rates, per second and relative to the
// current zoom level.
type SpeedConfig struct {
	Pan  float32 `yaml:"pan"`
	Zoom float32 `yaml:"zoom"`

	// factor applied to both rates while shift is held
	SlowFactor float32 `yaml:"slow_factor"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:        800,
			Height:       600,
			Title:        "Mandelbrot Viewer",
			Resizable:    true,
			VSync:        true,
			TopBarHeight: 24,
		},
		Surface: SurfaceConfig{
			Width:  100,
			Height: 100,
		},
		Speed: SpeedConfig{
			Pan:        0.75,
			Zoom:       0.5,
			SlowFactor: 0.2,
		},
		MaxIterations: 256,
		LogLevel:      slog.LevelInfo,
	}
}

// Load reads the config file at path on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return config, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	if c.Surface.Width == 0 || c.Surface.Height == 0 {
		errs = append(errs, fmt.Errorf("surface size %dx%d must be positive", c.Surface.Width, c.Surface.Height))
	}

	if c.Speed.Pan <= 0 || c.Speed.Zoom <= 0 {
		errs = append(errs, errors.New("pan and zoom speed must be positive"))
	}

	if c.Speed.SlowFactor <= 0 || c.Speed.SlowFactor > 1 {
		errs = append(errs, fmt.Errorf("slow factor %v must be in (0, 1]", c.Speed.SlowFactor))
	}

	if c.MaxIterations == 0 {
		errs = append(errs, errors.New("max iterations must be positive"))
	}

	return errors.Join(errs...)
}
