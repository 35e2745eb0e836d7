package viewkit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a configuration file parses but holds
// values the toolkit cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the process-wide tunables of the toolkit.
// It is loaded from a TOML file; zero sections fall back to DefaultConfig.
type Config struct {
	VSync     VSyncConfig     `toml:"vsync"`
	Animation AnimationConfig `toml:"animation"`
	Input     InputConfig     `toml:"input"`
	Thumbnail ThumbnailConfig `toml:"thumbnail"`
	Log       LogConfig       `toml:"log"`
}

// VSyncConfig configures the software refresh source.
type VSyncConfig struct {
	// FrameRate is the refresh rate in Hz used when the platform does not
	// provide display refresh callbacks.
	FrameRate int `toml:"frame_rate"`
}

// AnimationConfig configures default animation parameters.
type AnimationConfig struct {
	DurationMs int    `toml:"duration_ms"`
	Easing     string `toml:"easing"`
}

// InputConfig configures pointer and keyboard behavior.
type InputConfig struct {
	DoubleClickMs       int     `toml:"double_click_ms"`
	DoubleClickDistance float32 `toml:"double_click_distance"`
	CaretBlinkMs        int     `toml:"caret_blink_ms"`
	TouchSlop           float32 `toml:"touch_slop"`
}

// ThumbnailConfig configures the background thumbnail fetcher.
type ThumbnailConfig struct {
	MaxPending int `toml:"max_pending"`
	MaxEdge    int `toml:"max_edge"`
}

// LogConfig configures the process logger. File is optional; when set,
// log records are also appended to it.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		VSync: VSyncConfig{FrameRate: 60},
		Animation: AnimationConfig{
			DurationMs: 200,
			Easing:     "ease-out",
		},
		Input: InputConfig{
			DoubleClickMs:       500,
			DoubleClickDistance: 5,
			CaretBlinkMs:        500,
			TouchSlop:           8,
		},
		Thumbnail: ThumbnailConfig{
			MaxPending: 64,
			MaxEdge:    256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// AnimationDuration returns the default animation duration.
func (c Config) AnimationDuration() time.Duration {
	return time.Duration(c.Animation.DurationMs) * time.Millisecond
}

// DoubleClickTime returns the maximum delay between two clicks of a double click.
func (c Config) DoubleClickTime() time.Duration {
	return time.Duration(c.Input.DoubleClickMs) * time.Millisecond
}

// CaretBlinkInterval returns the caret blink half period.
func (c Config) CaretBlinkInterval() time.Duration {
	return time.Duration(c.Input.CaretBlinkMs) * time.Millisecond
}

// FrameInterval returns the refresh period of the software vsync source.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.VSync.FrameRate)
}

// Validate checks the values a running toolkit depends on.
func (c Config) Validate() error {
	switch {
	case c.VSync.FrameRate < 1 || c.VSync.FrameRate > 1000:
		return fmt.Errorf("%w: vsync.frame_rate %d out of range", ErrInvalidConfig, c.VSync.FrameRate)
	case c.Animation.DurationMs < 0:
		return fmt.Errorf("%w: animation.duration_ms must not be negative", ErrInvalidConfig)
	case c.Input.DoubleClickMs < 0 || c.Input.CaretBlinkMs < 0:
		return fmt.Errorf("%w: input timings must not be negative", ErrInvalidConfig)
	case c.Thumbnail.MaxPending < 1 || c.Thumbnail.MaxEdge < 1:
		return fmt.Errorf("%w: thumbnail limits must be positive", ErrInvalidConfig)
	}
	return nil
}

// ParseConfig decodes TOML data on top of DefaultConfig.
// Unknown keys are rejected so typos surface instead of being ignored.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// LoadConfig loads the configuration file at path ("~" is expanded).
// If the file doesn't exist, returns the default config.
func LoadConfig(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", expanded, err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return config, fmt.Errorf("%s: %w", expanded, err)
	}
	return config, nil
}

// SaveConfig writes the configuration to path.
func SaveConfig(path string, config Config) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand %s: %w", path, err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", expanded, err)
	}
	return nil
}
