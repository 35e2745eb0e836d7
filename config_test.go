package viewkit

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 200*time.Millisecond, c.AnimationDuration())
	assert.Equal(t, time.Second/60, c.FrameInterval())
	assert.Equal(t, 500*time.Millisecond, c.DoubleClickTime())
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	c, err := ParseConfig([]byte(`
[vsync]
frame_rate = 120

[animation]
duration_ms = 350
`))
	require.NoError(t, err)
	assert.Equal(t, 120, c.VSync.FrameRate)
	assert.Equal(t, 350, c.Animation.DurationMs)
	// untouched sections keep their defaults
	assert.Equal(t, "ease-out", c.Animation.Easing)
	assert.Equal(t, 500, c.Input.CaretBlinkMs)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown key", data: "[vsync]\nframerate = 30\n"},
		{name: "bad frame rate", data: "[vsync]\nframe_rate = 0\n"},
		{name: "negative duration", data: "[animation]\nduration_ms = -1\n"},
		{name: "syntax", data: "[vsync\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := ParseConfig([]byte("[thumbnail]\nmax_edge = 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestSaveThenLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewkit.toml")
	c := DefaultConfig()
	c.Input.TouchSlop = 12
	require.NoError(t, SaveConfig(path, c))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, float32(12), loaded.Input.TouchSlop)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewkit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[vsync]\nframe_rate = 30\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[vsync]\nframe_rate = 90\n"), 0o644))

	// A truncating write may be observed before the new content lands, so
	// wait for the final value rather than the first reload.
	deadline := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case c := <-got:
			reloaded = c.VSync.FrameRate == 90
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := NewLogger(LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, _, err = NewLogger(LogConfig{Level: "loud"}, &buf)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewLoggerTeesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	var buf bytes.Buffer
	l, closer, err := NewLogger(LogConfig{Level: "debug", Format: "json", File: path}, &buf)
	require.NoError(t, err)
	l.Debug("frame", "n", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"frame"`)
	assert.Equal(t, buf.String(), string(data))
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	defer SetLogger(nil)

	SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	assert.True(t, Logger().Enabled(context.Background(), slog.LevelInfo))

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
