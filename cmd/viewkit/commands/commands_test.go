package commands

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agiangrant/viewkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&stderr)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "frame_rate = 60")
	assert.Contains(t, out, "max_edge = 256")

	out, err = run(t, "config", "--check")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	bad := writeFile(t, "bad.toml", "[vsync]\nframe_rate = 0\n")
	_, err = run(t, "config", "--config", bad)
	assert.ErrorIs(t, err, viewkit.ErrInvalidConfig)

	_, err = run(t, "config", "--log-level", "chatty")
	assert.ErrorIs(t, err, viewkit.ErrInvalidConfig)
}

func TestLayoutCommand(t *testing.T) {
	doc := writeFile(t, "layout.toml", `
type = "restraint"
width = "fill"
height = "fill"

[[children]]
type = "view"
id = 1
width = 50
height = 10
start = "parent.start"
end = "parent.end"
top = "parent.top"

[[children]]
type = "view"
visibility = "vanished"
`)
	out, err := run(t, "layout", doc, "--width", "200", "--height", "100")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"restraint (0,0)-(200,100)",
		"  view #1 (75,0)-(125,10)",
		"  view (0,0)-(0,0) vanished",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	_, err = run(t, "layout", doc, "--width", "0")
	assert.Error(t, err)
	_, err = run(t, "layout")
	assert.Error(t, err)
}

func TestAnimateCommand(t *testing.T) {
	out, err := run(t, "animate", "--property", "alpha", "--to", "0", "--duration", "100ms", "--easing", "linear")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "0\t0s\t1", lines[0])
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "\t0"), lines[len(lines)-1])

	out, err = run(t, "animate", "--to", "0", "--frames", "2")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = run(t, "animate", "--property", "width")
	assert.Error(t, err)
	_, err = run(t, "animate", "--easing", "wobble")
	assert.Error(t, err)
}

func TestThumbCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 400, 100))))
	path := writeFile(t, "wide.png", buf.String())

	out, err := run(t, "thumb", "--max-edge", "200", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t200x50\n", out)

	missing := filepath.Join(t.TempDir(), "missing.png")
	out, err = run(t, "thumb", missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, out, "error:")
}
