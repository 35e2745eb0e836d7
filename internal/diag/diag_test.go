//go:build !viewkit_debug

package diag

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/agiangrant/viewkit"
	"github.com/stretchr/testify/assert"
)

func TestCheckLogsAndDegrades(t *testing.T) {
	var buf bytes.Buffer
	viewkit.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer viewkit.SetLogger(nil)

	assert.True(t, Check(true, "never logged"))
	assert.False(t, Check(false, "dangling handle", "id", 7))
	assert.NotContains(t, buf.String(), "never logged")
	assert.Contains(t, buf.String(), "dangling handle")
	assert.Contains(t, buf.String(), "id=7")
	assert.False(t, Enabled())
}
