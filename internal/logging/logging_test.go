package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "json", slog.LevelInfo)).Info("vote", "tag_id", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vote", entry["msg"])
	assert.EqualValues(t, 3, entry["tag_id"])

	buf.Reset()
	slog.New(newHandler(&buf, "text", slog.LevelInfo)).Info("vote", "tag_id", 3)
	assert.Contains(t, buf.String(), "msg=vote")
	assert.Contains(t, buf.String(), "tag_id=3")
}

func TestNewHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, "text", slog.LevelWarn)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestNewWritesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "shorescore.log")
	logger, cleanup, err := New("info", "json", path)
	require.NoError(t, err)

	logger.Info("location created", "location_id", 1)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"location created"`))
}

func TestNewBadLogFile(t *testing.T) {
	_, _, err := New("info", "json", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
