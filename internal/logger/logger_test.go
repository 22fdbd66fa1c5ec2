package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/internal/config"
)

func TestSetup_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	slot := uuid.New()
	WithError(WithSlot(log, slot), errors.New("boom")).Info("Game saved")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Game saved", line["msg"])
	assert.Equal(t, slot.String(), line["slot"])
	assert.Equal(t, "boom", line["error"])
}

func TestSetup_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	log.Info("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenFile(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "logs", "urea.log"))
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString("ok\n")
	assert.NoError(t, err)
}
