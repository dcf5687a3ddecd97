package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"l14layout/internal/config"
)

type bufferSyncer struct{ bytes.Buffer }

func (*bufferSyncer) Sync() error { return nil }

func TestInitialize_JSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bufferSyncer

	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "l14"}, &buf)
	GetLogger().Warn("grid layout failed", zap.Int("node", 4))
	Sync()

	var entry map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &entry), "log output should be JSON")
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "l14", entry["logger"])
	assert.Equal(t, "grid layout failed", entry["msg"])
	assert.Equal(t, float64(4), entry["node"])
}

func TestInitialize_LevelFilters(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bufferSyncer

	Initialize(config.LoggerConfig{Level: "warn", Format: "console"}, &buf)
	GetLogger().Info("hidden")
	GetLogger().Error("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestInitialize_BadLevelDefaultsToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bufferSyncer

	Initialize(config.LoggerConfig{Level: "loud", Format: "json"}, &buf)
	GetLogger().Debug("debug")
	GetLogger().Info("info")

	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}

func TestInitialize_OnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var first, second bufferSyncer

	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, &first)
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, &second)
	GetLogger().Info("once")

	assert.Contains(t, first.String(), "once")
	assert.Zero(t, second.Len())
}

func TestInitialize_WritesLogFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	path := filepath.Join(t.TempDir(), "l14.log")

	Initialize(config.LoggerConfig{Level: "debug", Format: "json", LogFile: path, MaxSize: 1}, zapcore.AddSync(&bytes.Buffer{}))
	GetLogger().Info("to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestGetLogger_FallbackBeforeInitialize(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
}
