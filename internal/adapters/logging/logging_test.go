package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdforge/mdforge/internal/ports"
)

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf))

	logger.Info(context.Background(), "stage complete", ports.F("stage", 3))

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "stage complete")
	assert.Contains(t, out, "stage=3")
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden too")
	logger.Warn(context.Background(), "visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithJSONFormat(true))

	logger.Error(context.Background(), "command failed", ports.F("command", "mdadm"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "command failed", entry["msg"])
	assert.Equal(t, "mdadm", entry["command"])
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf))

	scoped := logger.With(ports.F("run_id", "abc"))
	scoped.Info(context.Background(), "hello")

	assert.Contains(t, buf.String(), "run_id=abc")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()

	// Must not panic and must keep its level.
	logger.Info(context.Background(), "ignored")
	logger.SetLevel(ports.LevelError)
	assert.Equal(t, ports.LevelError, logger.Level())
	assert.Same(t, logger, logger.With(ports.F("k", "v")))
}
