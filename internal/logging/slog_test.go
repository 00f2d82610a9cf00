package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidbase/avidbase-go/internal/logging"
)

func TestSlogLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := logging.NewSlogLogger(slog.New(h))

	logger.Debug("debug message", map[string]interface{}{"k": "v"})
	logger.Info("info message", nil)
	logger.Warn("warn message", map[string]interface{}{"status_code": 401})
	logger.Error("error message", nil)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status_code=401")
	assert.Contains(t, out, "level=ERROR")
}

func TestNew_VerboseControlsDebug(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer

	logging.New(&quiet, false, false).Debug("hidden", nil)
	logging.New(&verbose, false, true).Debug("shown", nil)

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "shown")
}

func TestNew_JSONOutputSortedFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.New(&buf, true, false).With(map[string]interface{}{"account": "acc-1"})
	logger.Warn("Operation failed", map[string]interface{}{
		"operation": "list_users",
		"error":     "boom",
	})

	line := strings.TrimSpace(buf.String())

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "Operation failed", record["msg"])
	assert.Equal(t, "acc-1", record["account"])
	assert.Equal(t, "list_users", record["operation"])
	assert.Less(t, strings.Index(line, `"error"`), strings.Index(line, `"operation"`))
}
