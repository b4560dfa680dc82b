package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger, err := New("debug", "json", &out)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("component", "scaler").Debug("cycle")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "cycle", entry["msg"])
	assert.Equal(t, "scaler", entry["component"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewTextLoggerFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger, err := New("warn", "", &out)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestNewRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	_, err := New("loud", "text", &bytes.Buffer{})
	assert.ErrorContains(t, err, "parse log level")

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}
