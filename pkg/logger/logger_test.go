package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.DebugLevel).With(String("component", "test"))

	l.Warn("upstream slow",
		String("pair", "USD/CNY"),
		Int("attempt", 2),
		Float64("rate", 7.12),
		Bool("reduced", true),
		Strings("candidates", []string{"DKK", "SEK"}),
		Duration("took_ms", 1500*time.Millisecond),
		Error(errors.New("boom")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "upstream slow", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "USD/CNY", entry["pair"])
	assert.EqualValues(t, 2, entry["attempt"])
	assert.EqualValues(t, 1500, entry["took_ms"])
	assert.InDelta(t, 7.12, entry["rate"], 1e-9)
	assert.Equal(t, true, entry["reduced"])
	assert.Equal(t, "DKK, SEK", entry["candidates"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.InfoLevel)
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}
