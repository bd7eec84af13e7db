package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachesServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Output: &buf})

	logger.Info().Msg("dropped")
	logger.Warn().Str("event", "test.warn").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "isotope", entry["service"])
	assert.Equal(t, "test.warn", entry["event"])
	assert.Equal(t, "warn", entry["level"])
}

func TestParseLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(""))
}

func TestWithComponent(t *testing.T) {
	previous := Base()
	t.Cleanup(func() {
		mu.Lock()
		base = previous
		mu.Unlock()
	})

	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "isotope-test"})
	logger := WithComponent("timer")
	logger.Debug().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "timer", entry["component"])
	assert.Equal(t, "isotope-test", entry["service"])
}
