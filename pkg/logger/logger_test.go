package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(GetLevel())

	SetLevel(INFO)
	DebugC("test", "hidden")
	InfoCF("test", "shown", map[string]any{"b": 2, "a": 1})
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] test: shown a=1 b=2")

	buf.Reset()
	SetLevel(DEBUG)
	DebugCF("msgfmt", "scaled", map[string]any{"final": 58})
	assert.Contains(t, buf.String(), "[DEBUG] msgfmt: scaled final=58")

	buf.Reset()
	SetLevel(ERROR)
	WarnC("test", "quiet")
	ErrorC("test", "loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "[ERROR] test: loud")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, WARN, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
