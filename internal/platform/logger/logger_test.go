package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, "error", Error.String())
}

func TestJSONLogger_MergesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, App: "virtual-pet", Output: &buf})

	l.With(map[string]any{"user_id": "u-1"}).Error("eat failed", map[string]any{
		"err": errors.New("boom"),
		"":    "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "eat failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "virtual-pet", entry["app"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", map[string]any{"k": "v"})

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
	assert.True(t, strings.Contains(out, "k=v"))
}
