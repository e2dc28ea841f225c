package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			var buf bytes.Buffer
			require.NoError(t, InitializeWithWriter(&buf, tt.jsonOutput, VerbosityInfo))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Infow("document opened", FieldURI, "file:///demo.bnl")
			Cleanup()
			assert.Contains(t, buf.String(), "document opened")
			assert.Contains(t, buf.String(), "file:///demo.bnl")
		})
	}
}

func TestJSONOutputIsParseable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(&buf, true, VerbosityDebug))

	Debugw("completion", FieldCount, 42, FieldCategory, "Math")
	Cleanup()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "completion", entry["msg"])
	assert.Equal(t, float64(42), entry[FieldCount])
	assert.Equal(t, "Math", entry[FieldCategory])
}

func TestVerbosityFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(&buf, false, VerbosityUser))

	Infow("hidden at default verbosity")
	Debugw("also hidden")
	Warnw("visible warning")
	Errorw("visible error")
	Cleanup()

	out := buf.String()
	assert.NotContains(t, out, "hidden at default verbosity")
	assert.NotContains(t, out, "also hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "visible error")
}

func TestConsoleOutputHasNoANSI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(&buf, false, VerbosityInfo))

	Infow("plain line", FieldWord, "যদি")
	Cleanup()

	assert.False(t, strings.Contains(buf.String(), "\x1b["), "console encoder must not emit escape codes")
	assert.Contains(t, buf.String(), "যদি")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(VerbosityUser))
	assert.Equal(t, "Debug (-vv)", LevelName(VerbosityDebug))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-2))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
	assert.False(t, ShouldLogTrace(VerbosityDebug))
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(&buf, true, VerbosityInfo))

	l := ChildLogger(ComponentLogger("lsp"), FieldSession, "abc")
	l.Infow("hello")
	Cleanup()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "lsp", entry["logger"])
	assert.Equal(t, "abc", entry[FieldSession])
}
