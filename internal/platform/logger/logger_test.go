package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestWith_MergesFieldsAndSkipsBlankKeys(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With(map[string]any{"request_id": "r-1"})

	l.Warn("llm failed", map[string]any{
		"error": errors.New("boom"),
		"  ":    "ignored",
		"query": "cheap dog",
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "llm failed", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "r-1", ctx["request_id"])
	assert.Equal(t, "cheap dog", ctx["query"])
	assert.Equal(t, "boom", ctx["error"])
	assert.NotContains(t, ctx, "  ")
}

func TestNew_RespectsLevel(t *testing.T) {
	l, err := New(Options{Level: Error, Format: FormatJSON, App: "petstore-catalog"})
	require.NoError(t, err)
	require.NotNil(t, l)

	zl, ok := l.(*zapLogger)
	require.True(t, ok)
	assert.False(t, zl.z.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zl.z.Core().Enabled(zapcore.ErrorLevel))
}
