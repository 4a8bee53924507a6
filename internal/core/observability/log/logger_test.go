package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := Wrap(zap.New(core), LevelDebug)

	l.With(String("round", "r-1")).Warn("duplicate spawn",
		Int("participant", 3),
		Duration("delay", 2*time.Second),
		Error(errors.New("boom")),
		Strings("icons", []string{"player", "swords"}),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "r-1", ctx["round"])
	assert.EqualValues(t, 3, ctx["participant"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "duplicate spawn", entries[0].Message)
}

func TestLoggerLevelIsShared(t *testing.T) {
	l := NewNop()
	child := l.With(String("k", "v"))
	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, child.GetLevel())
}
