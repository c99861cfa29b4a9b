package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLoggerCaptures(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("starting %s", "probe")
	l.Info("sampled")
	l.Warn("slow probe")
	l.Error("probe failed: %v", "timeout")

	assert.Len(t, l.Messages, 4)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "starting probe", l.Messages[0].Message)
	assert.Equal(t, "probe failed: timeout", l.Messages[3].Message)

	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("fatal"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := Noop()

	// Must not panic or emit; nothing to assert beyond surviving the calls.
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestEnvLoggerDebugGated(t *testing.T) {
	t.Setenv("HOSTDECK_DEBUG", "")
	l := NewEnvLogger("[test]")
	l.Debug("suppressed")

	t.Setenv("HOSTDECK_DEBUG", "1")
	l.Debug("emitted")
}
