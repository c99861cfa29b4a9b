package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostdeck/hostdeck/internal/errors"
)

func TestSessionLogLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")

	slog, err := OpenSessionLog(path, "")
	require.NoError(t, err)
	defer slog.Close()

	slog.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	}
	slog.Log("info", "session started")
	slog.Log("error", "probe failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2026-03-01 12:30:45 - (info) - session started\n"+
			"2026-03-01 12:30:45 - (error) - probe failed\n",
		string(data))
}

func TestSessionLogFallback(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind root")
	}
	dir := t.TempDir()
	readonly := filepath.Join(dir, "ro")
	require.NoError(t, os.Mkdir(readonly, 0o500))
	fallback := filepath.Join(dir, "fallback.log")

	slog, err := OpenSessionLog(filepath.Join(readonly, "deny", "session.log"), fallback)
	require.NoError(t, err)
	defer slog.Close()
	assert.Equal(t, fallback, slog.Path())
}

func TestSessionLogBothLocationsFail(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind root")
	}
	dir := t.TempDir()
	readonly := filepath.Join(dir, "ro")
	require.NoError(t, os.Mkdir(readonly, 0o500))

	_, err := OpenSessionLog(
		filepath.Join(readonly, "a", "session.log"),
		filepath.Join(readonly, "b", "session.log"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrLog))
}

func TestSessionLogNilSafe(t *testing.T) {
	var slog *SessionLog
	slog.Log("info", "ignored")
	assert.NoError(t, slog.Close())
}

func TestSessionLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")

	first, err := OpenSessionLog(path, "")
	require.NoError(t, err)
	first.Log("info", "one")
	require.NoError(t, first.Close())

	second, err := OpenSessionLog(path, "")
	require.NoError(t, err)
	second.Log("info", "two")
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "one")
	assert.Contains(t, string(data), "two")
}
