package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hostdeck/hostdeck/internal/errors"
)

// SessionLog is an append-only line sink for the dashboard session.
// Every line has the format:
//
//	<timestamp> - (<status>) - <message>
//
// Writes are best-effort: once opened, a failed write never surfaces as an
// error, because a broken log sink must not take the session down with it.
type SessionLog struct {
	mu   sync.Mutex
	file *os.File
	path string
	now  func() time.Time
}

// timestampLayout matches the session log line format.
const timestampLayout = "2006-01-02 15:04:05"

// OpenSessionLog opens (creating if needed) the session log at primary,
// falling back to fallback when the primary location is not writable.
// Failing both locations is a fatal startup condition.
func OpenSessionLog(primary, fallback string) (*SessionLog, error) {
	for _, path := range []string{primary, fallback} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			continue
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			continue
		}
		return &SessionLog{file: f, path: path, now: time.Now}, nil
	}

	return nil, errors.New(errors.ErrLog,
		fmt.Sprintf("Cannot open log file at %s or %s", primary, fallback),
		"Check directory permissions, or point log.path at a writable location")
}

// Path returns the location the log actually opened at.
func (s *SessionLog) Path() string {
	return s.path
}

// Log appends one formatted line. Write failures are swallowed.
func (s *SessionLog) Log(status, message string) {
	if s == nil || s.file == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	line := fmt.Sprintf("%s - (%s) - %s\n", s.now().Format(timestampLayout), status, message)
	_, _ = s.file.WriteString(line)
}

// Close closes the underlying file.
func (s *SessionLog) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
