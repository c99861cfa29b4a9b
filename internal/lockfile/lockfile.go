// Package lockfile guards against concurrent dashboard sessions on the
// same host with an advisory file lock. The lock is non-blocking: a
// second instance fails fast instead of queueing behind the first.
package lockfile

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/errors"
)

// Lock is an acquired instance lock. Release it on shutdown; the kernel
// drops the flock automatically if the process dies first.
type Lock struct {
	Path string
	Info *Info
	file *os.File
}

// Acquire takes the instance lock, preferring the primary path and
// falling back to the secondary when the primary's directory is not
// writable (unprivileged runs, missing /run).
//
// Security invariants, checked before any lock call: the path must not
// be a symbolic link, and a pre-existing lock file must belong to the
// invoking user.
func Acquire(cfg config.LockConfig) (*Lock, error) {
	l, err := acquirePath(cfg.Path)
	if err == nil {
		return l, nil
	}
	if errors.IsCode(err, errors.ErrLock) || cfg.FallbackPath == "" {
		return nil, err
	}
	return acquirePath(cfg.FallbackPath)
}

func acquirePath(path string) (*Lock, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|syscall.O_NOFOLLOW, 0o600)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPriv,
			fmt.Sprintf("Cannot open lock file %s", path),
			"Check directory permissions or configure a writable lock path")
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		holder := readHolder(f)
		f.Close()
		return nil, errors.New(errors.ErrLock,
			"Another hostdeck session is already running",
			fmt.Sprintf("Lock %s is held by %s; quit that session first", path, holder))
	}

	info := NewInfo()
	writeInfo(f, info)

	return &Lock{Path: path, Info: info, file: f}, nil
}

// checkPath enforces the symlink and ownership invariants on a
// pre-existing lock path. A missing file is fine.
func checkPath(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrPriv,
			fmt.Sprintf("Cannot inspect lock path %s", path), "")
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		return errors.New(errors.ErrLock,
			fmt.Sprintf("Lock path %s is a symbolic link", path),
			"Remove the link; hostdeck refuses to follow it")
	}

	if st, ok := fi.Sys().(*syscall.Stat_t); ok && st.Uid != uint32(os.Getuid()) {
		return errors.New(errors.ErrLock,
			fmt.Sprintf("Lock file %s is owned by uid %d, not you", path, st.Uid),
			"Remove the foreign lock file or run as its owner")
	}

	return nil
}

// writeInfo replaces the lock file contents with the holder record.
// Best effort: the flock is the lock, the record is diagnostics.
func writeInfo(f *os.File, info *Info) {
	data, err := info.Marshal()
	if err != nil {
		return
	}
	f.Truncate(0)
	f.Seek(0, 0)
	f.Write(append(data, '\n'))
	f.Sync()
}

// readHolder reads the holder record from a contended lock file.
func readHolder(f *os.File) string {
	buf := make([]byte, 512)
	n, err := f.ReadAt(buf, 0)
	if n == 0 && err != nil {
		return "an unknown process"
	}
	info, err := ParseInfo(buf[:n])
	if err != nil {
		return "an unknown process"
	}
	return info.String()
}

// Release drops the flock and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil
	if rmErr := os.Remove(l.Path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
