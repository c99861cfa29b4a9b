// Package probe runs external inspection commands without ever letting them
// hang or crash the session. It is the only place in hostdeck that shells
// out; every other package goes through a Runner.
package probe

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/hostdeck/hostdeck/internal/logger"
)

// DefaultTimeout is the hard wall-clock limit for a single probe command.
const DefaultTimeout = 2 * time.Second

// pipeWaitDelay bounds how long Wait may linger on the output pipes after
// the child exits or the timeout fires. A target that forks a background
// process leaves the pipe's write end open in the grandchild; without this
// bound the read side blocks for the grandchild's whole lifetime.
const pipeWaitDelay = 500 * time.Millisecond

// Runner executes inspection commands with a bounded timeout and a
// missing-binary fast path. A zero Runner is not usable; construct with New.
type Runner struct {
	timeout time.Duration
	log     logger.Logger

	// lookPath is swappable for tests.
	lookPath func(name string) (string, error)
}

// New creates a Runner with the given timeout. A non-positive timeout falls
// back to DefaultTimeout.
func New(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		timeout:  timeout,
		log:      logger.NewEnvLogger("[probe]"),
		lookPath: exec.LookPath,
	}
}

// NewStubbed creates a Runner whose PATH lookups go through the given
// function instead of the real PATH. Test use only.
func NewStubbed(lookPath func(name string) (string, error)) *Runner {
	r := New(DefaultTimeout)
	r.lookPath = lookPath
	return r
}

// Installed reports whether the named binary resolves on PATH.
func (r *Runner) Installed(name string) bool {
	_, err := r.lookPath(name)
	return err == nil
}

// Run executes a command and returns its trimmed stdout.
//
// The boolean result is the only failure signal: a missing binary, a
// non-zero exit, or a timeout all come back as ("", false). Callers must
// treat "no output" as an expected outcome, not an anomaly.
//
// Stdin is bound to an empty source so a probe can never block waiting on
// a prompt, and the context kills anything that outlives the timeout.
func (r *Runner) Run(name string, args ...string) (string, bool) {
	if _, err := r.lookPath(name); err != nil {
		r.log.Debug("%s: not on PATH", name)
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader("")
	cmd.WaitDelay = pipeWaitDelay

	out, err := cmd.Output()
	if err != nil {
		r.log.Debug("%s %s: %v", name, strings.Join(args, " "), err)
		return "", false
	}

	return strings.TrimSpace(string(out)), true
}

// RunAnyExit is Run without the zero-exit requirement: trimmed stdout is
// returned whenever the command actually ran, even on a non-zero exit.
// Some detectors answer through their exit status and still print the
// answer (systemd-detect-virt prints "none" and exits 1 on bare metal).
// Missing binaries and timeouts still come back as ("", false).
func (r *Runner) RunAnyExit(name string, args ...string) (string, bool) {
	if _, err := r.lookPath(name); err != nil {
		r.log.Debug("%s: not on PATH", name)
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader("")
	cmd.WaitDelay = pipeWaitDelay

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			r.log.Debug("%s %s: %v", name, strings.Join(args, " "), err)
			return "", false
		}
	}

	return strings.TrimSpace(string(out)), true
}

// RunCombined is Run but captures stdout and stderr together. Some version
// probes (nginx -v among them) print to stderr only.
func (r *Runner) RunCombined(name string, args ...string) (string, bool) {
	if _, err := r.lookPath(name); err != nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader("")
	cmd.WaitDelay = pipeWaitDelay

	out, err := cmd.CombinedOutput()
	if err != nil {
		r.log.Debug("%s %s: %v", name, strings.Join(args, " "), err)
		return "", false
	}

	return strings.TrimSpace(string(out)), true
}
