// Package session owns the dashboard lifecycle: the single-instance
// lock, the refresh loop, and dispatch of operator input to either a
// redraw or a terminal hand-off.
package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/hostdeck/hostdeck/internal/certwatch"
	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/errors"
	"github.com/hostdeck/hostdeck/internal/fingerprint"
	"github.com/hostdeck/hostdeck/internal/lockfile"
	"github.com/hostdeck/hostdeck/internal/logger"
	"github.com/hostdeck/hostdeck/internal/probe"
	"github.com/hostdeck/hostdeck/internal/render"
	"github.com/hostdeck/hostdeck/internal/sampler"
	"github.com/hostdeck/hostdeck/internal/services"
)

// Controller runs the interactive dashboard session. Strictly
// sequential: one logical thread, one refresh cycle at a time, every
// cycle's data recomputed from scratch and discarded.
type Controller struct {
	cfg     *config.Config
	version string

	runner   *probe.Runner
	sampler  *sampler.Sampler
	resolver *services.Resolver
	certs    *certwatch.Monitor

	slog *logger.SessionLog
	lock *lockfile.Lock
	fp   *fingerprint.Fingerprint

	in   *bufio.Reader
	out  io.Writer
	term *termenv.Output

	// now feeds the panel timestamp; swappable for deterministic tests.
	now func() time.Time
}

// New wires a Controller from config. Nothing is probed yet; startup
// checks run in Run.
func New(cfg *config.Config, version string) *Controller {
	r := probe.New(cfg.Probe.Timeout)
	return &Controller{
		cfg:      cfg,
		version:  version,
		runner:   r,
		sampler:  sampler.New(cfg),
		resolver: services.NewResolver(r),
		certs:    certwatch.New(r, cfg),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		term:     termenv.NewOutput(os.Stdout),
		now:      time.Now,
	}
}

// Run executes the whole session: startup checks, the one-time
// fingerprint, then the refresh loop until the operator quits.
//
// A returned error is always a fatal startup condition; once the loop
// starts, per-probe failures degrade to sentinels and never surface here.
func (c *Controller) Run() error {
	if c.cfg.RequireRoot && os.Geteuid() != 0 {
		return errors.New(errors.ErrPriv,
			"hostdeck needs root to inspect services and certificates",
			"Re-run with sudo, or set require_root: false to accept degraded data")
	}

	slog, err := logger.OpenSessionLog(c.cfg.Log.Path, c.cfg.Log.FallbackPath)
	if err != nil {
		return err
	}
	c.slog = slog
	defer c.slog.Close()

	lock, err := lockfile.Acquire(c.cfg.Lock)
	if err != nil {
		c.slog.Log("error", "startup aborted: "+err.Error())
		return err
	}
	c.lock = lock
	defer c.lock.Release()

	c.slog.Log("info", "session started by "+lock.Info.String())

	// One fingerprint per session; it never changes while we run.
	c.fp = fingerprint.Collect(c.runner, c.cfg)

	c.loop()

	c.slog.Log("info", "session ended")
	return nil
}

// loop is the refresh cycle. Every iteration recomputes all per-cycle
// data before the renderer sees any of it; there is no partial read.
func (c *Controller) loop() {
	var notice string

	for {
		snap := c.sampler.Sample()
		svcs := c.resolver.Resolve(c.cfg.Services)
		sec := c.resolver.Security()
		certs := c.certs.Scan()

		panel := render.Render(c.fp, snap, svcs, sec, certs, render.Options{
			Version:    c.version,
			Timestamp:  c.now().Format("2006-01-02 15:04:05"),
			Thresholds: c.cfg.Thresholds,
		})

		c.term.ClearScreen()
		fmt.Fprint(c.out, panel)
		if notice != "" {
			fmt.Fprintln(c.out, notice)
			notice = ""
		}
		fmt.Fprint(c.out, "> ")

		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			// Stdin is gone (EOF or closed terminal). Treat as quit.
			c.slog.Log("warn", "input stream closed, ending session")
			return
		}

		action, module := Dispatch(strings.TrimRight(line, "\n"))
		switch action {
		case ActionQuit:
			c.slog.Log("info", "operator quit")
			return
		case ActionRedraw:
			// Next iteration redraws with fresh data.
		case ActionProcesses:
			c.processMonitor()
		case ActionLogs:
			c.logTail()
		case ActionConnections:
			c.connectionView()
		case ActionModule:
			c.slog.Log("info", fmt.Sprintf("module %d requested", module))
			notice = fmt.Sprintf("module %d is under construction", module)
		case ActionInvalid:
			notice = "invalid input; press Enter to redraw or q to quit"
		}
	}
}

// Snapshot renders one panel without a lock, a session log, or a loop.
// Serves the non-interactive `hostdeck snapshot` command.
func Snapshot(cfg *config.Config, version string, out io.Writer) {
	c := New(cfg, version)
	c.fp = fingerprint.Collect(c.runner, cfg)

	snap := c.sampler.Sample()
	svcs := c.resolver.Resolve(cfg.Services)
	sec := c.resolver.Security()
	certs := c.certs.Scan()

	fmt.Fprint(out, render.Render(c.fp, snap, svcs, sec, certs, render.Options{
		Version:    version,
		Timestamp:  c.now().Format("2006-01-02 15:04:05"),
		Thresholds: cfg.Thresholds,
	}))
}
