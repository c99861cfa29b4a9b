package session

import (
	"os"
	"os/exec"
	"os/signal"

	"github.com/hostdeck/hostdeck/internal/proctop"
)

// handOff gives a live tool the real terminal and blocks until it exits.
//
// Ctrl-C must reach the tool, not us: interrupts are ignored in this
// process for the duration and restored on every return path. The tool's
// exit status is deliberately discarded; an interrupted or crashed tool
// still returns control to the refresh loop.
func (c *Controller) handOff(name string, args ...string) {
	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)

	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		c.slog.Log("warn", "live tool "+name+" exited: "+err.Error())
	}
}

// processMonitor prefers the host's own monitor and falls back to the
// built-in viewer when neither htop nor top is installed.
func (c *Controller) processMonitor() {
	for _, tool := range []string{"htop", "top"} {
		if c.runner.Installed(tool) {
			c.slog.Log("info", "handing off to "+tool)
			c.handOff(tool)
			return
		}
	}

	c.slog.Log("info", "handing off to built-in process viewer")
	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)
	if err := proctop.Run(); err != nil {
		c.slog.Log("warn", "built-in process viewer exited: "+err.Error())
	}
}

// logTail follows the system log. less is the pager fallback for hosts
// without a live follower target.
func (c *Controller) logTail() {
	for _, path := range []string{"/var/log/syslog", "/var/log/messages"} {
		if _, err := os.Stat(path); err == nil {
			c.slog.Log("info", "tailing "+path)
			c.handOff("tail", "-n", "50", "-f", path)
			return
		}
	}

	if c.runner.Installed("journalctl") {
		c.slog.Log("info", "following journalctl")
		c.handOff("journalctl", "-f")
		return
	}

	c.slog.Log("info", "paging session log")
	c.handOff("less", "+G", c.slog.Path())
}

// connectionView shows listening sockets. watch keeps it live where
// available; otherwise a single listing is printed and the next redraw
// replaces it.
func (c *Controller) connectionView() {
	if c.runner.Installed("watch") {
		c.handOff("watch", "-n", "2", "ss", "-tulpn")
		return
	}
	c.handOff("ss", "-tulpn")
}
