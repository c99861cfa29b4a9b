package services

import (
	"regexp"
	"strings"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/probe"
	"github.com/shirou/gopsutil/v4/process"
)

// versionPattern pulls the first semver-like substring from a version banner.
var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Resolver classifies tracked services. It holds no per-cycle state;
// resolving twice in a row with no system change yields identical results.
type Resolver struct {
	runner *probe.Runner

	// processTable is swappable for tests. Each entry is a process name
	// or command line.
	processTable func() []string
}

// NewResolver creates a Resolver backed by the given probe runner.
func NewResolver(r *probe.Runner) *Resolver {
	return &Resolver{
		runner:       r,
		processTable: liveProcessTable,
	}
}

// Resolve classifies every configured service for this cycle.
func (r *Resolver) Resolve(svcs []config.ServiceConfig) []Status {
	statuses := make([]Status, 0, len(svcs))
	for _, svc := range svcs {
		statuses = append(statuses, r.resolveOne(svc))
	}
	return statuses
}

// resolveOne applies the three-step classification:
// installed check, running check, then state assignment.
func (r *Resolver) resolveOne(svc config.ServiceConfig) Status {
	st := Status{Key: svc.Key, Display: svc.Display}

	if !r.installed(svc) {
		st.State = NotInstalled
		return st
	}

	if r.running(svc) {
		st.State = Running
	} else {
		st.State = Offline
	}

	st.Version = r.version(svc)
	return st
}

// installed is true when any known binary resolves, or when a composite
// service supplied a non-trivial process pattern to detect by.
func (r *Resolver) installed(svc config.ServiceConfig) bool {
	for _, bin := range svc.Binaries {
		if r.runner.Installed(bin) {
			return true
		}
	}
	return strings.TrimSpace(svc.ProcPattern) != ""
}

// running consults the init system first, short-circuiting on the first
// active unit variant, then falls back to a process-table scan.
func (r *Resolver) running(svc config.ServiceConfig) bool {
	if r.runner.Installed("systemctl") {
		for _, unit := range svc.Units {
			if out, ok := r.runner.Run("systemctl", "is-active", unit); ok && out == "active" {
				return true
			}
		}
	}
	return r.processMatch(svc)
}

// processMatch scans the process table. Composite services match by
// pattern (PHP-FPM's master process line); everything else matches a
// binary name exactly.
func (r *Resolver) processMatch(svc config.ServiceConfig) bool {
	procs := r.processTable()

	if pattern := strings.TrimSpace(svc.ProcPattern); pattern != "" {
		for _, p := range procs {
			if strings.Contains(p, pattern) {
				return true
			}
		}
		return false
	}

	for _, p := range procs {
		for _, bin := range svc.Binaries {
			if p == bin {
				return true
			}
		}
	}
	return false
}

// version probes the first binary with the configured version arguments.
func (r *Resolver) version(svc config.ServiceConfig) string {
	if len(svc.Binaries) == 0 || len(svc.VersionArgs) == 0 {
		return ""
	}
	out, ok := r.runner.RunCombined(svc.Binaries[0], svc.VersionArgs...)
	if !ok {
		return ""
	}
	return versionPattern.FindString(out)
}

// liveProcessTable reads names and command lines from the real process
// table. Failures degrade to an empty table; the unit query already had
// its chance.
func liveProcessTable() []string {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}
	table := make([]string, 0, len(procs)*2)
	for _, p := range procs {
		if name, err := p.Name(); err == nil && name != "" {
			table = append(table, name)
		}
		if cmdline, err := p.Cmdline(); err == nil && cmdline != "" {
			table = append(table, cmdline)
		}
	}
	return table
}
