// Package sampler takes the per-cycle measurement of fast-changing host
// state: CPU utilization, memory, swap, disk, process count, uptime, and
// load average. Every call to Sample produces a fresh Snapshot; nothing is
// retained between cycles.
package sampler

import (
	"fmt"
	"time"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sentinel values for metrics whose source failed this cycle.
const (
	UnknownValue = "Unknown"
	NotAvailable = "N/A"
)

// Snapshot is one refresh cycle's resource measurement. Percentages are
// integers clamped to [0,100]; size strings keep their unit suffixes.
type Snapshot struct {
	CPUPercent int

	LoadAvg string
	Procs   string
	Uptime  string

	MemTotal   string
	MemUsed    string
	MemPercent int

	SwapTotal   string
	SwapUsed    string
	SwapPercent int

	DiskTotal   string
	DiskUsed    string
	DiskPercent int
}

// Sampler measures one snapshot per call. Each metric degrades to its
// sentinel independently; a failed probe never aborts the cycle.
type Sampler struct {
	gap   time.Duration
	mount string

	// sleep is swappable so tests don't pay the CPU sample gap.
	sleep func(time.Duration)
}

// New creates a Sampler using the configured CPU sample gap and the root
// mount for disk usage.
func New(cfg *config.Config) *Sampler {
	gap := cfg.Probe.CPUSampleGap
	if gap <= 0 {
		gap = 200 * time.Millisecond
	}
	return &Sampler{gap: gap, mount: "/", sleep: time.Sleep}
}

// Sample measures everything and returns a fresh Snapshot.
func (s *Sampler) Sample() *Snapshot {
	snap := &Snapshot{
		LoadAvg:   NotAvailable,
		Procs:     UnknownValue,
		Uptime:    UnknownValue,
		MemTotal:  NotAvailable,
		MemUsed:   NotAvailable,
		SwapTotal: NotAvailable,
		SwapUsed:  NotAvailable,
		DiskTotal: NotAvailable,
		DiskUsed:  NotAvailable,
	}

	snap.CPUPercent = s.cpuPercent()

	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		used := saturatingSub(vm.Total, vm.Available)
		snap.MemTotal = FormatBytes(vm.Total)
		snap.MemUsed = FormatBytes(used)
		snap.MemPercent = Percent(used, vm.Total)
	}

	if sw, err := mem.SwapMemory(); err == nil && sw != nil {
		used := saturatingSub(sw.Total, sw.Free)
		snap.SwapTotal = FormatBytes(sw.Total)
		snap.SwapUsed = FormatBytes(used)
		snap.SwapPercent = Percent(used, sw.Total)
	}

	if du, err := disk.Usage(s.mount); err == nil && du != nil {
		snap.DiskTotal = FormatBytes(du.Total)
		snap.DiskUsed = FormatBytes(du.Used)
		snap.DiskPercent = Percent(du.Used, du.Total)
	}

	if avg, err := load.Avg(); err == nil && avg != nil {
		snap.LoadAvg = fmt.Sprintf("%.2f %.2f %.2f", avg.Load1, avg.Load5, avg.Load15)
	}

	if info, err := host.Info(); err == nil && info != nil {
		snap.Procs = fmt.Sprintf("%d", info.Procs)
		snap.Uptime = FormatUptime(info.Uptime)
	}

	return snap
}

// cpuPercent computes utilization from two kernel counter readings taken a
// short gap apart.
func (s *Sampler) cpuPercent() int {
	first, err := cpu.Times(false)
	if err != nil || len(first) == 0 {
		return 0
	}
	s.sleep(s.gap)
	second, err := cpu.Times(false)
	if err != nil || len(second) == 0 {
		return 0
	}
	return Utilization(first[0], second[0])
}

// Utilization computes busy percentage from the delta of two aggregate CPU
// counter readings. Idle includes iowait. A zero or negative total delta
// (idle counters, frozen clock, counter reset) yields 0, never a division
// by zero or a negative result.
func Utilization(prev, curr cpu.TimesStat) int {
	prevIdle := prev.Idle + prev.Iowait
	currIdle := curr.Idle + curr.Iowait

	totalDelta := totalOf(curr) - totalOf(prev)
	idleDelta := currIdle - prevIdle

	if totalDelta <= 0 {
		return 0
	}
	return ClampPercent(int((totalDelta - idleDelta) * 100 / totalDelta))
}

// totalOf sums all counter fields of an aggregate CPU reading.
func totalOf(t cpu.TimesStat) float64 {
	return t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
}

// Percent computes used*100/total as a clamped integer, 0 when total is 0.
// Used exceeding total (source-counter skew) clamps to 100.
func Percent(used, total uint64) int {
	if total == 0 {
		return 0
	}
	return ClampPercent(int(used * 100 / total))
}

// ClampPercent forces a value into [0,100].
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// saturatingSub protects against counter skew where used momentarily
// exceeds total.
func saturatingSub(total, sub uint64) uint64 {
	if sub > total {
		return 0
	}
	return total - sub
}

// FormatBytes renders a byte count with a binary unit suffix, matching
// what operators are used to from disk-usage tools.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatUptime renders seconds of uptime as "Nd Nh Nm".
func FormatUptime(seconds uint64) string {
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
