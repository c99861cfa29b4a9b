// Package fingerprint collects the slowly-changing description of the host:
// OS, kernel, CPU, disk media, addresses, and installed tool versions.
// Collection runs once per session; the result is immutable afterwards.
package fingerprint

import (
	"os"
	"strings"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/probe"
	"github.com/hostdeck/hostdeck/internal/util"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// Sentinel values for fields whose probe failed. Each field degrades
// independently; one dead probe never aborts the rest.
const (
	UnknownOS      = "Unknown Linux"
	Unknown        = "Unknown"
	BlockedOrFail  = "Blocked/Fail"
	DedicatedLabel = "Dedicated"
)

// MaxFieldWidth is the widest any fingerprint value may be. Values are
// truncated here, before storage, so the renderer never has to measure.
const MaxFieldWidth = 34

// Fingerprint holds one-time host facts. Created once per session and
// passed by reference to the renderer; never mutated.
type Fingerprint struct {
	OS             string
	Kernel         string
	CPUModel       string
	Cores          int
	DiskMedia      string
	PublicIP       string
	LocalIP        string
	Hostname       string
	Arch           string
	Virtualization string

	// Tools maps tool name to detected version. Absent key = not installed.
	Tools map[string]string
}

// Collect gathers every fingerprint field. Individual failures degrade to
// sentinels; Collect itself never fails.
func Collect(r *probe.Runner, cfg *config.Config) *Fingerprint {
	fp := &Fingerprint{
		OS:             readOSRelease("/etc/os-release"),
		Kernel:         Unknown,
		CPUModel:       Unknown,
		DiskMedia:      Unknown,
		LocalIP:        Unknown,
		Hostname:       Unknown,
		Arch:           Unknown,
		Virtualization: Unknown,
	}

	if info, err := host.Info(); err == nil {
		fp.Hostname = util.FirstNonEmpty(Unknown, info.Hostname)
		fp.Kernel = util.FirstNonEmpty(Unknown, info.KernelVersion)
		fp.Arch = util.FirstNonEmpty(Unknown, info.KernelArch)
		fp.Virtualization = normalizeVirt(info.VirtualizationSystem)
	}

	fp.Virtualization = detectVirt(r, fp.Virtualization)
	if fp.Kernel == Unknown {
		if out, ok := r.Run("uname", "-r"); ok {
			fp.Kernel = out
		}
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		fp.CPUModel = util.FirstNonEmpty(Unknown, strings.TrimSpace(infos[0].ModelName))
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		fp.Cores = n
	}

	fp.DiskMedia = diskMediaClass()
	fp.PublicIP = lookupPublicIP(cfg.Probe.IPEndpoints)
	fp.LocalIP = localIP()
	fp.Tools = detectTools(r, cfg.Services)

	fp.truncateAll()
	return fp
}

// readOSRelease parses the PRETTY_NAME from an os-release file.
func readOSRelease(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownOS
	}
	for _, line := range strings.Split(string(data), "\n") {
		if name, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			name = strings.Trim(strings.TrimSpace(name), `"`)
			if name != "" {
				return name
			}
		}
	}
	return UnknownOS
}

// detectVirt asks systemd-detect-virt, which is more specific than the
// kernel self-report when both are available. The detector prints "none"
// and exits non-zero on bare metal, so the exit status cannot gate the
// answer. An absent detector or an empty answer keeps the fallback.
func detectVirt(r *probe.Runner, fallback string) string {
	if out, ok := r.RunAnyExit("systemd-detect-virt"); ok && out != "" {
		return normalizeVirt(out)
	}
	return fallback
}

// normalizeVirt maps a virtualization detector answer to a display label.
// Bare metal reports "none", which operators read better as "Dedicated".
func normalizeVirt(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Unknown
	}
	if strings.EqualFold(v, "none") {
		return DedicatedLabel
	}
	return util.Capitalize(v)
}

// truncateAll enforces MaxFieldWidth on every textual field.
func (fp *Fingerprint) truncateAll() {
	fp.OS = util.Truncate(fp.OS, MaxFieldWidth)
	fp.Kernel = util.Truncate(fp.Kernel, MaxFieldWidth)
	fp.CPUModel = util.Truncate(fp.CPUModel, MaxFieldWidth)
	fp.DiskMedia = util.Truncate(fp.DiskMedia, MaxFieldWidth)
	fp.PublicIP = util.Truncate(fp.PublicIP, MaxFieldWidth)
	fp.LocalIP = util.Truncate(fp.LocalIP, MaxFieldWidth)
	fp.Hostname = util.Truncate(fp.Hostname, MaxFieldWidth)
	fp.Arch = util.Truncate(fp.Arch, MaxFieldWidth)
	fp.Virtualization = util.Truncate(fp.Virtualization, MaxFieldWidth)
	for name, version := range fp.Tools {
		fp.Tools[name] = util.Truncate(version, MaxFieldWidth)
	}
}
