// Package render lays the per-cycle probe results out as a fixed-geometry
// terminal panel. Render is a pure function: identical inputs produce
// byte-identical output, and anything time-dependent (the clock line)
// arrives through Options.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hostdeck/hostdeck/internal/certwatch"
	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/fingerprint"
	"github.com/hostdeck/hostdeck/internal/sampler"
	"github.com/hostdeck/hostdeck/internal/services"
	"github.com/hostdeck/hostdeck/internal/util"
)

const (
	// LabelWidth is the left-column label field of every section row.
	LabelWidth = 14

	// ValueWidth is the left value column; the midline separator sits at
	// a constant column because both fields are padded, never measured.
	ValueWidth = 26

	// PanelWidth is the divider and title bar width.
	PanelWidth = 86
)

// Options carries the render inputs that are not probe data.
type Options struct {
	Version    string
	Timestamp  string
	Thresholds config.ThresholdConfig
}

// Render builds the full panel.
func Render(fp *fingerprint.Fingerprint, snap *sampler.Snapshot, svcs []services.Status, sec services.SecuritySummary, certs certwatch.Summary, opts Options) string {
	var b strings.Builder

	header(&b, fp, opts)
	systemSection(&b, fp)
	resourceSection(&b, snap, opts.Thresholds)
	serviceSection(&b, svcs)
	securitySection(&b, sec)
	certSection(&b, certs, opts.Thresholds)
	menuBar(&b)

	return b.String()
}

func divider(b *strings.Builder) {
	b.WriteString(styleDivider.Render(strings.Repeat("━", PanelWidth)))
	b.WriteString("\n")
}

func sectionTitle(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
}

// row writes one two-column grid line. Values are truncated and padded to
// their declared widths so variable-length data never shifts the midline.
func row(b *strings.Builder, leftLabel, leftValue, rightLabel, rightValue string) {
	b.WriteString("  ")
	b.WriteString(styleLabel.Render(util.PadRight(util.Truncate(leftLabel, LabelWidth), LabelWidth)))
	b.WriteString(util.PadRight(util.Truncate(leftValue, ValueWidth), ValueWidth))
	if rightLabel != "" {
		b.WriteString("  ")
		b.WriteString(styleLabel.Render(util.PadRight(util.Truncate(rightLabel, LabelWidth), LabelWidth)))
		b.WriteString(util.Truncate(rightValue, ValueWidth))
	}
	b.WriteString("\n")
}

// wideRow writes a single full-width line under one label.
func wideRow(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(styleLabel.Render(util.PadRight(util.Truncate(label, LabelWidth), LabelWidth)))
	b.WriteString(value)
	b.WriteString("\n")
}

func header(b *strings.Builder, fp *fingerprint.Fingerprint, opts Options) {
	b.WriteString(styleTitle.Render("hostdeck"))
	b.WriteString(" ")
	b.WriteString(styleInfo.Render(opts.Version))
	b.WriteString("  ")
	b.WriteString(styleMuted.Render(fp.Hostname))
	b.WriteString("  ")
	b.WriteString(styleMuted.Render(opts.Timestamp))
	b.WriteString("\n")
	divider(b)
}

func systemSection(b *strings.Builder, fp *fingerprint.Fingerprint) {
	sectionTitle(b, "SYSTEM")
	row(b, "OS", fp.OS, "Kernel", fp.Kernel)
	row(b, "CPU", fmt.Sprintf("%s (%d cores)", fp.CPUModel, fp.Cores), "Disk type", fp.DiskMedia)
	row(b, "Public IP", fp.PublicIP, "Local IP", fp.LocalIP)
	row(b, "Platform", fp.Virtualization, "Arch", fp.Arch)

	if len(fp.Tools) > 0 {
		names := make([]string, 0, len(fp.Tools))
		for name := range fp.Tools {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			if v := fp.Tools[name]; v != "" {
				parts = append(parts, name+" "+v)
			} else {
				parts = append(parts, name)
			}
		}
		wideRow(b, "Tooling", styleMuted.Render(strings.Join(parts, "  ")))
	}
}

func resourceSection(b *strings.Builder, snap *sampler.Snapshot, th config.ThresholdConfig) {
	sectionTitle(b, "RESOURCES")

	gaugeRow(b, "CPU", snap.CPUPercent, th.CPU, "")
	row(b, "Load avg", snap.LoadAvg, "Processes", snap.Procs)
	wideRow(b, "Uptime", snap.Uptime)
	gaugeRow(b, "Memory", snap.MemPercent, th.Mem, snap.MemUsed+" / "+snap.MemTotal)
	gaugeRow(b, "Swap", snap.SwapPercent, th.Swap, snap.SwapUsed+" / "+snap.SwapTotal)
	gaugeRow(b, "Disk /", snap.DiskPercent, th.Disk, snap.DiskUsed+" / "+snap.DiskTotal)
}

func gaugeRow(b *strings.Builder, label string, pct int, band config.Band, detail string) {
	b.WriteString("  ")
	b.WriteString(styleLabel.Render(util.PadRight(label, LabelWidth)))
	b.WriteString(Gauge(pct, band.Warn, band.Crit))
	b.WriteString(" ")
	b.WriteString(bandStyle(sampler.ClampPercent(pct), band.Warn, band.Crit).Render(fmt.Sprintf("%3d%%", sampler.ClampPercent(pct))))
	if detail != "" {
		b.WriteString("  ")
		b.WriteString(styleMuted.Render(detail))
	}
	b.WriteString("\n")
}

func serviceSection(b *strings.Builder, svcs []services.Status) {
	sectionTitle(b, "SERVICES")
	for _, s := range svcs {
		wideRow(b, s.Display, statusLabel(s))
	}
}

// statusLabel maps a classified status onto its colored panel text. A
// NotInstalled service renders muted with no version or annotation.
func statusLabel(s services.Status) string {
	switch s.State {
	case services.Running:
		label := styleOK.Render(s.State.String())
		if s.Version != "" {
			label += " " + styleMuted.Render("v"+s.Version)
		}
		if s.Annotation != "" {
			label += "  " + styleInfo.Render(s.Annotation)
		}
		return label
	case services.Offline:
		label := styleCrit.Render(s.State.String())
		if s.Version != "" {
			label += " " + styleMuted.Render("v"+s.Version)
		}
		return label
	default:
		return styleMuted.Render(s.State.String())
	}
}

func securitySection(b *strings.Builder, sec services.SecuritySummary) {
	sectionTitle(b, "SECURITY")
	row(b, "Firewall", plainStatus(sec.Firewall), "Fail2ban", plainStatus(sec.Fail2ban))
	row(b, "SSH root", hardeningLabel(sec.SSH), "Logging", yesNo(sec.LoggingOK, "adequate", "missing"))
	wideRow(b, "Backup", yesNo(sec.BackupMarker, "marker present", "no recent marker"))
}

// plainStatus is statusLabel without padding-hostile styling widths; the
// security grid reuses the two-column row, so the value must stay short.
func plainStatus(s services.Status) string {
	label := s.State.String()
	if s.State != services.NotInstalled && s.Annotation != "" {
		label += " (" + s.Annotation + ")"
	}
	return label
}

func hardeningLabel(h services.HardeningLevel) string {
	switch h {
	case services.HardeningHardened:
		return styleOK.Render(h.String())
	case services.HardeningModerate:
		return styleWarn.Render(h.String())
	case services.HardeningWeak:
		return styleCrit.Render(h.String())
	default:
		return styleMuted.Render(h.String())
	}
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return styleOK.Render(yes)
	}
	return styleWarn.Render(no)
}

func certSection(b *strings.Builder, certs certwatch.Summary, th config.ThresholdConfig) {
	sectionTitle(b, "CERTIFICATES")
	if !certs.Installed {
		wideRow(b, "TLS certs", styleMuted.Render("NOT INSTALLED"))
		return
	}

	expiry := fmt.Sprintf("%d in store, nearest expiry in %d %s",
		certs.Count, certs.MinDaysLeft, util.Pluralize(certs.MinDaysLeft, "day", "days"))
	switch {
	case certs.MinDaysLeft <= th.CertCritDays:
		expiry = styleCrit.Render(expiry)
	case certs.MinDaysLeft <= th.CertWarnDays:
		expiry = styleWarn.Render(expiry)
	default:
		expiry = styleOK.Render(expiry)
	}
	wideRow(b, "TLS certs", expiry)
	wideRow(b, "Renewal", yesNo(certs.AutoRenew, "automatic", "not scheduled"))
}

func menuBar(b *strings.Builder) {
	b.WriteString("\n")
	divider(b)
	entries := []struct{ key, text string }{
		{"r", "redraw"},
		{"p", "processes"},
		{"l", "logs"},
		{"n", "network"},
		{"1-9", "modules"},
		{"q", "quit"},
	}
	var parts []string
	for _, e := range entries {
		parts = append(parts, styleMenuKey.Render("["+e.key+"]")+" "+styleMenuText.Render(e.text))
	}
	b.WriteString("  " + strings.Join(parts, "   ") + "\n")
}
