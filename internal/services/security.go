package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hostdeck/hostdeck/internal/util"
)

// HardeningLevel classifies the SSH daemon's root-login posture.
type HardeningLevel int

const (
	HardeningUnknown HardeningLevel = iota
	HardeningWeak
	HardeningModerate
	HardeningHardened
)

func (h HardeningLevel) String() string {
	switch h {
	case HardeningWeak:
		return "Weak"
	case HardeningModerate:
		return "Moderate"
	case HardeningHardened:
		return "Hardened"
	default:
		return "Unknown"
	}
}

// SecuritySummary bundles the auxiliary per-cycle checks that sit beside
// the tracked-service list on the panel.
type SecuritySummary struct {
	Firewall     Status
	Fail2ban     Status
	SSH          HardeningLevel
	LoggingOK    bool
	BackupMarker bool
}

// SSHConfigPath is the daemon configuration the hardening check reads.
const SSHConfigPath = "/etc/ssh/sshd_config"

// BackupMarkerPath is touched by the backup action module on success.
const BackupMarkerPath = "/var/lib/hostdeck/last-backup"

// ufwRulePattern matches numbered or plain rule lines in ufw status output.
var ufwRulePattern = regexp.MustCompile(`(?m)^(\[\s*\d+\]\s+)?\S+\s+(ALLOW|DENY|LIMIT|REJECT)`)

// permitRootPattern finds the effective PermitRootLogin directive.
var permitRootPattern = regexp.MustCompile(`(?m)^\s*PermitRootLogin\s+(\S+)`)

// Security runs all auxiliary checks for this cycle.
func (r *Resolver) Security() SecuritySummary {
	return SecuritySummary{
		Firewall:     r.firewall(),
		Fail2ban:     r.fail2ban(),
		SSH:          sshHardening(SSHConfigPath),
		LoggingOK:    r.loggingAdequate(),
		BackupMarker: fileExists(BackupMarkerPath),
	}
}

// firewall reuses the installed/running skeleton and adds rule-count
// parsing from the status output.
func (r *Resolver) firewall() Status {
	st := Status{Key: "ufw", Display: "Firewall"}

	if !r.runner.Installed("ufw") {
		st.State = NotInstalled
		return st
	}

	out, ok := r.runner.RunCombined("ufw", "status")
	if !ok || !strings.Contains(out, "Status: active") {
		st.State = Offline
		return st
	}

	st.State = Running
	if n := len(ufwRulePattern.FindAllString(out, -1)); n > 0 {
		st.Annotation = fmt.Sprintf("%d %s", n, util.Pluralize(n, "rule", "rules"))
	}
	return st
}

// fail2ban checks the intrusion-prevention daemon and annotates with the
// active jail count when the client answers.
func (r *Resolver) fail2ban() Status {
	st := Status{Key: "fail2ban", Display: "Fail2ban"}

	if !r.runner.Installed("fail2ban-server") && !r.runner.Installed("fail2ban-client") {
		st.State = NotInstalled
		return st
	}

	if out, ok := r.runner.Run("systemctl", "is-active", "fail2ban"); !ok || out != "active" {
		st.State = Offline
		return st
	}
	st.State = Running

	if out, ok := r.runner.RunCombined("fail2ban-client", "status"); ok {
		if n := jailCount(out); n > 0 {
			st.Annotation = fmt.Sprintf("%d %s", n, util.Pluralize(n, "jail", "jails"))
		}
	}
	return st
}

// jailCount parses "Jail list: sshd, nginx-botsearch" from client output.
func jailCount(out string) int {
	for _, line := range strings.Split(out, "\n") {
		idx := strings.Index(line, "Jail list:")
		if idx < 0 {
			continue
		}
		list := strings.TrimSpace(line[idx+len("Jail list:"):])
		if list == "" {
			return 0
		}
		return len(strings.Split(list, ","))
	}
	return 0
}

// sshHardening reads the daemon config and classifies the root-login
// directive. An unreadable config stays Unknown rather than guessing.
func sshHardening(path string) HardeningLevel {
	data, err := os.ReadFile(path)
	if err != nil {
		return HardeningUnknown
	}

	match := permitRootPattern.FindSubmatch(data)
	if match == nil {
		// Modern OpenSSH defaults to prohibit-password when unset.
		return HardeningModerate
	}

	switch strings.ToLower(string(match[1])) {
	case "yes":
		return HardeningWeak
	case "no":
		return HardeningHardened
	case "prohibit-password", "without-password", "forced-commands-only":
		return HardeningModerate
	default:
		return HardeningUnknown
	}
}

// loggingAdequate is true when at least one logging subsystem is active.
func (r *Resolver) loggingAdequate() bool {
	for _, unit := range []string{"rsyslog", "syslog-ng", "systemd-journald"} {
		if out, ok := r.runner.Run("systemctl", "is-active", unit); ok && out == "active" {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
