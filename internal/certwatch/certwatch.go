// Package certwatch scans a certificate store and reports the minimum
// days-to-expiry across everything it finds, plus whether automatic
// renewal is wired up. The scan runs fresh every cycle: expiry is
// security-sensitive and must reflect current disk state, so nothing here
// is cached.
package certwatch

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/probe"
)

// Summary is the per-cycle certificate report.
type Summary struct {
	// Installed is false when the store held zero parseable certificates;
	// the panel then shows "not installed" instead of a number.
	Installed bool

	// Count is how many certificates parsed.
	Count int

	// MinDaysLeft is the smallest remaining lifetime, truncated toward
	// zero. Only meaningful when Installed.
	MinDaysLeft int

	// AutoRenew is true when a renewal timer or scheduled job was found.
	AutoRenew bool
}

// Monitor scans the certificate store each cycle.
type Monitor struct {
	dir      string
	leafName string
	runner   *probe.Runner

	// now is swappable for deterministic expiry math in tests.
	now func() time.Time
}

// New creates a Monitor for the configured store.
func New(r *probe.Runner, cfg *config.Config) *Monitor {
	return &Monitor{
		dir:      cfg.Certs.Dir,
		leafName: cfg.Certs.LeafName,
		runner:   r,
		now:      time.Now,
	}
}

// Scan walks the store and builds the Summary.
func (m *Monitor) Scan() Summary {
	var sum Summary

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return sum
	}

	now := m.now()
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cert, err := readCertificate(filepath.Join(m.dir, e.Name(), m.leafName))
		if err != nil {
			continue
		}
		days := DaysLeft(cert.NotAfter, now)
		if !sum.Installed || days < sum.MinDaysLeft {
			sum.MinDaysLeft = days
		}
		sum.Installed = true
		sum.Count++
	}

	if sum.Installed {
		sum.AutoRenew = m.renewalConfigured()
	}
	return sum
}

// DaysLeft is the remaining certificate lifetime in whole days, integer
// division truncating toward zero. Expired certificates go negative.
func DaysLeft(notAfter, now time.Time) int {
	return int(notAfter.Unix()-now.Unix()) / 86400
}

// readCertificate loads and parses one PEM-encoded certificate file.
func readCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, os.ErrInvalid
	}
	return x509.ParseCertificate(block.Bytes)
}

// renewalConfigured detects renewal automation: an active certbot timer,
// or a renew job in the system-wide cron configuration.
func (m *Monitor) renewalConfigured() bool {
	if out, ok := m.runner.Run("systemctl", "is-active", "certbot.timer"); ok && out == "active" {
		return true
	}

	paths := []string{"/etc/crontab"}
	if entries, err := os.ReadDir("/etc/cron.d"); err == nil {
		for _, e := range entries {
			paths = append(paths, filepath.Join("/etc/cron.d", e.Name()))
		}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if strings.Contains(string(data), "certbot renew") {
			return true
		}
	}
	return false
}
