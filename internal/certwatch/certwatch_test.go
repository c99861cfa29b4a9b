package certwatch

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/probe"
)

func writeTestCert(t *testing.T, path string, notAfter time.Time) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "example.test"},
		NotBefore:    notAfter.Add(-90 * 24 * time.Hour),
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pem.Encode(f, &pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func newTestMonitor(t *testing.T, dir string) *Monitor {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Certs.Dir = dir

	m := New(probe.NewStubbed(func(string) (string, error) { return "", os.ErrNotExist }), cfg)
	return m
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		notAfter time.Time
		want     int
	}{
		{"thirty days out", now.Add(30 * 24 * time.Hour), 30},
		{"partial day truncates", now.Add(36 * time.Hour), 1},
		{"under a day", now.Add(6 * time.Hour), 0},
		{"expired", now.Add(-49 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLeft(tt.notAfter, now))
		})
	}
}

func TestScanEmptyStore(t *testing.T) {
	m := newTestMonitor(t, t.TempDir())

	sum := m.Scan()
	assert.False(t, sum.Installed)
	assert.Equal(t, 0, sum.Count)
}

func TestScanMissingStore(t *testing.T) {
	m := newTestMonitor(t, filepath.Join(t.TempDir(), "nope"))

	sum := m.Scan()
	assert.False(t, sum.Installed)
}

func TestScanPicksMinimum(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for name, days := range map[string]int{"a.test": 40, "b.test": 12, "c.test": 70} {
		sub := filepath.Join(dir, name)
		require.NoError(t, os.Mkdir(sub, 0o755))
		writeTestCert(t, filepath.Join(sub, "cert.pem"), now.Add(time.Duration(days)*24*time.Hour))
	}

	m := newTestMonitor(t, dir)
	m.now = func() time.Time { return now }

	sum := m.Scan()
	assert.True(t, sum.Installed)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 12, sum.MinDaysLeft)
}

func TestScanSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// A README file and a directory with a non-PEM leaf must both be
	// ignored without aborting the scan.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644))
	bad := filepath.Join(dir, "broken.test")
	require.NoError(t, os.Mkdir(bad, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bad, "cert.pem"), []byte("not a cert"), 0o644))

	good := filepath.Join(dir, "ok.test")
	require.NoError(t, os.Mkdir(good, 0o755))
	writeTestCert(t, filepath.Join(good, "cert.pem"), now.Add(20*24*time.Hour))

	m := newTestMonitor(t, dir)
	m.now = func() time.Time { return now }

	sum := m.Scan()
	assert.True(t, sum.Installed)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 20, sum.MinDaysLeft)
}
