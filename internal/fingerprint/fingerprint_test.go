package fingerprint

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hostdeck/hostdeck/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOSRelease(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"quoted pretty name",
			write("ubuntu", "NAME=\"Ubuntu\"\nPRETTY_NAME=\"Ubuntu 24.04.1 LTS\"\nID=ubuntu\n"),
			"Ubuntu 24.04.1 LTS"},
		{"unquoted pretty name",
			write("alpine", "PRETTY_NAME=Alpine Linux v3.20\n"),
			"Alpine Linux v3.20"},
		{"missing pretty name",
			write("bare", "NAME=Something\nID=something\n"),
			UnknownOS},
		{"empty pretty name",
			write("empty", "PRETTY_NAME=\"\"\n"),
			UnknownOS},
		{"missing file",
			filepath.Join(dir, "absent"),
			UnknownOS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readOSRelease(tt.path))
		})
	}
}

func TestNormalizeVirt(t *testing.T) {
	assert.Equal(t, DedicatedLabel, normalizeVirt("none"))
	assert.Equal(t, DedicatedLabel, normalizeVirt("NONE"))
	assert.Equal(t, "Kvm", normalizeVirt("kvm"))
	assert.Equal(t, "Xen", normalizeVirt("xen"))
	assert.Equal(t, Unknown, normalizeVirt(""))
	assert.Equal(t, Unknown, normalizeVirt("   "))
}

func TestDetectVirt(t *testing.T) {
	stage := func(t *testing.T, script string) {
		bin := t.TempDir()
		path := filepath.Join(bin, "systemd-detect-virt")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
		t.Setenv("PATH", bin)
	}

	t.Run("bare metal answers none with a non-zero exit", func(t *testing.T) {
		stage(t, "echo none\nexit 1")
		assert.Equal(t, DedicatedLabel, detectVirt(probe.New(time.Second), Unknown))
	})

	t.Run("hypervisor answer overrides the kernel self-report", func(t *testing.T) {
		stage(t, "echo kvm")
		assert.Equal(t, "Kvm", detectVirt(probe.New(time.Second), Unknown))
	})

	t.Run("missing detector keeps the fallback", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		assert.Equal(t, "Openvz", detectVirt(probe.New(time.Second), "Openvz"))
	})

	t.Run("silent failure keeps the fallback", func(t *testing.T) {
		stage(t, "exit 1")
		assert.Equal(t, Unknown, detectVirt(probe.New(time.Second), Unknown))
	})
}

func TestTruncateAll(t *testing.T) {
	long := "an extremely long value that overruns the declared panel field width"
	fp := &Fingerprint{
		OS:       long,
		CPUModel: long,
		Tools:    map[string]string{"node": long},
	}

	fp.truncateAll()
	assert.Len(t, fp.OS, MaxFieldWidth)
	assert.Len(t, fp.CPUModel, MaxFieldWidth)
	assert.Len(t, fp.Tools["node"], MaxFieldWidth)
}

type fakeDisk struct{ dt, ctrl string }

func (f fakeDisk) driveType() string  { return f.dt }
func (f fakeDisk) controller() string { return f.ctrl }

func TestClassifyDiskMedia(t *testing.T) {
	tests := []struct {
		name  string
		disks []diskLike
		want  string
	}{
		{"nvme controller wins", []diskLike{fakeDisk{"Unknown", "NVMe"}}, "SSD/NVMe"},
		{"ssd drive type wins", []diskLike{fakeDisk{"SSD", "SCSI"}}, "SSD/NVMe"},
		{"rotational only", []diskLike{fakeDisk{"HDD", "SCSI"}}, "HDD"},
		{"mixed prefers fast", []diskLike{fakeDisk{"HDD", "IDE"}, fakeDisk{"SSD", "virtio"}}, "SSD/NVMe"},
		{"nothing recognizable", []diskLike{fakeDisk{"Unknown", "Unknown"}}, Unknown},
		{"no disks", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.disks))
		})
	}
}

func TestLookupPublicIP(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("203.0.113.7\n"))
	}))
	defer good.Close()
	htmlErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>blocked</html>"))
	}))
	defer htmlErr.Close()

	t.Run("first good endpoint wins", func(t *testing.T) {
		assert.Equal(t, "203.0.113.7", lookupPublicIP([]string{good.URL}))
	})

	t.Run("skips non-address responses", func(t *testing.T) {
		assert.Equal(t, "203.0.113.7", lookupPublicIP([]string{htmlErr.URL, good.URL}))
	})

	t.Run("all endpoints bad", func(t *testing.T) {
		assert.Equal(t, BlockedOrFail, lookupPublicIP([]string{htmlErr.URL}))
	})

	t.Run("no endpoints", func(t *testing.T) {
		assert.Equal(t, BlockedOrFail, lookupPublicIP(nil))
	})
}

func TestPHPPoolVersions(t *testing.T) {
	dir := t.TempDir()
	for _, v := range []string{"8.3", "8.1"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, v, "fpm"), 0o755))
	}
	// A version dir without an fpm subdir is CLI-only and must not count.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "7.4", "cli"), 0o755))
	// Non-version entries are ignored entirely.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mods-available"), 0o755))

	assert.Equal(t, []string{"8.1", "8.3"}, phpPoolVersions(dir))
	assert.Nil(t, phpPoolVersions(filepath.Join(dir, "absent")))
}
