package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSHHardening(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
		want HardeningLevel
	}{
		{"root login allowed",
			write("weak", "Port 22\nPermitRootLogin yes\n"),
			HardeningWeak},
		{"root login disabled",
			write("hardened", "PermitRootLogin no\nPasswordAuthentication no\n"),
			HardeningHardened},
		{"key-only root",
			write("moderate", "PermitRootLogin prohibit-password\n"),
			HardeningModerate},
		{"legacy key-only spelling",
			write("legacy", "PermitRootLogin without-password\n"),
			HardeningModerate},
		{"directive absent uses daemon default",
			write("absent", "Port 22\nUsePAM yes\n"),
			HardeningModerate},
		{"commented directive does not count",
			write("commented", "#PermitRootLogin yes\n"),
			HardeningModerate},
		{"indented directive counts",
			write("indented", "  PermitRootLogin yes\n"),
			HardeningWeak},
		{"unreadable config",
			filepath.Join(dir, "missing"),
			HardeningUnknown},
		{"unrecognized value",
			write("odd", "PermitRootLogin maybe\n"),
			HardeningUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sshHardening(tt.path))
		})
	}
}

func TestJailCount(t *testing.T) {
	out := `Status
|- Number of jail:	2
` + "`- Jail list:\tsshd, nginx-botsearch\n"

	assert.Equal(t, 2, jailCount(out))
	assert.Equal(t, 0, jailCount("Status\n`- Jail list:\n"))
	assert.Equal(t, 0, jailCount("no jails here"))
	assert.Equal(t, 1, jailCount("Jail list: sshd"))
}

func TestUfwRulePattern(t *testing.T) {
	status := `Status: active

To                         Action      From
--                         ------      ----
22/tcp                     ALLOW       Anywhere
80/tcp                     ALLOW       Anywhere
443/tcp                    LIMIT       Anywhere
23/tcp                     DENY        Anywhere
22/tcp (v6)                ALLOW       Anywhere (v6)
`
	assert.Len(t, ufwRulePattern.FindAllString(status, -1), 5)

	numbered := "[ 1] 22/tcp                     ALLOW IN    Anywhere\n" +
		"[ 2] 80/tcp                     REJECT IN   Anywhere\n"
	assert.Len(t, ufwRulePattern.FindAllString(numbered, -1), 2)

	assert.Empty(t, ufwRulePattern.FindAllString("Status: inactive\n", -1))
}

func TestFirewallStates(t *testing.T) {
	t.Run("not installed", func(t *testing.T) {
		r := newTestResolver(nil, nil)
		st := r.firewall()
		assert.Equal(t, NotInstalled, st.State)
		assert.Empty(t, st.Annotation)
	})

	t.Run("active with rules", func(t *testing.T) {
		bin := t.TempDir()
		script := "#!/bin/sh\necho 'Status: active'\necho\n" +
			"echo '22/tcp                     ALLOW       Anywhere'\n" +
			"echo '80/tcp                     ALLOW       Anywhere'\n"
		require.NoError(t, os.WriteFile(filepath.Join(bin, "ufw"), []byte(script), 0o755))
		t.Setenv("PATH", bin)

		r := NewResolver(probeRunner())
		st := r.firewall()
		assert.Equal(t, Running, st.State)
		assert.Equal(t, "2 rules", st.Annotation)
	})

	t.Run("installed but inactive", func(t *testing.T) {
		bin := t.TempDir()
		script := "#!/bin/sh\necho 'Status: inactive'\n"
		require.NoError(t, os.WriteFile(filepath.Join(bin, "ufw"), []byte(script), 0o755))
		t.Setenv("PATH", bin)

		r := NewResolver(probeRunner())
		assert.Equal(t, Offline, r.firewall().State)
	})
}

func TestHardeningLevelString(t *testing.T) {
	assert.Equal(t, "Weak", HardeningWeak.String())
	assert.Equal(t, "Moderate", HardeningModerate.String())
	assert.Equal(t, "Hardened", HardeningHardened.String())
	assert.Equal(t, "Unknown", HardeningUnknown.String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "RUNNING", Running.String())
	assert.Equal(t, "OFFLINE", Offline.String())
	assert.Equal(t, "NOT INSTALLED", NotInstalled.String())
}
