package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hostdeck/hostdeck/internal/config"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dev", "dev"},
		{"", ""},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.in))
	}
}

func TestSetVersionInfo(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	SetVersionInfo("1.0.0", "abc1234", "2026-01-01")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc1234", commit)
	assert.Equal(t, "2026-01-01", date)
}

func TestWriteDefaultConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultConfig().Thresholds, cfg.Thresholds)
	assert.NotEmpty(t, cfg.Services)
}

func TestInitTargetPath(t *testing.T) {
	system, err := initTargetPath(true)
	require.NoError(t, err)
	assert.Equal(t, config.SystemConfigPath, system)

	user, err := initTargetPath(false)
	require.NoError(t, err)
	assert.Contains(t, user, "hostdeck")
	assert.True(t, filepath.IsAbs(user))
}

func TestRootCommandRegistrations(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"snapshot", "init", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
