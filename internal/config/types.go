package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete hostdeck configuration file.
type Config struct {
	Version     int             `yaml:"version" mapstructure:"version"`
	RequireRoot bool            `yaml:"require_root" mapstructure:"require_root"`
	Probe       ProbeConfig     `yaml:"probe" mapstructure:"probe"`
	Thresholds  ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Lock        LockConfig      `yaml:"lock" mapstructure:"lock"`
	Log         LogConfig       `yaml:"log" mapstructure:"log"`
	Certs       CertConfig      `yaml:"certs" mapstructure:"certs"`
	Services    []ServiceConfig `yaml:"services" mapstructure:"services"`
}

// ProbeConfig controls how external inspection commands run.
type ProbeConfig struct {
	// Timeout is the hard wall-clock limit for any single external command.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// CPUSampleGap is the pause between the two CPU counter readings.
	CPUSampleGap time.Duration `yaml:"cpu_sample_gap" mapstructure:"cpu_sample_gap"`

	// IPEndpoints are public-IP lookup URLs, tried in order.
	IPEndpoints []string `yaml:"ip_endpoints" mapstructure:"ip_endpoints"`
}

// Band is a warn/critical threshold pair for a percentage metric.
// The only hard invariant is warn <= crit.
type Band struct {
	Warn int `yaml:"warn" mapstructure:"warn"`
	Crit int `yaml:"crit" mapstructure:"crit"`
}

// ThresholdConfig carries the coloring bands for every gauged metric and
// for certificate expiry. These are product defaults, not invariants, so
// operators can retune them.
type ThresholdConfig struct {
	CPU  Band `yaml:"cpu" mapstructure:"cpu"`
	Mem  Band `yaml:"mem" mapstructure:"mem"`
	Swap Band `yaml:"swap" mapstructure:"swap"`
	Disk Band `yaml:"disk" mapstructure:"disk"`

	// CertWarnDays / CertCritDays are remaining-days bounds: expiry within
	// warn days colors yellow, within crit days colors red.
	CertWarnDays int `yaml:"cert_warn_days" mapstructure:"cert_warn_days"`
	CertCritDays int `yaml:"cert_crit_days" mapstructure:"cert_crit_days"`
}

// LockConfig controls the single-instance lock.
type LockConfig struct {
	// Path is the well-known lock file location.
	Path string `yaml:"path" mapstructure:"path"`

	// FallbackPath is used when the primary directory does not exist.
	FallbackPath string `yaml:"fallback_path" mapstructure:"fallback_path"`
}

// LogConfig controls the append-only session log sink.
type LogConfig struct {
	Path         string `yaml:"path" mapstructure:"path"`
	FallbackPath string `yaml:"fallback_path" mapstructure:"fallback_path"`
}

// CertConfig controls certificate-store scanning.
type CertConfig struct {
	// Dir is the certificate store root, one subdirectory per certificate.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// LeafName is the certificate file name inside each subdirectory.
	LeafName string `yaml:"leaf_name" mapstructure:"leaf_name"`
}

// ServiceConfig defines one tracked service and its detection strategies.
type ServiceConfig struct {
	// Key identifies the service in logs and dispatch.
	Key string `yaml:"key" mapstructure:"key"`

	// Display is the panel label.
	Display string `yaml:"display" mapstructure:"display"`

	// Binaries are binary names checked for the installed test, in order.
	Binaries []string `yaml:"binaries" mapstructure:"binaries"`

	// Units are init-system unit name variants checked for the running
	// test, in order, short-circuiting on the first active one.
	Units []string `yaml:"units" mapstructure:"units"`

	// ProcPattern is a process-table substring match used when the init
	// system gives no answer (e.g. "php-fpm: master" for PHP-FPM).
	ProcPattern string `yaml:"proc_pattern" mapstructure:"proc_pattern"`

	// VersionArgs invoke the first binary to extract a version string.
	VersionArgs []string `yaml:"version_args" mapstructure:"version_args"`
}

// DefaultConfig returns a Config with sensible defaults for a typical
// nginx/MySQL/PHP host.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		RequireRoot: true,
		Probe: ProbeConfig{
			Timeout:      2 * time.Second,
			CPUSampleGap: 200 * time.Millisecond,
			IPEndpoints: []string{
				"https://api.ipify.org",
				"https://ifconfig.me/ip",
				"https://icanhazip.com",
			},
		},
		Thresholds: ThresholdConfig{
			CPU:          Band{Warn: 70, Crit: 90},
			Mem:          Band{Warn: 70, Crit: 90},
			Swap:         Band{Warn: 30, Crit: 60},
			Disk:         Band{Warn: 80, Crit: 90},
			CertWarnDays: 15,
			CertCritDays: 5,
		},
		Lock: LockConfig{
			Path:         "/run/hostdeck.lock",
			FallbackPath: "/tmp/hostdeck.lock",
		},
		Log: LogConfig{
			Path:         "/var/log/hostdeck/session.log",
			FallbackPath: "/tmp/hostdeck-session.log",
		},
		Certs: CertConfig{
			Dir:      "/etc/letsencrypt/live",
			LeafName: "cert.pem",
		},
		Services: DefaultServices(),
	}
}

// DefaultServices is the stock tracked-service list.
func DefaultServices() []ServiceConfig {
	return []ServiceConfig{
		{
			Key:         "nginx",
			Display:     "Nginx",
			Binaries:    []string{"nginx"},
			Units:       []string{"nginx"},
			VersionArgs: []string{"-v"},
		},
		{
			Key:         "mysql",
			Display:     "MySQL",
			Binaries:    []string{"mysqld", "mariadbd", "mysql"},
			Units:       []string{"mysql", "mariadb", "mysqld"},
			VersionArgs: []string{"--version"},
		},
		{
			Key:         "redis",
			Display:     "Redis",
			Binaries:    []string{"redis-server"},
			Units:       []string{"redis-server", "redis"},
			VersionArgs: []string{"--version"},
		},
		{
			Key:         "php-fpm",
			Display:     "PHP-FPM",
			Binaries:    []string{"php-fpm", "php"},
			Units:       []string{"php-fpm", "php8.3-fpm", "php8.2-fpm", "php8.1-fpm", "php7.4-fpm"},
			ProcPattern: "php-fpm: master",
			VersionArgs: []string{"-v"},
		},
		{
			Key:         "cron",
			Display:     "Cron",
			Binaries:    []string{"cron", "crond"},
			Units:       []string{"cron", "crond"},
		},
	}
}
