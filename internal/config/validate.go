package config

import (
	"fmt"

	"github.com/hostdeck/hostdeck/internal/errors"
)

// Validate checks a Config for structural problems. Bands must keep the
// warn-before-critical ordering; everything else is free for operators to
// retune.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"No configuration to validate",
			"This shouldn't happen - please report this bug")
	}

	bands := map[string]Band{
		"cpu":  cfg.Thresholds.CPU,
		"mem":  cfg.Thresholds.Mem,
		"swap": cfg.Thresholds.Swap,
		"disk": cfg.Thresholds.Disk,
	}
	for name, b := range bands {
		if b.Warn < 0 || b.Crit > 100 || b.Warn > b.Crit {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid %s thresholds: warn=%d crit=%d", name, b.Warn, b.Crit),
				"Thresholds must satisfy 0 <= warn <= crit <= 100")
		}
	}

	if cfg.Thresholds.CertCritDays > cfg.Thresholds.CertWarnDays {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid certificate thresholds: warn=%dd crit=%dd",
				cfg.Thresholds.CertWarnDays, cfg.Thresholds.CertCritDays),
			"The critical window must be inside the warning window (crit <= warn)")
	}

	if cfg.Probe.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"Probe timeout must be positive",
			"Use a short duration like 2s; long timeouts freeze the dashboard")
	}

	if cfg.Lock.Path == "" {
		return errors.New(errors.ErrConfig,
			"Lock path cannot be empty",
			"Use the default /run/hostdeck.lock unless you have a reason not to")
	}

	seen := make(map[string]bool, len(cfg.Services))
	for _, svc := range cfg.Services {
		if svc.Key == "" {
			return errors.New(errors.ErrConfig,
				"A tracked service is missing its key",
				"Every services entry needs a unique 'key' field")
		}
		if seen[svc.Key] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Duplicate service key '%s'", svc.Key),
				"Service keys must be unique")
		}
		seen[svc.Key] = true
		if len(svc.Binaries) == 0 && svc.ProcPattern == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Service '%s' has no detection strategy", svc.Key),
				"Give it at least one binary name or a proc_pattern")
		}
	}

	return nil
}
