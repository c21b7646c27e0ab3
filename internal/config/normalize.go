package config

import (
	"strings"
	"time"
)

// Normalize applies post-validation defaults.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 5
	}

	if cfg.Sampler.CommandTimeout == 0 {
		cfg.Sampler.CommandTimeout = time.Second
		if half := cfg.Timing.UpdateInterval / 2; half < cfg.Sampler.CommandTimeout {
			cfg.Sampler.CommandTimeout = half
		}
	}
	if cfg.Sampler.DiskPath == "" {
		cfg.Sampler.DiskPath = "/"
	}

	// Idle polling never runs slower than the frame rate.
	if cfg.Timing.IdleInterval > cfg.Timing.UpdateInterval {
		cfg.Timing.IdleInterval = cfg.Timing.UpdateInterval
	}
}
