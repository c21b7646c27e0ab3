package config

import (
	"github.com/pkg/errors"

	"github.com/Dicklesworthstone/oledstat/internal/logging"
)

// Validate checks configuration correctness.
// It performs declarative validation only and does not mutate cfg.
func Validate(cfg *Config) error {
	// ---- slots ----
	if cfg.Slots.SlotSet().Count() == 0 {
		return errors.Errorf("slots: at least one slot must be enabled")
	}

	// ---- display ----
	switch cfg.Display.Driver {
	case DriverSSD1306, DriverPreview:
	default:
		return errors.Errorf("display.driver: unknown driver %q (want %s or %s)",
			cfg.Display.Driver, DriverSSD1306, DriverPreview)
	}

	// The size class table is tuned to 128 columns.
	if cfg.Display.Width != 128 || (cfg.Display.Height != 32 && cfg.Display.Height != 64) {
		return errors.Errorf("display: unsupported geometry %dx%d (want 128x32 or 128x64)",
			cfg.Display.Width, cfg.Display.Height)
	}

	// 7-bit addresses outside the reserved ranges.
	if cfg.Display.I2CAddress < 0x03 || cfg.Display.I2CAddress > 0x77 {
		return errors.Errorf("display.i2c_address: %#x out of range 0x03-0x77", cfg.Display.I2CAddress)
	}

	// ---- button ----
	if cfg.Button.Enabled {
		if cfg.Button.Timeout <= 0 {
			return errors.Errorf("button.timeout must be > 0 when the button is enabled")
		}
		if cfg.Button.Pin == "" && cfg.Display.Driver != DriverPreview {
			return errors.Errorf("button.pin is required when the button is enabled")
		}
	}

	// ---- timing ----
	if cfg.Timing.UpdateInterval <= 0 {
		return errors.Errorf("timing.update_interval must be > 0")
	}
	if cfg.Timing.IdleInterval <= 0 {
		return errors.Errorf("timing.idle_interval must be > 0")
	}

	// ---- sampler ----
	if cfg.Sampler.CommandTimeout < 0 {
		return errors.Errorf("sampler.command_timeout must not be negative")
	}
	if cfg.Sampler.CommandTimeout >= cfg.Timing.UpdateInterval {
		return errors.Errorf("sampler.command_timeout (%s) must be shorter than timing.update_interval (%s)",
			cfg.Sampler.CommandTimeout, cfg.Timing.UpdateInterval)
	}

	// ---- log ----
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 {
		return errors.Errorf("log: max_size_mb and max_backups must not be negative")
	}

	return nil
}
