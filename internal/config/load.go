package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file on top of Default(). Keys absent from the file keep
// their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := decode(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

func decode(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// FromFlags parses flags, loads the config file they name (if any), then
// applies flag and environment overrides in that order.
func FromFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("oledstat", flag.ContinueOnError)
	path := fs.String("config", os.Getenv("OLEDSTAT_CONFIG"), "path to YAML config")
	interval := fs.Duration("interval", 0, "refresh interval (overrides timing.update_interval)")
	preview := fs.Bool("preview", false, "render to the terminal instead of the OLED")
	logLevel := fs.String("log-level", "", "debug|info|warn|error")
	btn := fs.Bool("button", false, "enable button gating")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *path != "" {
		var err error
		if cfg, err = Load(*path); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Timing.UpdateInterval = *interval
		case "preview":
			if *preview {
				cfg.Display.Driver = DriverPreview
			}
		case "log-level":
			cfg.Log.Level = *logLevel
		case "button":
			cfg.Button.Enabled = *btn
		}
	})

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OLEDSTAT_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Timing.UpdateInterval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Timing.UpdateInterval = parsed
		}
	}
	switch os.Getenv("OLEDSTAT_BUTTON") {
	case "0":
		cfg.Button.Enabled = false
	case "1":
		cfg.Button.Enabled = true
	}
	if v := os.Getenv("OLEDSTAT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
