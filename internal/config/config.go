package config

import (
	"time"

	"github.com/Dicklesworthstone/oledstat/internal/model"
)

const (
	DriverSSD1306 = "ssd1306"
	DriverPreview = "preview"
)

// Config carries every startup option. It is read once; nothing changes at
// runtime.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Slots   SlotsConfig   `yaml:"slots"`
	Button  ButtonConfig  `yaml:"button"`
	Timing  TimingConfig  `yaml:"timing"`
	Sampler SamplerConfig `yaml:"sampler"`
	Log     LogConfig     `yaml:"log"`
}

type DisplayConfig struct {
	Driver     string `yaml:"driver"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	I2CBus     string `yaml:"i2c_bus"`
	I2CAddress uint16 `yaml:"i2c_address"`
	FontPath   string `yaml:"font_path"`
}

// SlotsConfig is the per-slot enabled flag.
type SlotsConfig struct {
	Hostname bool `yaml:"hostname"`
	IP       bool `yaml:"ip"`
	CPU      bool `yaml:"cpu"`
	Memory   bool `yaml:"memory"`
	Disk     bool `yaml:"disk"`
}

// SlotSet converts the flags to a model.SlotSet.
func (s SlotsConfig) SlotSet() model.SlotSet {
	var set model.SlotSet
	set.Set(model.Hostname, s.Hostname)
	set.Set(model.IPAddress, s.IP)
	set.Set(model.CPU, s.CPU)
	set.Set(model.Memory, s.Memory)
	set.Set(model.Disk, s.Disk)
	return set
}

type ButtonConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Pin       string        `yaml:"pin"`
	ActiveLow bool          `yaml:"active_low"`
	Timeout   time.Duration `yaml:"timeout"`
}

type TimingConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval"`
	IdleInterval   time.Duration `yaml:"idle_interval"`
}

type SamplerConfig struct {
	ThermalPath    string        `yaml:"thermal_path"`
	DiskPath       string        `yaml:"disk_path"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default mirrors a stock Pi with a 128x32 SSD1306 at 0x3C.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Driver:     DriverSSD1306,
			Width:      128,
			Height:     32,
			I2CAddress: 0x3C,
			FontPath:   "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
		Slots: SlotsConfig{
			IP:     true,
			CPU:    true,
			Memory: true,
			Disk:   true,
		},
		Button: ButtonConfig{
			Enabled:   false,
			Pin:       "GPIO4",
			ActiveLow: true,
			Timeout:   30 * time.Second,
		},
		Timing: TimingConfig{
			UpdateInterval: 2 * time.Second,
			IdleInterval:   100 * time.Millisecond,
		},
		Sampler: SamplerConfig{
			ThermalPath:    "/sys/class/thermal/thermal_zone0/temp",
			DiskPath:       "/",
			CommandTimeout: time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}
