package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dicklesworthstone/oledstat/internal/activity"
	"github.com/Dicklesworthstone/oledstat/internal/button"
	"github.com/Dicklesworthstone/oledstat/internal/config"
	"github.com/Dicklesworthstone/oledstat/internal/display"
	"github.com/Dicklesworthstone/oledstat/internal/layout"
	"github.com/Dicklesworthstone/oledstat/internal/logging"
	"github.com/Dicklesworthstone/oledstat/internal/render"
	"github.com/Dicklesworthstone/oledstat/internal/sampler"
	"github.com/Dicklesworthstone/oledstat/internal/ui"
)

func main() {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.FromFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(&cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(&cfg)

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger, err := logging.Open(logging.Options{
		Level:      level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		log.Fatalf("log setup failed: %v", err)
	}
	defer logger.Close()

	// --------------------
	// Layout + font
	// --------------------

	lay := layout.New(cfg.Slots.SlotSet())
	font, err := display.LoadFont(cfg.Display.FontPath)
	if font == nil {
		log.Fatalf("font load failed: %v", err)
	}
	if err != nil {
		logger.Warnf("%v, using embedded font", err)
	}
	canvas := func(f display.Flusher) *display.Canvas {
		return display.NewCanvas(cfg.Display.Width, cfg.Display.Height, font, lay.Class.FontSize, f)
	}

	smp := sampler.New(
		sampler.NewHost(cfg.Sampler.ThermalPath, cfg.Sampler.CommandTimeout),
		cfg.Sampler.DiskPath,
		logger,
	)
	machine := activity.New(cfg.Button.Enabled, cfg.Button.Timeout, time.Now())
	opts := render.Options{
		UpdateInterval: cfg.Timing.UpdateInterval,
		IdleInterval:   cfg.Timing.IdleInterval,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Terminal preview
	// --------------------

	if cfg.Display.Driver == config.DriverPreview {
		sink := ui.NewSink(canvas(nil))
		// Held for a full frame so a key stroke is seen even while active.
		latch := button.NewLatch(cfg.Timing.UpdateInterval + cfg.Timing.IdleInterval)

		ctl, err := render.New(lay, smp, sink, latch, machine, opts, logger)
		if err != nil {
			log.Fatalf("controller setup failed: %v", err)
		}

		ctx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- ctl.Run(ctx) }()

		if err := ui.Run(sink.Stream(), latch, cancel); err != nil {
			logger.Errorf("preview: %v", err)
		}
		cancel()
		<-done
		return
	}

	// --------------------
	// SSD1306 panel
	// --------------------

	oled, err := display.OpenOLED(cfg.Display.I2CBus, cfg.Display.I2CAddress, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		log.Fatalf("display open failed: %v", err)
	}
	defer func() {
		if err := oled.Close(); err != nil {
			logger.Warnf("display close: %v", err)
		}
	}()

	var btn button.Source = button.Never{}
	if cfg.Button.Enabled {
		g, err := button.OpenGPIO(cfg.Button.Pin, cfg.Button.ActiveLow)
		if err != nil {
			log.Fatalf("button setup failed: %v", err)
		}
		btn = g
	}

	sink := canvas(oled)
	if err := display.Blank(sink); err != nil {
		logger.Warnf("initial clear: %v", err)
	}

	ctl, err := render.New(lay, smp, sink, btn, machine, opts, logger)
	if err != nil {
		log.Fatalf("controller setup failed: %v", err)
	}
	if err := ctl.Run(ctx); err != nil {
		logger.Errorf("render loop: %v", err)
	}
}
