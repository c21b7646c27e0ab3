// Package render drives the display: one tick gates on activity, samples
// the enabled slots, lays them out and presents the frame.
package render

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Dicklesworthstone/oledstat/internal/activity"
	"github.com/Dicklesworthstone/oledstat/internal/button"
	"github.com/Dicklesworthstone/oledstat/internal/display"
	"github.com/Dicklesworthstone/oledstat/internal/layout"
	"github.com/Dicklesworthstone/oledstat/internal/logging"
	"github.com/Dicklesworthstone/oledstat/internal/model"
)

// Provider samples slots in the order given. It must not fail.
type Provider interface {
	SampleAll(ctx context.Context, slots []model.Slot) []model.Sample
}

type Options struct {
	UpdateInterval time.Duration // wait between frames while active
	IdleInterval   time.Duration // button poll period while blanked
}

// Controller owns the per-tick cycle. It is not safe for concurrent use;
// Run is the only loop that should drive it.
type Controller struct {
	layout   layout.Layout
	provider Provider
	sink     display.Sink
	button   button.Source
	machine  *activity.Machine
	opts     Options
	log      *logging.Logger
}

func New(l layout.Layout, p Provider, sink display.Sink, btn button.Source, m *activity.Machine, opts Options, log *logging.Logger) (*Controller, error) {
	if len(l.Slots) == 0 {
		return nil, errors.New("render: no slots enabled")
	}
	if opts.UpdateInterval <= 0 || opts.IdleInterval <= 0 {
		return nil, errors.New("render: intervals must be > 0")
	}
	if btn == nil {
		btn = button.Never{}
	}
	return &Controller{
		layout:   l,
		provider: p,
		sink:     sink,
		button:   btn,
		machine:  m,
		opts:     opts,
		log:      log,
	}, nil
}

// Tick runs one cycle at now and returns how long to wait before the next.
func (c *Controller) Tick(ctx context.Context, now time.Time) time.Duration {
	switch c.machine.Evaluate(now, c.button.Pressed()) {
	case activity.TransitionBlank:
		c.log.Infof("no activity for %s, blanking display", now.Sub(c.machine.LastActivation()).Round(time.Second))
		if err := display.Blank(c.sink); err != nil {
			c.log.Errorf("blank display: %v", err)
		}
	case activity.TransitionWake:
		c.log.Infof("button pressed, display on for %s", c.machine.Remaining(now).Round(time.Second))
	}

	if !c.machine.Active() {
		return c.opts.IdleInterval
	}

	frame := c.layout.Frame(c.provider.SampleAll(ctx, c.layout.Slots))

	c.sink.Clear()
	for _, line := range frame.Lines {
		c.sink.DrawText(0, line.Y, line.Text)
	}
	if err := c.sink.Present(); err != nil {
		// The next tick redraws everything, so a dropped frame is enough.
		c.log.Errorf("present frame: %v", err)
	}
	return c.opts.UpdateInterval
}

// Run ticks until ctx is cancelled, then blanks the display and returns.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Infof("render loop started: %d line(s), font %dpx, %s labels, gated=%v",
		len(c.layout.Slots), c.layout.Class.FontSize, c.layout.Class.Verbosity, c.machine.Gated())

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := display.Blank(c.sink); err != nil {
				c.log.Warnf("blank on shutdown: %v", err)
			}
			c.log.Infof("render loop stopped")
			return nil
		case now := <-timer.C:
			timer.Reset(c.Tick(ctx, now))
		}
	}
}
