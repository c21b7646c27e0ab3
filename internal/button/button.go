// Package button provides the polled, level-sensed button sources that wake
// the display.
package button

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Source reports whether the button is held at the moment of the call.
type Source interface {
	Pressed() bool
}

// Never is a button that is never pressed, used when gating is disabled.
type Never struct{}

func (Never) Pressed() bool { return false }

// GPIO reads a momentary switch on a periph.io pin.
type GPIO struct {
	pin       gpio.PinIO
	activeLow bool
}

// OpenGPIO configures pin (e.g. "GPIO4") as an input. Active-low buttons
// wire to ground and use the internal pull-up; active-high ones get a
// pull-down.
func OpenGPIO(name string, activeLow bool) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errors.Errorf("gpio pin %q not found", name)
	}
	pull := gpio.PullDown
	if activeLow {
		pull = gpio.PullUp
	}
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, errors.Wrapf(err, "configure %s as input", name)
	}
	return &GPIO{pin: pin, activeLow: activeLow}, nil
}

func (g *GPIO) Pressed() bool {
	return (g.pin.Read() == gpio.Low) == g.activeLow
}

// Latch is a software button. Press holds it down for the hold duration,
// which makes a single key stroke look like a short physical press to a
// polling reader.
type Latch struct {
	hold  time.Duration
	until atomic.Int64 // unix nanos
	now   func() time.Time
}

func NewLatch(hold time.Duration) *Latch {
	return &Latch{hold: hold, now: time.Now}
}

// Press is safe to call from another goroutine.
func (l *Latch) Press() {
	l.until.Store(l.now().Add(l.hold).UnixNano())
}

func (l *Latch) Pressed() bool {
	return l.now().UnixNano() < l.until.Load()
}
