package display

import (
	"image"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// SSD1306Address is the only address the periph I2C driver talks to.
const SSD1306Address = 0x3C

// OLED is an SSD1306 panel on an I2C bus.
type OLED struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

var _ Flusher = (*OLED)(nil)

// OpenOLED initialises the host drivers, opens busName ("" picks the first
// bus) and brings up a w x h SSD1306. 32-row modules wire their COM pins
// sequentially.
func OpenOLED(busName string, addr uint16, w, h int) (*OLED, error) {
	if addr != SSD1306Address {
		return nil, errors.Errorf("ssd1306: unsupported i2c address %#x (driver uses %#x)", addr, SSD1306Address)
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Wrapf(err, "open i2c bus %q", busName)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: w, H: h, Sequential: h == 32})
	if err != nil {
		_ = bus.Close()
		return nil, errors.Wrap(err, "ssd1306 init")
	}
	return &OLED{bus: bus, dev: dev}, nil
}

func (o *OLED) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	return o.dev.Draw(r, src, sp)
}

// Close turns the panel off and releases the bus.
func (o *OLED) Close() error {
	herr := o.dev.Halt()
	cerr := o.bus.Close()
	if herr != nil {
		return errors.Wrap(herr, "ssd1306 halt")
	}
	return cerr
}
