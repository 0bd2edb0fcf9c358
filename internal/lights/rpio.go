//go:build linux

package lights

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// RPIO drives real GPIO pins through /dev/gpiomem.
type RPIO struct {
	pins []int
}

// NewRPIO returns a driver managing the given BCM pin numbers.
func NewRPIO(pins ...int) *RPIO {
	return &RPIO{pins: pins}
}

// Setup opens the GPIO memory range and configures every managed pin as a
// low output, so no light glows before the watcher takes over.
func (d *RPIO) Setup() error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "failed to open gpio")
	}

	for _, pin := range d.pins {
		p := rpio.Pin(pin)
		p.Output()
		p.Low()
	}

	return nil
}

// Set implements Driver.
func (d *RPIO) Set(pin int, on bool) error {
	p := rpio.Pin(pin)

	if on {
		p.High()
	} else {
		p.Low()
	}

	return nil
}

// Close lowers every pin and unmaps the GPIO range.
func (d *RPIO) Close() error {
	for _, pin := range d.pins {
		rpio.Pin(pin).Low()
	}

	return rpio.Close()
}
