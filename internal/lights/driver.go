package lights

import (
	"github.com/rs/zerolog/log"
)

// Driver abstracts the physical indicator. The pipeline only issues simple
// on/off commands; timing lives in the Watcher.
type Driver interface {
	// Setup prepares the pins, leaving every light off.
	Setup() error

	// Set drives one pin high or low.
	Set(pin int, on bool) error

	// Close releases the pins.
	Close() error
}

// Noop is the driver used when GPIO is disabled or unavailable. It logs
// transitions at debug level so the light behavior stays observable in
// development.
type Noop struct{}

// Setup implements Driver.
func (Noop) Setup() error {
	return nil
}

// Set implements Driver.
func (Noop) Set(pin int, on bool) error {
	log.Debug().Int("pin", pin).Bool("on", on).Msg("light transition")

	return nil
}

// Close implements Driver.
func (Noop) Close() error {
	return nil
}
