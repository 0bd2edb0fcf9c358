// Package decoder turns raw key-transition events from a scanner in keyboard
// mode into completed barcode strings.
package decoder

import (
	"strings"

	"github.com/rotostampa/piscanner/internal/input"
)

// EmitFunc receives each completed barcode. Implementations must not block:
// emission is fire-and-forget so decoding keeps up with the device.
type EmitFunc func(barcode string)

// Decoder is the per-device shift-state machine. One instance owns exactly
// one device's buffer; it is not safe for concurrent use.
type Decoder struct {
	emit   EmitFunc
	buffer strings.Builder
	shift  bool
}

// New returns a decoder delivering completed barcodes to emit.
func New(emit EmitFunc) *Decoder {
	return &Decoder{emit: emit}
}

// Handle processes one event. Non-key events, key-repeats and releases of
// non-shift keys contribute nothing.
func (d *Decoder) Handle(ev input.Event) {
	if ev.Type != input.EvKey {
		return
	}

	// Shift transitions only flip state, on both press and release.
	if ev.Code == KeyLeftShift || ev.Code == KeyRightShift {
		d.shift = ev.Value == input.KeyDown
		return
	}

	if ev.Value != input.KeyDown {
		return
	}

	if ev.Code == KeyEnter {
		d.complete()
		return
	}

	if char, ok := d.translate(ev.Code); ok {
		d.buffer.WriteRune(char)
	}
}

// translate resolves a scancode against the shifted table when shift is held
// and the code has a shifted variant, otherwise the unshifted table.
func (d *Decoder) translate(code uint16) (rune, bool) {
	if d.shift {
		if char, ok := shiftedScancodes[code]; ok {
			return char, true
		}
	}

	char, ok := scancodes[code]

	return char, ok
}

// complete emits the buffered barcode, trimmed, and resets the buffer. An
// empty buffer emits nothing.
func (d *Decoder) complete() {
	barcode := strings.TrimSpace(d.buffer.String())
	d.buffer.Reset()

	if barcode != "" {
		d.emit(barcode)
	}
}
