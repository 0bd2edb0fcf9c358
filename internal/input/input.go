// Package input enumerates local input devices and adapts their raw event
// streams into a small neutral event type, so the decoder stays free of any
// hardware dependency.
package input

import "context"

// Event types, mirroring the Linux input event ABI.
const (
	// EvKey is the event type for key state transitions.
	EvKey uint16 = 0x01
)

// Key states carried in Event.Value.
const (
	KeyUp   int32 = 0
	KeyDown int32 = 1
	KeyHold int32 = 2
)

// Event is one raw transition read from an input device.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Device is one enumerated input device delivering events in arrival order.
type Device interface {
	// Name returns the human-readable device name.
	Name() string

	// Path returns the device node path.
	Path() string

	// Next blocks until the next event arrives or ctx is done.
	Next(ctx context.Context) (Event, error)

	// Close releases the device.
	Close() error
}
