//go:build !linux

package lights

// NewRPIO falls back to the no-op driver on platforms without GPIO memory.
func NewRPIO(_ ...int) Driver {
	return Noop{}
}
