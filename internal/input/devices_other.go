//go:build !linux

package input

// Devices returns no devices on platforms without evdev. Development hosts
// still run the dispatcher, web and lights loops against the store.
func Devices() ([]Device, error) {
	return nil, nil
}
