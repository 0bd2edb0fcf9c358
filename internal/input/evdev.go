//go:build linux

package input

import (
	"context"

	"github.com/holoplot/go-evdev"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Devices enumerates all readable evdev devices. Finding none is not an
// error: the rest of the pipeline still runs and a warning is logged by the
// caller.
func Devices() ([]Device, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list input devices")
	}

	devices := make([]Device, 0, len(paths))

	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			// Unreadable nodes (permissions, races with udev) are
			// skipped rather than failing startup.
			log.Warn().Err(err).Str("path", p.Path).Msg("skipping unreadable input device")
			continue
		}

		devices = append(devices, &evdevDevice{dev: dev, name: p.Name, path: p.Path})
	}

	return devices, nil
}

type evdevDevice struct {
	dev  *evdev.InputDevice
	name string
	path string
}

func (d *evdevDevice) Name() string {
	return d.name
}

func (d *evdevDevice) Path() string {
	return d.path
}

func (d *evdevDevice) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}

	ev, err := d.dev.ReadOne()
	if err != nil {
		return Event{}, errors.Wrapf(err, "failed to read from %s", d.path)
	}

	return Event{
		Type:  uint16(ev.Type),
		Code:  uint16(ev.Code),
		Value: ev.Value,
	}, nil
}

func (d *evdevDevice) Close() error {
	return d.dev.Close()
}
