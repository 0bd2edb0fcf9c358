// Package daemon wires the capture pipeline together and runs it.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rotostampa/piscanner/internal/config"
	"github.com/rotostampa/piscanner/internal/decoder"
	"github.com/rotostampa/piscanner/internal/dispatcher"
	"github.com/rotostampa/piscanner/internal/input"
	"github.com/rotostampa/piscanner/internal/lights"
	"github.com/rotostampa/piscanner/internal/machine"
	"github.com/rotostampa/piscanner/internal/store"
	"github.com/rotostampa/piscanner/internal/supervisor"
	"github.com/rotostampa/piscanner/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg          *config.Config
	st           *store.Store
	webService   *web.Service
	lightsDriver lights.Driver
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	st, err := store.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to open database")
		return nil
	}

	if err = st.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
		return nil
	}

	return &Daemon{
		cfg:        cfg,
		st:         st,
		webService: web.New(cfg, st),
	}
}

// Start launches the supervised pipeline tasks and the web service, then
// blocks until a shutdown signal arrives.
func (d *Daemon) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group := supervisor.NewGroup(d.cfg.Pipeline.Backoff())

	d.startListeners(ctx, group)
	d.startDispatcher(ctx, group)
	d.startCleanup(ctx, group)
	d.startLights(ctx, group)

	go func() {
		addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
		log.Info().Str("addr", addr).Msg("starting web service")

		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	// block until SIGINT/SIGTERM, then drain fiber
	d.webService.WaitShutdown()

	cancel()
	group.Wait()

	d.closeLights()

	return nil
}

// startListeners launches one supervised capture loop per input device.
func (d *Daemon) startListeners(ctx context.Context, group *supervisor.Group) {
	devices, err := input.Devices()
	if err != nil {
		log.Error().Err(err).Msg("failed to enumerate input devices")
	}

	if len(devices) == 0 {
		log.Warn().Msg("no input devices found, scanning is disabled")
		return
	}

	d.superviseDevices(ctx, group, devices)
}

// superviseDevices launches one supervised capture loop per device. Device
// reads block in the kernel without a deadline, so each device is closed on
// cancellation to unblock its reader and let the group drain.
func (d *Daemon) superviseDevices(ctx context.Context, group *supervisor.Group, devices []input.Device) {
	for _, dev := range devices {
		log.Info().Str("name", dev.Name()).Str("path", dev.Path()).Msg("listening on input device")

		go func(dev input.Device) {
			<-ctx.Done()

			if err := dev.Close(); err != nil {
				log.Debug().Err(err).Str("path", dev.Path()).Msg("failed to close input device")
			}
		}(dev)

		group.Go(ctx, "listen "+dev.Path(), d.listenTask(dev))
	}
}

// listenTask returns the supervised body reading one device. Decoded barcodes
// go straight into the store; delivery is the dispatcher's business.
func (d *Daemon) listenTask(dev input.Device) supervisor.Task {
	return func(ctx context.Context) error {
		dec := decoder.New(func(barcode string) {
			if err := d.st.Insert(barcode); err != nil {
				log.Error().Err(err).Str("barcode", barcode).Msg("failed to store barcode")
				return
			}

			log.Info().Str("barcode", barcode).Str("device", dev.Name()).Msg("barcode scanned")
		})

		for {
			ev, err := dev.Next(ctx)
			if err != nil {
				return err
			}

			dec.Handle(ev)
		}
	}
}

func (d *Daemon) startDispatcher(ctx context.Context, group *supervisor.Group) {
	disp := dispatcher.New(d.st, dispatcher.Config{
		Interval:            d.cfg.Pipeline.DispatchInterval(),
		BatchSize:           d.cfg.Pipeline.BatchSize,
		RetryRemoteFailures: d.cfg.Pipeline.Retry(),
		RemoteTimeout:       d.cfg.Pipeline.RemoteTimeout(),
		Hostname:            machine.LocalHostname(),
	})

	group.Go(ctx, "dispatcher", disp.Run)
}

// startCleanup purges delivered records past the retention age.
func (d *Daemon) startCleanup(ctx context.Context, group *supervisor.Group) {
	group.Go(ctx, "cleanup", func(ctx context.Context) error {
		ticker := time.NewTicker(d.cfg.Pipeline.CleanupInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				purged, err := d.st.PurgeOlderThan(d.cfg.Pipeline.Retention())
				if err != nil {
					return err
				}

				if purged > 0 {
					log.Info().Int64("purged", purged).Msg("purged old barcodes")
				}
			}
		}
	})
}

func (d *Daemon) startLights(ctx context.Context, group *supervisor.Group) {
	var driver lights.Driver = lights.Noop{}

	pins := lights.Pins{
		Green:  d.cfg.GPIO.GreenPin,
		Red:    d.cfg.GPIO.RedPin,
		Yellow: d.cfg.GPIO.YellowPin,
	}

	if d.cfg.GPIO.Enabled {
		driver = lights.NewRPIO(pins.Green, pins.Red, pins.Yellow)
	}

	if err := driver.Setup(); err != nil {
		log.Error().Err(err).Msg("failed to set up GPIO, lights are disabled")
		return
	}

	d.lightsDriver = driver

	watcher := lights.NewWatcher(d.st, driver, pins, lights.Config{
		Interval:      d.cfg.Pipeline.LightInterval(),
		Grace:         d.cfg.Pipeline.PendingGrace(),
		FlashDuration: d.cfg.GPIO.FlashDuration(),
		FlashWait:     d.cfg.GPIO.FlashWait(),
	})

	group.Go(ctx, "lights", watcher.Run)
}

// closeLights releases the GPIO mapping so no light stays lit mid-flash
// after shutdown.
func (d *Daemon) closeLights() {
	if d.lightsDriver == nil {
		return
	}

	if err := d.lightsDriver.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close GPIO driver")
	}
}
