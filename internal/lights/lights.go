// Package lights derives the three-state pipeline health signal from the
// store and drives the physical indicator: no pending records means ready
// (green), pending records mean error (red), a failing health check itself
// flashes yellow.
package lights

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var pendingGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "piscanner_pending_barcodes",
	Help: "Pending records outside the grace window, as seen by the light poller.",
})

// Pins holds the BCM pin assignment for the three lights.
type Pins struct {
	Green  int
	Red    int
	Yellow int
}

// PendingCounter is the slice of the store the watcher needs.
type PendingCounter interface {
	CountPending(olderThan time.Duration) (int64, error)
}

// Config carries the watcher's tunables.
type Config struct {
	// Interval between health polls.
	Interval time.Duration

	// Grace excludes records younger than this from the pending count, so
	// scans still in flight do not flip the light to red.
	Grace time.Duration

	// FlashDuration is how long a light stays on per flash.
	FlashDuration time.Duration

	// FlashWait is the pause after a flash before the next poll.
	FlashWait time.Duration
}

// Watcher polls the store and flashes the matching light.
type Watcher struct {
	counter PendingCounter
	driver  Driver
	pins    Pins
	cfg     Config
}

// NewWatcher builds a watcher over the given driver. The driver's Setup must
// have been called by the owner.
func NewWatcher(counter PendingCounter, driver Driver, pins Pins, cfg Config) *Watcher {
	return &Watcher{counter: counter, driver: driver, pins: pins, cfg: cfg}
}

// Run is the supervised task body: poll, flash, sleep, repeat.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.Interval):
		}

		if err := w.poll(ctx); err != nil {
			return err
		}
	}
}

// poll reads the pending count and flashes one light. A failing count read
// flashes yellow and propagates so the supervisor restarts the loop.
func (w *Watcher) poll(ctx context.Context) error {
	count, err := w.counter.CountPending(w.cfg.Grace)
	if err != nil {
		_ = w.flash(ctx, w.pins.Yellow)

		return err
	}

	pendingGauge.Set(float64(count))

	pin := w.pins.Green
	if count > 0 {
		pin = w.pins.Red

		log.Debug().Int64("pending", count).Msg("pending records, flashing red")
	}

	return w.flash(ctx, pin)
}

// flash turns a pin on for FlashDuration, off again, then waits FlashWait.
// The light is lowered even when the context ends mid-flash.
func (w *Watcher) flash(ctx context.Context, pin int) error {
	if err := w.driver.Set(pin, true); err != nil {
		return err
	}

	sleep(ctx, w.cfg.FlashDuration)

	if err := w.driver.Set(pin, false); err != nil {
		return err
	}

	sleep(ctx, w.cfg.FlashWait)

	return ctx.Err()
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
