// Package dispatcher moves pending records through classification, handling
// and status reconciliation. Once per interval it reads a batch of pending
// records, groups the distinct barcode values by the first matching pattern,
// invokes each group's handler once, and writes the resolved statuses back to
// the store in a single batch.
package dispatcher

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rotostampa/piscanner/internal/store"
)

// Config carries the dispatcher's tunables.
type Config struct {
	// Interval between cycles.
	Interval time.Duration

	// BatchSize caps how many pending records one cycle reads.
	BatchSize int

	// RetryRemoteFailures keeps records pending after a failed delivery
	// attempt so the next cycle retries them. When false, failures are
	// recorded terminally with their error status.
	RetryRemoteFailures bool

	// RemoteTimeout bounds one outbound delivery request.
	RemoteTimeout time.Duration

	// Hostname reported in every delivery.
	Hostname string
}

// Dispatcher is the pipeline's decision engine.
type Dispatcher struct {
	store    *store.Store
	cfg      Config
	matchers []matcher
}

// New builds a dispatcher with the standard matcher order: settings barcodes
// first, then remote orders, then the catch-all invalid group.
func New(st *store.Store, cfg Config) *Dispatcher {
	d := &Dispatcher{store: st, cfg: cfg}

	sender := &remote{hostname: cfg.Hostname, timeout: cfg.RemoteTimeout}

	d.matchers = []matcher{
		{name: "settings", matches: matchSettings, handle: d.handleSettings},
		{name: "order", matches: matchOrder, handle: sender.deliver},
		{name: "invalid", matches: matchAny, handle: handleInvalid},
	}

	return d
}

// Run executes cycles until ctx is cancelled. It is the supervised task body:
// a failing cycle propagates its error and the supervisor restarts the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := d.Cycle(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Cycle performs one poll/classify/handle/reconcile pass. An empty pending
// set is a no-op: nothing is classified and nothing is written.
func (d *Dispatcher) Cycle(ctx context.Context) error {
	cyclesTotal.Inc()

	records, err := d.store.Read(d.cfg.BatchSize, true)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	settings, err := d.store.Settings()
	if err != nil {
		return err
	}

	// Multiple ids can share one payload (same code scanned twice); remote
	// calls and handlers see each distinct value once.
	idsByValue := make(map[string][]uint64, len(records))
	for _, record := range records {
		idsByValue[record.Barcode] = append(idsByValue[record.Barcode], record.ID)
	}

	statuses, err := d.resolve(ctx, settings, idsByValue)
	if err != nil {
		return err
	}

	batch := d.reconcile(idsByValue, statuses)

	return d.store.SetStatusBatch(batch)
}

// resolve classifies the distinct values and invokes each matched group's
// handler once, returning the value→status map for the whole batch.
func (d *Dispatcher) resolve(
	ctx context.Context, settings map[string]string, idsByValue map[string][]uint64,
) (map[string]string, error) {
	groups := make(map[string][]string, len(d.matchers))

	for value := range idsByValue {
		for _, m := range d.matchers {
			if m.matches(value) {
				groups[m.name] = append(groups[m.name], value)
				break
			}
		}
	}

	statuses := make(map[string]string, len(idsByValue))

	for _, m := range d.matchers {
		values := groups[m.name]
		if len(values) == 0 {
			continue
		}

		log.Debug().Str("group", m.name).Int("values", len(values)).Msg("handling group")

		resolved, err := m.handle(ctx, settings, values)
		if err != nil {
			return nil, err
		}

		for _, value := range values {
			status, ok := resolved[value]
			if !ok || status == "" {
				// Contract violation: a handler must resolve every
				// value it was given.
				log.Error().Str("group", m.name).Str("barcode", value).
					Msg("handler returned no status, marking invalid")

				status = store.StatusInvalidBarcode
			}

			statuses[value] = status
		}
	}

	return statuses, nil
}

// reconcile fans the per-value statuses back out to ids, grouped by status
// for the batch write. Retryable outcomes are withheld when the retry policy
// is on, leaving those records pending for the next cycle.
func (d *Dispatcher) reconcile(
	idsByValue map[string][]uint64, statuses map[string]string,
) map[string][]uint64 {
	batch := make(map[string][]uint64, len(statuses))

	for value, status := range statuses {
		ids := idsByValue[value]

		if d.cfg.RetryRemoteFailures && IsRetryable(status) {
			retriedTotal.Add(float64(len(ids)))
			log.Info().Str("barcode", value).Str("status", status).
				Msg("delivery failed, record stays pending for retry")

			continue
		}

		outcomesTotal.WithLabelValues(status).Add(float64(len(ids)))
		batch[status] = append(batch[status], ids...)
	}

	return batch
}

// IsRetryable reports whether a status describes a failed delivery attempt
// rather than a terminal outcome.
func IsRetryable(status string) bool {
	return status == store.StatusConnectionError ||
		status == store.StatusInvalidResponse ||
		strings.HasPrefix(status, store.HTTPErrorPrefix)
}

// handleSettings applies settings barcodes: every well-formed payload's
// parameters are merged and written in one store call. Each payload is
// re-parsed here even though the matcher already did, so a malformed value
// that slipped through resolves to invalid instead of failing the cycle.
// A failing settings write is a store I/O error and aborts the cycle.
func (d *Dispatcher) handleSettings(
	_ context.Context, _ map[string]string, values []string,
) (map[string]string, error) {
	statuses := make(map[string]string, len(values))
	merged := make(map[string]string)

	for _, value := range values {
		params, ok := parseSettingsBarcode(value)
		if !ok {
			statuses[value] = store.StatusInvalidBarcode
			continue
		}

		for key, vals := range params {
			if len(vals) > 0 {
				merged[key] = vals[len(vals)-1]
			}
		}

		statuses[value] = store.StatusSettingsChanged
	}

	if len(merged) > 0 {
		if err := d.store.SetSettings(merged); err != nil {
			return nil, err
		}

		log.Info().Int("keys", len(merged)).Msg("settings updated from barcode")
	}

	return statuses, nil
}

// handleInvalid terminally resolves everything it is given.
func handleInvalid(_ context.Context, _ map[string]string, values []string) (map[string]string, error) {
	return resolveAll(values, store.StatusInvalidBarcode), nil
}
