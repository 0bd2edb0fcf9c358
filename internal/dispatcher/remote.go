package dispatcher

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rotostampa/piscanner/internal/store"
)

// maxResponseBytes caps how much of a delivery response is read.
const maxResponseBytes = 1 << 20

// remote delivers batches of order barcodes to the settings-configured
// endpoint. It never retries internally: an unresolved record stays pending
// and is picked up again on the next dispatcher cycle.
type remote struct {
	hostname string
	timeout  time.Duration
}

// deliveryResponse is the expected 200 body. Status "ok" confirms the whole
// batch; Barcodes optionally overrides the status of individual payloads.
type deliveryResponse struct {
	Status   string            `json:"status"`
	Barcodes map[string]string `json:"barcodes"`
}

// deliver POSTs the batch and resolves every value to a status. All values
// in a batch share the outcome of the single request, except for per-barcode
// overrides returned by the endpoint. Transport and HTTP failures become
// statuses, never errors: delivery problems must not abort the cycle.
func (r *remote) deliver(
	ctx context.Context, settings map[string]string, values []string,
) (map[string]string, error) {
	endpoint := settings[store.KeyServerHost] + settings[store.KeyServerPath]

	form := url.Values{}
	form.Set(settings[store.KeyFieldHostname], r.hostname)

	for _, value := range values {
		form.Add(settings[store.KeyFieldBarcode], value)
	}

	if step := settings[store.KeyServerStep]; step != "" && step != "0" {
		form.Set("step", step)
	}

	if machineUUID := settings[store.KeyMachineUUID]; machineUUID != "" {
		form.Set("machine", machineUUID)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()),
	)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to build delivery request")

		return resolveAll(values, store.StatusConnectionError), nil
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if token := settings[store.KeyServerToken]; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := r.client(settings).Do(req)
	remoteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Int("batch", len(values)).
			Msg("delivery request failed")

		return resolveAll(values, store.StatusConnectionError), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("code", resp.StatusCode).Str("endpoint", endpoint).
			Msg("delivery rejected")

		return resolveAll(values, fmt.Sprintf("%s%d", store.HTTPErrorPrefix, resp.StatusCode)), nil
	}

	var body deliveryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("unparsable delivery response")

		return resolveAll(values, store.StatusInvalidResponse), nil
	}

	if body.Status != "ok" {
		log.Warn().Str("status", body.Status).Str("endpoint", endpoint).
			Msg("delivery response without success indicator")

		return resolveAll(values, store.StatusInvalidResponse), nil
	}

	statuses := resolveAll(values, store.StatusAccepted)
	for value, status := range body.Barcodes {
		if _, ok := statuses[value]; ok && status != "" {
			statuses[value] = status
		}
	}

	log.Info().Int("batch", len(values)).Str("endpoint", endpoint).Msg("batch delivered")

	return statuses, nil
}

// client builds the HTTP client for one delivery, honoring the certificate
// verification toggle from settings.
func (r *remote) client(settings map[string]string) *http.Client {
	client := &http.Client{Timeout: r.timeout}

	if settings[store.KeyServerInsecure] == "1" {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}

	return client
}

func resolveAll(values []string, status string) map[string]string {
	statuses := make(map[string]string, len(values))
	for _, value := range values {
		statuses[value] = status
	}

	return statuses
}
