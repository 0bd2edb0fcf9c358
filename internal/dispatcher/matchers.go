package dispatcher

import (
	"context"
	"net/url"
	"regexp"
)

const (
	// SettingsScheme is the URI scheme recognized on settings barcodes,
	// e.g. piscanner://settings?TOKEN=xyz.
	SettingsScheme = "piscanner"

	// settingsHost is the namespace segment of a settings barcode.
	settingsHost = "settings"
)

// orderPattern recognizes remote-order payloads: anything starting with a
// decimal numeric prefix.
var orderPattern = regexp.MustCompile(`^[0-9]+`)

// matcher pairs a predicate with the handler for all values it claims.
// Matchers are evaluated top-to-bottom; the first match wins.
type matcher struct {
	name    string
	matches func(value string) bool
	handle  handler
}

// handler resolves a group of distinct barcode values to a value→status map.
// A handler must return a status for every value it was given; the dispatcher
// treats missing entries as invalid so no record stays pending by accident.
// A non-nil error aborts the cycle without writing any outcome: the records
// stay pending and the supervisor restarts the loop.
type handler func(ctx context.Context, settings map[string]string, values []string) (map[string]string, error)

// parseSettingsBarcode extracts the staged key/value parameters from a
// settings barcode. The ok result is false for anything that is not a
// well-formed settings URI.
func parseSettingsBarcode(value string) (url.Values, bool) {
	u, err := url.Parse(value)
	if err != nil || u.Scheme != SettingsScheme || u.Host != settingsHost {
		return nil, false
	}

	params, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, false
	}

	return params, true
}

func matchSettings(value string) bool {
	_, ok := parseSettingsBarcode(value)
	return ok
}

func matchOrder(value string) bool {
	return orderPattern.MatchString(value)
}

func matchAny(string) bool {
	return true
}
