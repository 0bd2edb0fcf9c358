package store

// Setting keys known to the pipeline. Free-form keys arriving through
// settings barcodes are stored verbatim next to these.
const (
	// KeyServerToken is the bearer token sent with outbound deliveries.
	// Empty disables the Authorization header.
	KeyServerToken = "PISCANNER_SERVER_TOKEN"

	// KeyServerHost is the scheme+host of the delivery endpoint.
	KeyServerHost = "PISCANNER_SERVER_HOST"

	// KeyServerPath is the request path of the delivery endpoint.
	KeyServerPath = "PISCANNER_SERVER_PATH"

	// KeyServerStep is forwarded as the "step" form field when non-zero.
	KeyServerStep = "PISCANNER_SERVER_STEP"

	// KeyServerInsecure disables certificate verification when "1".
	KeyServerInsecure = "PISCANNER_SERVER_INSECURE"

	// KeyFieldHostname names the form field carrying the local hostname.
	KeyFieldHostname = "PISCANNER_FIELD_HOSTNAME"

	// KeyFieldBarcode names the repeated form field carrying the payloads.
	KeyFieldBarcode = "PISCANNER_FIELD_BARCODE"

	// KeyMachineUUID is minted once at first Init and never overwritten.
	KeyMachineUUID = "PISCANNER_MACHINE_UUID"
)

// Defaults returns the built-in settings. Settings() merges stored rows over
// this map, so a key that was never written still resolves.
func Defaults() map[string]string {
	return map[string]string{
		KeyServerToken:    "",
		KeyServerHost:     "https://rotostampa.com",
		KeyServerPath:     "/api/storage/piscanner-notify-barcode/",
		KeyServerStep:     "0",
		KeyServerInsecure: "0",
		KeyFieldHostname:  "hostname",
		KeyFieldBarcode:   "barcode",
	}
}
