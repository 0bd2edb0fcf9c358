package store

import (
	"time"
)

// Record statuses written by the pipeline. A record starts as StatusScanned
// and receives exactly one terminal status when the dispatcher resolves it.
const (
	// StatusScanned is the initial status of every inserted record.
	StatusScanned = "Scanned"

	// StatusAccepted means the remote endpoint confirmed delivery.
	StatusAccepted = "Accepted"

	// StatusSettingsChanged means the barcode carried a settings payload
	// that was applied.
	StatusSettingsChanged = "SettingsChanged"

	// StatusInvalidBarcode means the payload matched no known pattern or
	// was malformed.
	StatusInvalidBarcode = "InvalidBarcode"

	// StatusConnectionError means the outbound delivery request could not
	// be completed at the transport level.
	StatusConnectionError = "ConnectionError"

	// StatusInvalidResponse means the remote endpoint answered 200 but the
	// body did not carry the expected success indicator.
	StatusInvalidResponse = "InvalidResponse"

	// HTTPErrorPrefix prefixes statuses built from non-200 response codes,
	// e.g. "HTTPError503".
	HTTPErrorPrefix = "HTTPError"
)

// Barcode represents one scanned payload and its delivery state.
//
// CompletedAt is nil while the record is pending; it is set exactly once,
// together with the terminal status, by SetStatusBatch.
type Barcode struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Barcode     string     `gorm:"not null" json:"barcode"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Status      string     `gorm:"not null;default:Scanned" json:"status"`
}

// TableName implements the gorm table naming interface.
func (Barcode) TableName() string {
	return "barcodes"
}

// Pending reports whether the record still awaits a terminal outcome.
func (b *Barcode) Pending() bool {
	return b.CompletedAt == nil
}

// Setting represents one key/value configuration row.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName implements the gorm table naming interface.
func (Setting) TableName() string {
	return "settings"
}
