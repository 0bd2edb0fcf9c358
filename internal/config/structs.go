package config

import (
	"time"

	"github.com/rotostampa/piscanner/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	DB        DB
	Log       logger.Log
	Webserver Webserver
	Pipeline  Pipeline
	GPIO      GPIO
}

// DB holds the database file settings.
type DB struct {
	// Path of the sqlite file. Defaults to piscanner.db in the home
	// directory.
	Path string `toml:"path"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int `toml:"port" validate:"required,min=1,max=65535"` // listening port
	ShutDownTime int `toml:"shutDownTime"`                             // wait time for shutdown in seconds
}

// Pipeline carries the timing and policy knobs of the capture-to-delivery
// pipeline. Zero values are replaced with the documented defaults during
// validation.
type Pipeline struct {
	// DispatchIntervalSeconds between dispatcher cycles. Default 5.
	DispatchIntervalSeconds int `toml:"dispatchIntervalSeconds"`

	// BatchSize caps pending records read per cycle. Default 100.
	BatchSize int `toml:"batchSize"`

	// RemoteTimeoutSeconds bounds one delivery request. Default 30.
	RemoteTimeoutSeconds int `toml:"remoteTimeoutSeconds"`

	// RetryRemoteFailures keeps records pending after failed delivery
	// attempts so they are retried. Default true.
	RetryRemoteFailures *bool `toml:"retryRemoteFailures"`

	// CleanupIntervalSeconds between purge runs. Default 3600.
	CleanupIntervalSeconds int `toml:"cleanupIntervalSeconds"`

	// RetentionSeconds before a record is purged. Default 86400.
	RetentionSeconds int `toml:"retentionSeconds"`

	// LightIntervalSeconds between indicator polls. Default 1.
	LightIntervalSeconds int `toml:"lightIntervalSeconds"`

	// PendingGraceSeconds before a pending record counts against the
	// indicator. Default 5.
	PendingGraceSeconds int `toml:"pendingGraceSeconds"`

	// BackoffSeconds before a failed task restarts. Default 1.
	BackoffSeconds int `toml:"backoffSeconds"`
}

// GPIO holds the status light pin assignment.
type GPIO struct {
	Enabled bool `toml:"enabled"`

	GreenPin  int `toml:"greenPin"`  // default 3
	RedPin    int `toml:"redPin"`    // default 4
	YellowPin int `toml:"yellowPin"` // default 2

	FlashDurationMillis int `toml:"flashDurationMillis"` // default 300
	FlashWaitMillis     int `toml:"flashWaitMillis"`     // default 200
}

// DispatchInterval returns the dispatcher cycle interval.
func (p Pipeline) DispatchInterval() time.Duration {
	return time.Duration(p.DispatchIntervalSeconds) * time.Second
}

// RemoteTimeout returns the delivery request timeout.
func (p Pipeline) RemoteTimeout() time.Duration {
	return time.Duration(p.RemoteTimeoutSeconds) * time.Second
}

// CleanupInterval returns the purge run interval.
func (p Pipeline) CleanupInterval() time.Duration {
	return time.Duration(p.CleanupIntervalSeconds) * time.Second
}

// Retention returns the record retention age.
func (p Pipeline) Retention() time.Duration {
	return time.Duration(p.RetentionSeconds) * time.Second
}

// LightInterval returns the indicator poll interval.
func (p Pipeline) LightInterval() time.Duration {
	return time.Duration(p.LightIntervalSeconds) * time.Second
}

// PendingGrace returns the pending-count grace window.
func (p Pipeline) PendingGrace() time.Duration {
	return time.Duration(p.PendingGraceSeconds) * time.Second
}

// Backoff returns the supervisor restart back-off.
func (p Pipeline) Backoff() time.Duration {
	return time.Duration(p.BackoffSeconds) * time.Second
}

// Retry reports whether failed delivery attempts leave records pending.
func (p Pipeline) Retry() bool {
	return p.RetryRemoteFailures == nil || *p.RetryRemoteFailures
}

// FlashDuration returns how long a light stays on per flash.
func (g GPIO) FlashDuration() time.Duration {
	return time.Duration(g.FlashDurationMillis) * time.Millisecond
}

// FlashWait returns the pause after a flash.
func (g GPIO) FlashWait() time.Duration {
	return time.Duration(g.FlashWaitMillis) * time.Millisecond
}
