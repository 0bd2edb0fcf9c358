// Package main provides the entry point for the barcode capture daemon.
// It reads USB barcode scanners as raw evdev input devices, persists every
// decoded scan in a local sqlite database and delivers batches to a remote
// HTTP endpoint. A Fiber based web dashboard exposes recent scans, the
// resolved settings and Prometheus metrics, and GPIO lights signal the
// pipeline state on the device itself.
package main
