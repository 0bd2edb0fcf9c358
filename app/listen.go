package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rotostampa/piscanner/internal/decoder"
	"github.com/rotostampa/piscanner/internal/input"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(listenCmd)
}

// listenCmd dumps decoded barcodes without storing or delivering them. It is
// the quickest way to verify a scanner is wired up correctly.
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print barcodes from all input devices without storing them",
	PreRun: func(_ *cobra.Command, _ []string) {
		loadConfig()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		devices, err := input.Devices()
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			log.Warn().Msg("no input devices found")
			return nil
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		for _, dev := range devices {
			log.Info().Str("name", dev.Name()).Str("path", dev.Path()).Msg("listening")

			go func(dev input.Device) {
				dec := decoder.New(func(barcode string) {
					log.Info().Str("barcode", barcode).Str("device", dev.Name()).Msg("scanned")
				})

				for {
					ev, err := dev.Next(ctx)
					if err != nil {
						log.Error().Err(err).Str("device", dev.Name()).Msg("device read failed")
						return
					}

					dec.Handle(ev)
				}
			}(dev)
		}

		<-ctx.Done()

		// unblock readers stuck in the kernel
		for _, dev := range devices {
			_ = dev.Close()
		}

		return nil
	},
}
