package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rotostampa/piscanner/internal/store"
	"github.com/rotostampa/piscanner/internal/uniuri"
)

const (
	populatePrefix    = "44X"
	populateSuffixLen = 8
)

func init() { //nolint: gochecknoinits
	populateCmd.Flags().IntVar(&populateCount, "count", 10, "Number of barcodes to insert")

	rootCmd.AddCommand(populateCmd)
}

var (
	populateCount int

	populateCmd = &cobra.Command{
		Use:   "populate",
		Short: "Insert synthetic barcodes for testing the pipeline",
		PreRun: func(_ *cobra.Command, _ []string) {
			loadConfig()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := store.Open(cfg.DB.Path)
			if err != nil {
				return err
			}

			if err = st.Init(); err != nil {
				return err
			}

			for i := 0; i < populateCount; i++ {
				barcode := populatePrefix + uniuri.NewLenChars(populateSuffixLen, uniuri.LowercaseChars)

				if err = st.Insert(barcode); err != nil {
					return err
				}

				log.Info().Str("barcode", barcode).Msg("inserted")
			}

			return nil
		},
	}
)
