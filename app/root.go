// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/rotostampa/piscanner/internal/config"
	"github.com/rotostampa/piscanner/internal/logger"
)

var (
	configPath string // Path to the configuration file
	cfg        config.Config
	err        error

	rootCmd = &cobra.Command{
		Use:   "piscanner",
		Short: "piscanner captures barcode scans and delivers them to a remote server",
		Long: `piscanner reads USB barcode scanners as raw input devices, stores every
decoded scan locally, and forwards batches to a configurable HTTP endpoint.
A small web dashboard shows recent scans and the active settings.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"Path to the configuration directory (default ./etc/)",
	)
}

// loadConfig reads the configuration and initializes logging. Commands call
// it from PreRun so flags are already parsed.
func loadConfig() {
	if cfg, err = config.ReadConfig(configPath); err != nil {
		panic(err)
	}

	if err = logger.Init(cfg.Log); err != nil {
		panic(err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
