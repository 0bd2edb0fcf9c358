package app

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rotostampa/piscanner/internal/lights"
)

func init() { //nolint: gochecknoinits
	lightsCmd.Flags().StringVar(&lightName, "light", "green", "Light to flash: green, red or yellow")
	lightsCmd.Flags().DurationVar(&lightDuration, "duration", 300*time.Millisecond, "How long the light stays on")
	lightsCmd.Flags().DurationVar(&lightWait, "wait", 200*time.Millisecond, "Pause after the flash")

	rootCmd.AddCommand(lightsCmd)
}

var (
	lightName     string
	lightDuration time.Duration
	lightWait     time.Duration

	lightsCmd = &cobra.Command{
		Use:   "lights",
		Short: "Flash one of the GPIO status lights",
		PreRun: func(_ *cobra.Command, _ []string) {
			loadConfig()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			var pin int

			switch lightName {
			case "green":
				pin = cfg.GPIO.GreenPin
			case "red":
				pin = cfg.GPIO.RedPin
			case "yellow":
				pin = cfg.GPIO.YellowPin
			default:
				return errUnknownLight
			}

			var driver lights.Driver = lights.Noop{}
			if cfg.GPIO.Enabled {
				driver = lights.NewRPIO(pin)
			}

			if err := driver.Setup(); err != nil {
				return err
			}
			defer driver.Close()

			log.Info().Str("light", lightName).Int("pin", pin).Msg("flashing")

			if err := driver.Set(pin, true); err != nil {
				return err
			}

			time.Sleep(lightDuration)

			if err := driver.Set(pin, false); err != nil {
				return err
			}

			time.Sleep(lightWait)

			return nil
		},
	}
)
