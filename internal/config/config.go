// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EnvConfigJSON is the environment variable carrying a JSON override merged
// over the TOML file.
const EnvConfigJSON = "PISCANNER_CONFIG_JSON"

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyDefaults(&c)

	return c, validate(c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// applyDefaults fills unset values with the documented defaults.
func applyDefaults(c *Config) {
	if c.DB.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}

		c.DB.Path = filepath.Join(home, "piscanner.db")
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5
	}

	p := &c.Pipeline
	if p.DispatchIntervalSeconds == 0 {
		p.DispatchIntervalSeconds = 5
	}

	if p.BatchSize == 0 {
		p.BatchSize = 100
	}

	if p.RemoteTimeoutSeconds == 0 {
		p.RemoteTimeoutSeconds = 30
	}

	if p.CleanupIntervalSeconds == 0 {
		p.CleanupIntervalSeconds = 3600
	}

	if p.RetentionSeconds == 0 {
		p.RetentionSeconds = 86400
	}

	if p.LightIntervalSeconds == 0 {
		p.LightIntervalSeconds = 1
	}

	if p.PendingGraceSeconds == 0 {
		p.PendingGraceSeconds = 5
	}

	if p.BackoffSeconds == 0 {
		p.BackoffSeconds = 1
	}

	g := &c.GPIO
	if g.GreenPin == 0 {
		g.GreenPin = 3
	}

	if g.RedPin == 0 {
		g.RedPin = 4
	}

	if g.YellowPin == 0 {
		g.YellowPin = 2
	}

	if g.FlashDurationMillis == 0 {
		g.FlashDurationMillis = 300
	}

	if g.FlashWaitMillis == 0 {
		g.FlashWaitMillis = 200
	}
}

// validate minimal config settings for the daemon.
func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.DB.Path == "" {
		return errors.Wrap(ErrEmptyDBPath, invalidErrMessage)
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}
