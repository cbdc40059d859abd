package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if c.Widget.PulseMS < 0 {
		return errors.New("widget.pulse_ms must be positive")
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if c.Data.FetchTimeoutSeconds < 0 {
		return errors.New("data.fetch_timeout_seconds must be positive")
	}
	if c.Data.RetryIntervalMS < 0 {
		return errors.New("data.retry_interval_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
