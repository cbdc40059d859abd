package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeData(); err != nil {
		return err
	}
	c.normalizeServer()
	if c.Widget.PulseMS == 0 {
		c.Widget.PulseMS = defaultPulseMS
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeData() error {
	if value, ok := os.LookupEnv(EnvSource); ok && strings.TrimSpace(value) != "" {
		c.Data.Source = value
	}
	c.Data.Source = strings.TrimSpace(c.Data.Source)
	if c.Data.Source != "" && !isRemote(c.Data.Source) && strings.HasPrefix(c.Data.Source, "~") {
		expanded, err := expandPath(c.Data.Source)
		if err != nil {
			return fmt.Errorf("data.source: %w", err)
		}
		c.Data.Source = expanded
	}
	if c.Data.FetchTimeoutSeconds == 0 {
		c.Data.FetchTimeoutSeconds = defaultFetchTimeoutSeconds
	}
	if c.Data.RetryIntervalMS == 0 {
		c.Data.RetryIntervalMS = defaultRetryIntervalMS
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	origins := c.Server.AllowedOrigins[:0]
	for _, o := range c.Server.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.Server.AllowedOrigins = origins
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
