package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	normalizeBackend(&c.Series, "SONARR_API_KEY")
	normalizeBackend(&c.Movies, "RADARR_API_KEY")
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
	return nil
}

func normalizeBackend(b *Backend, envKey string) {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	b.APIKey = strings.TrimSpace(b.APIKey)
	if b.APIKey == "" {
		if value, ok := os.LookupEnv(envKey); ok {
			b.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() error {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	return nil
}
