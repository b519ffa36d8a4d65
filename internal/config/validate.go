package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validateBackend("series", c.Series); err != nil {
		return err
	}
	if err := validateBackend("movies", c.Movies); err != nil {
		return err
	}
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func validateBackend(section string, b Backend) error {
	if !b.Enabled {
		return nil
	}
	if strings.TrimSpace(b.URL) == "" {
		return fmt.Errorf("%s.url must be set when %s.enabled is true", section, section)
	}
	parsed, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("%s.url: %w", section, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s.url must use http or https, got %q", section, b.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s.url must include a host, got %q", section, b.URL)
	}
	return nil
}

func (c *Config) validateRun() error {
	if c.Run.WorkLimit < 0 {
		return errors.New("run.work_limit must be >= 0 (0 disables the limit)")
	}
	if c.HTTP.RequestTimeout < 0 {
		return errors.New("http.request_timeout must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB <= 0 {
		return errors.New("logging.max_size_mb must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.NtfyTopic == "" {
		return nil
	}
	parsed, err := url.Parse(c.Notifications.NtfyTopic)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be a full URL, got %q", c.Notifications.NtfyTopic)
	}
	return nil
}
