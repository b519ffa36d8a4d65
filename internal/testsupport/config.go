package testsupport

import (
	"path/filepath"
	"testing"

	"arrtag/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config with API keys set and logs under a temp
// directory. Console mirroring is off so test output stays quiet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Series.APIKey = "sonarr-key"
	cfg.Movies.APIKey = "radarr-key"
	cfg.Logging.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Console = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSeries points the series backend at url.
func WithSeries(url string) ConfigOption {
	return func(c *config.Config) {
		c.Series.Enabled = true
		c.Series.URL = url
	}
}

// WithMovies points the movie backend at url.
func WithMovies(url string) ConfigOption {
	return func(c *config.Config) {
		c.Movies.Enabled = true
		c.Movies.URL = url
	}
}

// WithWorkLimit sets the per-backend modification cap.
func WithWorkLimit(limit int) ConfigOption {
	return func(c *config.Config) {
		c.Run.WorkLimit = limit
	}
}

// WithDryRun toggles simulation mode.
func WithDryRun(dryRun bool) ConfigOption {
	return func(c *config.Config) {
		c.Run.DryRun = dryRun
	}
}
