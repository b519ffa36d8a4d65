package config

const (
	defaultConfigPath           = "~/.config/arrtag/config.toml"
	defaultSeriesURL            = "http://localhost:8989"
	defaultMoviesURL            = "http://localhost:7878"
	defaultWorkLimit            = 10
	defaultLogDir               = "~/.local/share/arrtag/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 1
	defaultLogMaxBackups        = 5
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Series: Backend{
			Enabled: true,
			URL:     defaultSeriesURL,
		},
		Movies: Backend{
			Enabled: true,
			URL:     defaultMoviesURL,
		},
		Run: Run{
			WorkLimit: defaultWorkLimit,
		},
		Logging: Logging{
			Dir:        defaultLogDir,
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			Console:    true,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
	}
}
