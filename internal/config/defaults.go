package config

const (
	defaultConfigPath          = "~/.config/lyricsbox/config.toml"
	projectConfigName          = "lyricsbox.toml"
	defaultFetchTimeoutSeconds = 15
	defaultRetryIntervalMS     = 500
	defaultBind                = "127.0.0.1:7460"
	defaultPulseMS             = 300
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Data: Data{
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
			RetryIntervalMS:     defaultRetryIntervalMS,
		},
		Server: Server{
			Bind:           defaultBind,
			AllowedOrigins: []string{"*"},
		},
		Widget: Widget{
			PulseMS: defaultPulseMS,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
