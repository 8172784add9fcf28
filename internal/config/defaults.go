package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8640,
			MaxUploadBytes: 10485760,
		},
		Export: ExportConfig{
			DefaultDaysBack: 7,
		},
		Storage: StorageConfig{
			ArtifactDir:         "~/.config/studyscope/history_data",
			SweepIntervalHours:  1,
			MaxArtifactAgeHours: 24,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
