package config

const (
	defaultQbitHost       = "http://qbittorrent:8080"
	defaultQbitUsername   = "admin"
	defaultQbitTimeout    = 30
	defaultHistoryPath    = "~/.local/share/flotsam/history.db"
	defaultLogDir         = "~/.local/share/flotsam/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryEnabled = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Qbittorrent: Qbittorrent{
			Host:           defaultQbitHost,
			Username:       defaultQbitUsername,
			TimeoutSeconds: defaultQbitTimeout,
		},
		Scan: Scan{
			CategoryFolders: map[string]string{},
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
