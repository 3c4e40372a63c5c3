package config

const (
	defaultConfigPath     = "~/.config/farmwatch/config.toml"
	defaultOutputPath     = "~/.local/share/farmwatch/LiveStatus.html"
	defaultLogDir         = "~/.local/share/farmwatch/logs"
	defaultPollInterval   = 5
	defaultPageRefresh    = 10
	defaultBackendKind    = BackendHTTP
	defaultBackendURL     = "http://127.0.0.1:8082/api/jobs"
	defaultBackendTimeout = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Supported backend kinds.
const (
	BackendHTTP   = "http"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Monitor: Monitor{
			PollInterval: defaultPollInterval,
			PageRefresh:  defaultPageRefresh,
			OutputPath:   defaultOutputPath,
			OpenViewer:   true,
		},
		Backend: Backend{
			Kind:    defaultBackendKind,
			URL:     defaultBackendURL,
			Timeout: defaultBackendTimeout,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
