package config

// TxParamsConfig is the top level configuration of the transaction parameters service
type TxParamsConfig struct {
	GeneralConfig GeneralConfig
	GasStation    GasStationConfig
	Sentry        SentryConfig
}

// GeneralConfig holds the general configuration
type GeneralConfig struct {
	NetworkAddress        string
	GasEstimationAPI      string
	ChainID               string
	GasMarkup             float64
	FetchTimeoutInSeconds int
	MaxSessions           int
	Logs                  LogsConfig
}

// LogsConfig holds the log files rotation settings
type LogsConfig struct {
	LogFileLifeSpanInSec int
	LogFileLifeSpanInMB  int
}

// GasStationConfig holds the gas defaults poller configuration
type GasStationConfig struct {
	Enabled               bool
	FetcherName           string
	ApiURL                string
	Selector              string
	PollIntervalInSeconds int
}

// SentryConfig holds the optional Sentry error reporting configuration
type SentryConfig struct {
	DSN         string
	Environment string
}

// ContextFlagsConfig the configuration for flags
type ContextFlagsConfig struct {
	WorkingDir        string
	LogLevel          string
	DisableAnsiColor  bool
	ConfigurationFile string
	SaveLogFile       bool
	EnableLogName     bool
	RestApiInterface  string
}
