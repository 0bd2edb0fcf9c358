package logger

// Console implements a console based logger.
type Console struct {
	Enabled bool `toml:"enabled"`

	// UseConsoleWriter switches from JSON lines to zerolog's human
	// readable console format.
	UseConsoleWriter bool `toml:"useConsoleWriter"`
}

// LogFile implements a file based logger with rotation.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string `toml:"logLevel"` // trace, debug, info, warn, error.

	// ReportCaller adds the calling file and line to every entry.
	ReportCaller bool `toml:"reportCaller"`

	// DisableCheckAlive suppresses access logging of /checkalive calls.
	DisableCheckAlive bool `toml:"disableCheckAlive"`

	// EnableAccessLogToConsole mirrors the access log to stdout.
	EnableAccessLogToConsole bool `toml:"enableAccessLogToConsole"`

	AppName     string `toml:"appName"`
	ServiceName string `toml:"serviceName"`

	// Console used mainly for dev and systemd/journald setups.
	Console Console `toml:"console"`

	// File logging for installations without a log collector.
	File LogFile `toml:"file"`
}
