// Package logger initializes the global zerolog logger for the scanner
// daemon: console and/or rolling-file output, level split between info and
// error, and a prometheus counter of log statements.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter splits log entries between an info and an error output.
type LevelWriter struct {
	io.Writer
	InfoWriter  io.Writer
	ErrorWriter io.Writer
}

// WriteLevel routes warn and above to the error output, everything else to
// the info output.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	w := lw.InfoWriter
	if l >= zerolog.WarnLevel {
		w = lw.ErrorWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init configures the global zerolog logger from cfg. At least one output
// should be enabled or the daemon runs silent.
func Init(cfg Log) error {
	var (
		logLevel, err = zerolog.ParseLevel(cfg.LogLevel)
		writers       []io.Writer
		stack         bool
	)

	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	// use zerolog stack marshal func if trace level is set
	if logLevel == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}

	zerolog.SetGlobalLevel(logLevel)

	ph := NewPrometheusHook(cfg.ServiceName)

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		writers = append(writers, newRollingFile(cfg))
	}

	mw := zerolog.MultiLevelWriter(writers...)

	switch {
	case cfg.ReportCaller && stack:
		log.Logger = zerolog.New(mw).Hook(ph).With().Timestamp().Stack().Logger()
	case cfg.ReportCaller:
		log.Logger = zerolog.New(mw).Hook(ph).With().Timestamp().Caller().Logger()
	default:
		log.Logger = zerolog.New(mw).Hook(ph).With().Timestamp().Logger()
	}

	return nil
}

// newRollingFile uses LevelWriter and lumberjack to create rotated info and
// error log files.
func newRollingFile(cfg Log) io.Writer {
	if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil {
		log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create log directory")

		return nil
	}

	return &LevelWriter{
		InfoWriter: &lumberjack.Logger{
			Filename:   path.Join(cfg.File.Path, cfg.File.InfoLog),
			MaxSize:    cfg.File.InfoMaxSize,
			MaxAge:     cfg.File.InfoMaxAge,
			MaxBackups: cfg.File.InfoMaxBackups,
			LocalTime:  false,
			Compress:   false,
		},
		ErrorWriter: &lumberjack.Logger{
			Filename:   path.Join(cfg.File.Path, cfg.File.ErrorLog),
			MaxSize:    cfg.File.ErrorMaxSize,
			MaxAge:     cfg.File.ErrorMaxAge,
			MaxBackups: cfg.File.ErrorMaxBackups,
			LocalTime:  false,
			Compress:   false,
		},
	}
}

// NewConsoleWriter creates the console output, optionally in zerolog's human
// readable format.
func NewConsoleWriter(cfg Log) io.Writer {
	if cfg.Console.UseConsoleWriter {
		return &LevelWriter{
			InfoWriter: zerolog.ConsoleWriter{
				Out:        os.Stdout,
				NoColor:    false,
				TimeFormat: zerolog.TimeFieldFormat,
			},
			ErrorWriter: zerolog.ConsoleWriter{
				Out:        os.Stderr,
				NoColor:    false,
				TimeFormat: zerolog.TimeFieldFormat,
			},
		}
	}

	return &LevelWriter{InfoWriter: os.Stdout, ErrorWriter: os.Stderr}
}
