// Package logging builds the process logger: a JSON or text slog handler on
// stdout, optionally fanned out to syslog and a rotated log file.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"gitlab.bluewillows.net/root/leasezone/internal/config"
)

// SyslogTag identifies leasezone messages in the system log.
const SyslogTag = "leasezone"

// Logger is a configured logger plus the sinks it has to flush on exit.
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// Close closes the syslog connection and the log file, if any.
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New creates a Logger writing to stdout and to the extra sinks cfg enables.
func New(cfg config.LoggingConfig, stdout io.Writer) (*Logger, error) {
	level := ParseLevel(cfg.Level)
	handlers := []slog.Handler{newHandler(stdout, cfg.Format, level)}
	l := &Logger{}

	if cfg.Syslog {
		w, err := dialSyslog(SyslogTag)
		if err != nil {
			return nil, fmt.Errorf("connecting to syslog: %w", err)
		}
		handlers = append(handlers, newSyslogHandler(w, level))
		l.closers = append(l.closers, w)
	}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxAge:     cfg.MaxAgeDays,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   true,
		}
		handlers = append(handlers, newHandler(file, cfg.Format, level))
		l.closers = append(l.closers, file)
	}

	if len(handlers) == 1 {
		l.Logger = slog.New(handlers[0])
	} else {
		l.Logger = slog.New(multiHandler(handlers))
	}

	return l, nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
