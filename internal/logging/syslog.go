package logging

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
)

// syslogWriter is the subset of *syslog.Writer used for logging.
type syslogWriter interface {
	io.Closer
	Debug(m string) error
	Notice(m string) error
	Warning(m string) error
	Err(m string) error
}

// levelWriter forwards text handler output to syslog at the priority named
// by the line's level attribute. Info records are sent at notice priority.
type levelWriter struct {
	w syslogWriter
}

func (lw *levelWriter) Write(p []byte) (int, error) {
	line := string(bytes.TrimRight(p, "\n"))

	var err error
	switch {
	case strings.HasPrefix(line, "level=ERROR"):
		err = lw.w.Err(line)
	case strings.HasPrefix(line, "level=WARN"):
		err = lw.w.Warning(line)
	case strings.HasPrefix(line, "level=DEBUG"):
		err = lw.w.Debug(line)
	default:
		err = lw.w.Notice(line)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// newSyslogHandler returns a text handler without timestamps, since syslog
// stamps messages itself.
func newSyslogHandler(w syslogWriter, level slog.Level) slog.Handler {
	return slog.NewTextHandler(&levelWriter{w: w}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}
