// Package log holds the process wide logger, a zap sugared logger once
// a command has started and slog before that.
package log

import (
	"log/slog"
	"os"
)

// Logger is the sugared logging surface used across the module
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Fatalw(msg string, keysAndValues ...any)
}

type slogger struct {
	l *slog.Logger
}

// Default serves until Set is called
var Default Logger = &slogger{l: slog.Default()}

// Set installs logger as the default, nil is ignored
func Set(logger Logger) {
	if logger != nil {
		Default = logger
	}
}

func Get() Logger {
	return Default
}

func (z *slogger) Debugw(msg string, keysAndValues ...any) {
	z.l.Debug(msg, keysAndValues...)
}

func (z *slogger) Infow(msg string, keysAndValues ...any) {
	z.l.Info(msg, keysAndValues...)
}

func (z *slogger) Warnw(msg string, keysAndValues ...any) {
	z.l.Warn(msg, keysAndValues...)
}

func (z *slogger) Errorw(msg string, keysAndValues ...any) {
	z.l.Error(msg, keysAndValues...)
}

func (z *slogger) Fatalw(msg string, keysAndValues ...any) {
	z.l.Error(msg, keysAndValues...)
	os.Exit(1)
}
