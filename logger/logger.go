// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Logger is a wrapper around slog.Logger with leveled print helpers.
// A nil *Logger is usable and falls back to the package default.
type Logger struct {
	sl *slog.Logger
}

// New creates a Logger writing to stderr. When stderr is a terminal the
// output is colorized and carries the caller's source location.
func New() *Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		// skip 2 slog pkg calls, 3 this pkg calls
		return &Logger{sl: slog.New(withCallDepth(5, newTerminalHandler()))}
	}
	return &Logger{sl: slog.New(newTextHandler())}
}

// With returns a Logger that includes the given attributes in each output.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.sl == nil {
		return &Logger{sl: defaultLogger.sl.With(args...)}
	}
	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Error(a ...any)   { l.print(slog.LevelError, a...) }
func (l *Logger) Warning(a ...any) { l.print(slog.LevelWarn, a...) }
func (l *Logger) Notice(a ...any)  { l.print(levelNotice, a...) }
func (l *Logger) Info(a ...any)    { l.print(slog.LevelInfo, a...) }
func (l *Logger) Debug(a ...any)   { l.print(slog.LevelDebug, a...) }

func (l *Logger) Errorf(format string, a ...any)   { l.printf(slog.LevelError, format, a...) }
func (l *Logger) Warningf(format string, a ...any) { l.printf(slog.LevelWarn, format, a...) }
func (l *Logger) Noticef(format string, a ...any)  { l.printf(levelNotice, format, a...) }
func (l *Logger) Infof(format string, a ...any)    { l.printf(slog.LevelInfo, format, a...) }
func (l *Logger) Debugf(format string, a ...any)   { l.printf(slog.LevelDebug, format, a...) }

func (l *Logger) print(level slog.Level, a ...any) {
	l.log(level, fmt.Sprint(a...))
}

func (l *Logger) printf(level slog.Level, format string, a ...any) {
	l.log(level, fmt.Sprintf(format, a...))
}

func (l *Logger) log(level slog.Level, msg string) {
	sl := defaultLogger.sl
	if l != nil && l.sl != nil {
		sl = l.sl
	}
	sl.Log(context.Background(), level, msg)
}
