// Package logging provides leveled loggers that write to stderr and, when a
// file is configured, to a size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts debug, info, warn (or warning) and error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.Errorf("unknown log level %q", s)
	}
}

// Options configures Open.
type Options struct {
	Level      Level
	File       string // empty: stderr only
	MaxSizeMB  int
	MaxBackups int
}

// Logger is a set of per-level stdlib loggers. A nil *Logger discards
// everything.
type Logger struct {
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	err    *log.Logger
	closer io.Closer
}

const flags = log.Ldate | log.Ltime | log.Lmicroseconds

// New writes every level at or above level to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		debug: log.New(w, "[DEBUG] ", flags),
		info:  log.New(w, "[INFO] ", flags),
		warn:  log.New(w, "[WARN] ", flags),
		err:   log.New(w, "[ERROR] ", flags),
	}
}

// Open builds a logger for opts. With a file configured, output goes to both
// stderr and the rotated file.
func Open(opts Options) (*Logger, error) {
	if opts.File == "" {
		return New(os.Stderr, opts.Level), nil
	}

	rot := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	// lumberjack creates the file lazily; probe it now so a bad path fails
	// at startup instead of on the first log line.
	if _, err := rot.Write(nil); err != nil {
		return nil, errors.Wrapf(err, "open log file %s", opts.File)
	}

	l := New(io.MultiWriter(os.Stderr, rot), opts.Level)
	l.closer = rot
	return l, nil
}

func (l *Logger) Debugf(format string, v ...any) { l.output(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.output(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.output(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.output(LevelError, format, v...) }

func (l *Logger) output(level Level, format string, v ...any) {
	if l == nil || level < l.level {
		return
	}
	var dst *log.Logger
	switch level {
	case LevelDebug:
		dst = l.debug
	case LevelInfo:
		dst = l.info
	case LevelWarn:
		dst = l.warn
	default:
		dst = l.err
	}
	_ = dst.Output(3, fmt.Sprintf(format, v...))
}

// Close flushes and closes the rotated file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
