// Package logger provides structured logging for the application services.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig controls log level, encoding and destination.
type LoggingConfig struct {
	Level      string
	Format     string // "json" or "console"
	Output     string // "stdout", "stderr" or "file"
	FilePrefix string
}

// Logger wraps a zerolog.Logger with the helpers the services expect.
type Logger struct {
	zl zerolog.Logger
}

// New builds a logger from the supplied configuration. Unknown values fall
// back to info-level JSON on stdout.
func New(cfg LoggingConfig) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := resolveOutput(cfg)
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewDefault returns an info-level JSON logger tagged with a component name.
func NewDefault(component string) *Logger {
	zl := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().
		Timestamp().
		Str("component", component).
		Logger()
	return &Logger{zl: zl}
}

func resolveOutput(cfg LoggingConfig) io.Writer {
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	case "file":
		prefix := cfg.FilePrefix
		if prefix == "" {
			prefix = "shoplite"
		}
		name := fmt.Sprintf("%s-%s.log", prefix, time.Now().UTC().Format("20060102"))
		f, err := os.OpenFile(filepath.Clean(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return os.Stdout
		}
		return f
	default:
		return os.Stdout
	}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// WithError returns a child logger carrying the error as a field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().Err(err).Logger()}
}

// WithField returns a child logger carrying an extra field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.zl.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.zl.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.zl.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.zl.Error().Msgf(format, args...) }

// Fatalf logs at fatal level and exits the process.
func (l *Logger) Fatalf(format string, args ...interface{}) { l.zl.Fatal().Msgf(format, args...) }
