// Package logger is the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = defaultLogger(os.Stderr)

func defaultLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Init configures the global logger. The "production" environment logs JSON,
// anything else a human-readable console format. debug enables Debug output.
func Init(environment string, debug bool) {
	setup(os.Stderr, environment, debug)
}

func setup(w io.Writer, environment string, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if environment != "production" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: environment == "test"}
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Debug logs msg with alternating key/value pairs.
func Debug(msg string, keyvals ...any) {
	fields(log.Debug(), keyvals).Msg(msg)
}

// Info logs msg with alternating key/value pairs.
func Info(msg string, keyvals ...any) {
	fields(log.Info(), keyvals).Msg(msg)
}

// Warn logs msg with alternating key/value pairs.
func Warn(msg string, keyvals ...any) {
	fields(log.Warn(), keyvals).Msg(msg)
}

// Error logs msg and err. err may be nil.
func Error(msg string, err error, keyvals ...any) {
	fields(log.Error().Err(err), keyvals).Msg(msg)
}

// Fatal logs msg and err, then exits with status 1.
func Fatal(msg string, err error) {
	log.Fatal().Err(err).Msg(msg)
}

func fields(e *zerolog.Event, keyvals []any) *zerolog.Event {
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 == len(keyvals) {
			e = e.Interface(key, nil)
			break
		}

		e = e.Interface(key, keyvals[i+1])
	}

	return e
}
