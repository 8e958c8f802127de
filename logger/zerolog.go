// Package logger provides a zerolog-backed implementation of the
// [anticheat.Logger] interface.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

var _ anticheat.Logger = Logger{}

// Logger wraps a zerolog.Logger so it satisfies [anticheat.Logger].
// All methods use a value receiver: Named and Bind* return derived
// copies and never mutate their parent.
type Logger struct {
	log  zerolog.Logger
	name string
}

// New builds a root logger writing to the given destination. If debug
// is false, debug records are discarded at the zerolog level filter.
func New(out io.Writer, debug bool) Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	return Logger{log: log}
}

// NewStderr builds a root logger writing to stderr with a console
// writer, which is how the binary logs by default.
func NewStderr(debug bool) Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, debug)
}

func (l Logger) Named(name string) anticheat.Logger {
	joined := name
	if l.name != "" {
		joined = l.name + "." + name
	}

	return Logger{
		log:  l.log.With().Str("logger", joined).Logger(),
		name: joined,
	}
}

func (l Logger) BindStr(k, v string) anticheat.Logger {
	return Logger{
		log:  l.log.With().Str(k, v).Logger(),
		name: l.name,
	}
}

func (l Logger) BindInt(k string, v int) anticheat.Logger {
	return Logger{
		log:  l.log.With().Int(k, v).Logger(),
		name: l.name,
	}
}

func (l Logger) Printf(format string, args ...interface{}) {
	l.log.Info().Msgf(strings.TrimSpace(format), args...)
}

func (l Logger) Info(msg string) {
	l.log.Info().Msg(msg)
}

func (l Logger) InfoError(msg string, err error) {
	l.log.Info().Err(err).Msg(msg)
}

func (l Logger) Warning(msg string) {
	l.log.Warn().Msg(msg)
}

func (l Logger) WarningError(msg string, err error) {
	l.log.Warn().Err(err).Msg(msg)
}

func (l Logger) Debug(msg string) {
	l.log.Debug().Msg(msg)
}

func (l Logger) DebugError(msg string, err error) {
	l.log.Debug().Err(err).Msg(msg)
}
