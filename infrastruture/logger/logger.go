// Package logger adapts zerolog to the service Logger interface.
package logger

import (
	"io"
	"time"

	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/rs/zerolog"
)

const colorReset = "\033[0m"

// Logger writes leveled lines tagged with a colored component name.
type Logger struct {
	zl zerolog.Logger
}

var _ i.FieldLogger = (*Logger)(nil)

// New returns a console logger for component. color is an ANSI escape, empty for none.
func New(component string, color string, out io.Writer) *Logger {
	tag := component
	if color != "" {
		tag = color + component + colorReset
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	return &Logger{
		zl: zerolog.New(writer).With().Timestamp().Str("component", tag).Logger(),
	}
}

// NewJSON returns a logger that writes one JSON object per line.
func NewJSON(component string, out io.Writer) *Logger {
	return &Logger{
		zl: zerolog.New(out).With().Timestamp().Str("component", component).Logger(),
	}
}

func (l *Logger) Info(message string)    { l.zl.Info().Msg(message) }
func (l *Logger) Warning(message string) { l.zl.Warn().Msg(message) }
func (l *Logger) Error(message string)   { l.zl.Error().Msg(message) }

// With returns a child logger carrying an extra field.
func (l *Logger) With(key, value string) i.Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}
