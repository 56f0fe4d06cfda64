package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// ZeroLogger adapts zerolog to the Logger interface.
type ZeroLogger struct {
	log zerolog.Logger
}

// NewZeroLogger returns a configured instance of ZeroLogger writing to the
// given writer at the given level, with defaultFields on every entry.
func NewZeroLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	var zLevel zerolog.Level
	switch level {
	case LevelInfo:
		zLevel = zerolog.InfoLevel
	case LevelError:
		zLevel = zerolog.ErrorLevel
	case LevelFatal:
		zLevel = zerolog.FatalLevel
	case LevelOff:
		zLevel = zerolog.Disabled
	case LevelDebug:
		zLevel = zerolog.DebugLevel
	default:
		zLevel = zerolog.InfoLevel
	}

	props := make(map[string]interface{}, len(defaultFields))
	for k, v := range defaultFields {
		props[k] = v
	}

	return &ZeroLogger{
		log: zerolog.New(writer).With().Fields(props).Timestamp().Logger().Level(zLevel),
	}
}

// Info only logs information
func (l *ZeroLogger) Info(message string, properties map[string]interface{}) {
	l.log.Info().Fields(properties).Msg(message)
}

// Error reports all errors at error level
func (l *ZeroLogger) Error(err error, properties map[string]interface{}) {
	l.log.Error().Fields(properties).Err(err).Msg(err.Error())
}

// Fatal writes the log to output and stops the process
func (l *ZeroLogger) Fatal(err error, properties map[string]interface{}) {
	l.log.Fatal().Fields(properties).Err(err).Msg(err.Error())
}

// Debug logs debugging details that are too noisy for info level
func (l *ZeroLogger) Debug(message string, properties map[string]interface{}) {
	l.log.Debug().Fields(properties).Msg(message)
}
