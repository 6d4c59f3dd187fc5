package notice

import (
	"github.com/rs/zerolog"

	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// Func adapts a function to ports.NoticeSink
type Func func(level domain.Level, text string)

// Report implements ports.NoticeSink
func (f Func) Report(level domain.Level, text string) {
	f(level, text)
}

// Multi fans every notice out to several sinks
func Multi(sinks ...ports.NoticeSink) ports.NoticeSink {
	return Func(func(level domain.Level, text string) {
		for _, s := range sinks {
			if s != nil {
				s.Report(level, text)
			}
		}
	})
}

// Logger forwards notices to a structured logger.
// Success notices are logged at info level.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a sink that writes notices to logger
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Report implements ports.NoticeSink
func (l *Logger) Report(level domain.Level, text string) {
	var event *zerolog.Event
	switch level {
	case domain.LevelWarning:
		event = l.logger.Warn()
	case domain.LevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info()
	}
	event.Str("level_name", level.String()).Msg(text)
}
