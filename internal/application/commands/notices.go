package commands

import (
	"fmt"

	"plotsort/internal/domain"
	"plotsort/internal/ports"
)

// Failure records an entry that could not be relocated
type Failure struct {
	Name string
	Err  error
}

type discardSink struct{}

func (discardSink) Report(domain.Level, string) {}

// notifier formats notices for a sink that may be nil
type notifier struct {
	sink ports.NoticeSink
}

func newNotifier(sink ports.NoticeSink) notifier {
	if sink == nil {
		sink = discardSink{}
	}
	return notifier{sink: sink}
}

func (n notifier) info(format string, args ...any) {
	n.sink.Report(domain.LevelInfo, fmt.Sprintf(format, args...))
}

func (n notifier) success(format string, args ...any) {
	n.sink.Report(domain.LevelSuccess, fmt.Sprintf(format, args...))
}

func (n notifier) warn(format string, args ...any) {
	n.sink.Report(domain.LevelWarning, fmt.Sprintf(format, args...))
}

func (n notifier) fail(format string, args ...any) {
	n.sink.Report(domain.LevelError, fmt.Sprintf(format, args...))
}
