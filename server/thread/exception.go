package thread

import "log/slog"

// ExceptionSink is the single collaborator interface §6/§7 requires: a
// place to report errors recovered from Work Items, acquisition callbacks,
// and scheduler steps without aborting the tick they came from.
type ExceptionSink interface {
	Handle(err error)
}

// slogExceptionSink reports to a *slog.Logger. Every error is logged at Warn
// level; the sink does not distinguish Item failures from scheduler-step
// failures.
type slogExceptionSink struct {
	log *slog.Logger
}

// NewSlogExceptionSink returns an ExceptionSink backed by log, defaulting
// to slog.Default() if log is nil.
func NewSlogExceptionSink(log *slog.Logger) ExceptionSink {
	if log == nil {
		log = slog.Default()
	}
	return &slogExceptionSink{log: log}
}

func (s *slogExceptionSink) Handle(err error) {
	if err == nil {
		return
	}
	s.log.Warn("tick-scheduler: recovered error", "error", err.Error())
}
