package core

import "log/slog"

// WithLogger configures the Runtime logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithEventSource configures the Runtime with an EventSource whose events
// are applied in order after Start.
func WithEventSource(s EventSource) Option {
	return func(r *Runtime) {
		r.source = s
	}
}

// WithQueueSize configures the event queue buffer size.
func WithQueueSize(size int) Option {
	return func(r *Runtime) {
		r.queue = make(chan envelope, size)
	}
}
