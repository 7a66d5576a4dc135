package stream

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a stream.
type Option func(*options)

// WithLogger configures structured logging for subscriber faults.
// Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
