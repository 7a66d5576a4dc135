package store

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a root store.
type Option func(*options)

// WithLogger configures structured logging for reducer and subscriber
// faults. The logger propagates to every stream and slice the store
// creates. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
