package depgraph

import "log/slog"

// Option configures graph construction behavior.
type Option func(*config)

// config holds internal configuration for a Graph.
type config struct {
	logger *slog.Logger
}

// WithLogger enables debug logging for graph operations: edge insertion,
// suppression, and ambiguous-parent detection.
//
// Pass nil to disable logging (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
