package todd

import "go.uber.org/zap"

type config struct {
	logger  *zap.Logger
	workers int
}

// Option configures TOHPE and FastTODD.
type Option func(*config)

// WithLogger sets the logger used for per-reduction debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers splits the FastTODD pair scan across n goroutines. Values
// below 2 scan on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

func newConfig(opts []Option) *config {
	c := &config{logger: zap.NewNop(), workers: 1}
	for _, o := range opts {
		o(c)
	}
	return c
}
