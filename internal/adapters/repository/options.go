package repository

import (
	"time"

	"github.com/okian/aiready/pkg/logger"
	"github.com/okian/aiready/pkg/metrics"
)

// Option applies a configuration option to a store.
type Option func(*options)

type options struct {
	logger   logger.Logger
	metrics  *metrics.Manager
	debounce time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		logger:   logger.Nop(),
		metrics:  metrics.Default(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics manager saves and reloads are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithDebounce sets how long Watch waits for writes to settle before reloading.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}
