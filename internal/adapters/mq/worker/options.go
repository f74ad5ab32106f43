package worker

import (
	"time"

	"github.com/okian/aiready/pkg/logger"
	"github.com/okian/aiready/pkg/metrics"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithBatchSize sets how many repositories are probed per request.
func WithBatchSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithConcurrency bounds the number of in-flight batches.
func WithConcurrency(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithRetries sets how often a failed batch is retried before it degrades.
func WithRetries(n int) Option {
	return func(p *Pool) {
		if n >= 0 {
			p.retries = n
		}
	}
}

// WithBackoff sets the base delay between retries. The delay doubles per attempt.
func WithBackoff(d time.Duration) Option {
	return func(p *Pool) {
		if d >= 0 {
			p.backoff = d
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics sets the metrics manager observations are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pool) {
		if m != nil {
			p.metrics = m
		}
	}
}
