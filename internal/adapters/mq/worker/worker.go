// Package worker fans repository batches out to the signal provider with
// bounded concurrency and degrades failed batches instead of aborting the run.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/signals"
	"github.com/okian/aiready/pkg/logger"
	"github.com/okian/aiready/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultBatchSize   = 3
	defaultConcurrency = 2
	defaultRetries     = 2
	defaultBackoff     = 500 * time.Millisecond
)

// ErrMissingResult is recorded for a repository the provider did not answer for.
var ErrMissingResult = errors.New("worker: no result for repository")

// permanent is implemented by errors that retrying cannot fix, such as a
// rejected credential.
type permanent interface {
	Permanent() bool
}

// IsPermanent reports whether err, or an error it wraps, is permanent.
func IsPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p) && p.Permanent()
}

// Fetcher retrieves the signals of one batch of repositories.
type Fetcher interface {
	FetchSignals(ctx context.Context, org string, batch []model.RepoMeta) (map[string]signals.Result, error)
}

// Pool runs batches against a Fetcher.
type Pool struct {
	fetcher     Fetcher
	batchSize   int
	concurrency int
	retries     int
	backoff     time.Duration

	logger  logger.Logger
	metrics *metrics.Manager
}

// NewPool creates a new pool with options.
func NewPool(fetcher Fetcher, opts ...Option) *Pool {
	p := &Pool{
		fetcher:     fetcher,
		batchSize:   defaultBatchSize,
		concurrency: defaultConcurrency,
		retries:     defaultRetries,
		backoff:     defaultBackoff,
		logger:      logger.Nop(),
		metrics:     metrics.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch returns exactly one result per repository. A batch that still fails
// after its retries marks every repository in it as signals.FetchFailed. Only
// cancellation of ctx or a permanent error aborts the whole fetch.
func (p *Pool) Fetch(ctx context.Context, org string, repos []model.RepoMeta) (map[string]signals.Result, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]signals.Result, len(repos))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, batch := range Batches(repos, p.batchSize) {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			got, err := p.fetchBatch(gctx, org, i, batch)
			if err != nil {
				return err
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			for name, r := range got {
				results[name] = r
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch signals: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch signals: %w", err)
	}
	return results, nil
}

func (p *Pool) fetchBatch(ctx context.Context, org string, index int, batch []model.RepoMeta) (map[string]signals.Result, error) {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			p.metrics.RecordFetchRetry()
			if err := sleep(ctx, p.backoff<<(attempt-1)); err != nil {
				return failAll(batch, err), nil
			}
		}

		start := time.Now()
		got, err := p.fetcher.FetchSignals(ctx, org, batch)
		if err == nil {
			p.metrics.RecordFetchBatch(float64(time.Since(start).Milliseconds()))
			return complete(batch, got), nil
		}
		lastErr = err
		if IsPermanent(err) {
			p.metrics.RecordError("worker", "permanent")
			p.logger.Error(ctx, "batch query failed permanently",
				logger.Int("batch", index),
				logger.Strings("repos", names(batch)),
				logger.Error(err),
			)
			return nil, err
		}
		if ctx.Err() != nil {
			break
		}
		p.logger.Debug(ctx, "batch attempt failed",
			logger.Int("batch", index),
			logger.Int("attempt", attempt+1),
			logger.Error(err),
		)
	}

	p.metrics.RecordFetchBatchFailure()
	p.metrics.RecordError("worker", "batch_failed")
	p.logger.Warn(ctx, "batch query failed",
		logger.Int("batch", index),
		logger.Strings("repos", names(batch)),
		logger.Error(lastErr),
	)
	return failAll(batch, lastErr), nil
}

// Batches splits repos into consecutive chunks of at most size, preserving order.
func Batches(repos []model.RepoMeta, size int) [][]model.RepoMeta {
	if size < 1 {
		size = 1
	}
	out := make([][]model.RepoMeta, 0, (len(repos)+size-1)/size)
	for start := 0; start < len(repos); start += size {
		end := min(start+size, len(repos))
		out = append(out, repos[start:end])
	}
	return out
}

// complete fills in repositories the provider left out of its answer.
func complete(batch []model.RepoMeta, got map[string]signals.Result) map[string]signals.Result {
	out := make(map[string]signals.Result, len(batch))
	for _, r := range batch {
		res, ok := got[r.Name]
		if !ok || res == nil {
			res = signals.FetchFailed{Err: fmt.Errorf("%w: %s", ErrMissingResult, r.Name)}
		}
		out[r.Name] = res
	}
	return out
}

func failAll(batch []model.RepoMeta, err error) map[string]signals.Result {
	out := make(map[string]signals.Result, len(batch))
	for _, r := range batch {
		out[r.Name] = signals.FetchFailed{Err: err}
	}
	return out
}

func names(batch []model.RepoMeta) []string {
	out := make([]string, len(batch))
	for i, r := range batch {
		out[i] = r.Name
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
