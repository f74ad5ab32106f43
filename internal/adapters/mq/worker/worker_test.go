package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	worker "github.com/okian/aiready/internal/adapters/mq/worker"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/signals"
	"github.com/okian/aiready/pkg/metrics"
)

var errBoom = errors.New("boom")

// revokedToken is an error retrying cannot fix.
type revokedToken struct{}

func (revokedToken) Error() string   { return "token revoked" }
func (revokedToken) Permanent() bool { return true }

// fakeFetcher fails batches whose first repository is listed in failFor until
// it has been called failTimes times for that batch.
type fakeFetcher struct {
	mu        sync.Mutex
	failFor   map[string]int
	calls     map[string]int
	inFlight  atomic.Int32
	maxFlight atomic.Int32
	omit      string
	revokeAt  string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{failFor: map[string]int{}, calls: map[string]int{}}
}

func (f *fakeFetcher) FetchSignals(ctx context.Context, org string, batch []model.RepoMeta) (map[string]signals.Result, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxFlight.Load()
		if n <= cur || f.maxFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	key := batch[0].Name
	f.mu.Lock()
	f.calls[key]++
	calls := f.calls[key]
	failTimes := f.failFor[key]
	f.mu.Unlock()

	if calls <= failTimes {
		return nil, errBoom
	}
	if key == f.revokeAt {
		return nil, fmt.Errorf("batch %s: %w", key, revokedToken{})
	}

	out := make(map[string]signals.Result, len(batch))
	for _, r := range batch {
		if r.Name == f.omit {
			continue
		}
		out[r.Name] = signals.Signals{Exists: map[string]bool{"AGENTS.md": true}}
	}
	return out, nil
}

func repos(names ...string) []model.RepoMeta {
	out := make([]model.RepoMeta, len(names))
	for i, n := range names {
		out[i] = model.RepoMeta{Name: n}
	}
	return out
}

func quietMetrics() *metrics.Manager {
	return metrics.NewManager(metrics.WithMetricsEnabled(false))
}

func TestBatches(t *testing.T) {
	convey.Convey("Given seven repositories", t, func() {
		all := repos("a", "b", "c", "d", "e", "f", "g")

		convey.Convey("When split into batches of three", func() {
			b := worker.Batches(all, 3)

			convey.So(len(b), convey.ShouldEqual, 3)
			convey.So(len(b[0]), convey.ShouldEqual, 3)
			convey.So(len(b[2]), convey.ShouldEqual, 1)
			convey.So(b[2][0].Name, convey.ShouldEqual, "g")
		})

		convey.Convey("When the size is not positive", func() {
			convey.So(len(worker.Batches(all, 0)), convey.ShouldEqual, 7)
		})

		convey.Convey("When there is nothing to split", func() {
			convey.So(len(worker.Batches(nil, 3)), convey.ShouldEqual, 0)
		})
	})
}

func TestPoolFetch(t *testing.T) {
	convey.Convey("Given a pool over a flaky fetcher", t, func() {
		f := newFakeFetcher()
		all := repos("a", "b", "c", "d", "e", "f", "g")

		convey.Convey("When every batch succeeds", func() {
			p := worker.NewPool(f, worker.WithBatchSize(3), worker.WithConcurrency(2), worker.WithMetrics(quietMetrics()))
			got, err := p.Fetch(context.Background(), "acme", all)

			convey.Convey("Then every repository has signals", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(got), convey.ShouldEqual, 7)
				for _, r := range all {
					_, ok := got[r.Name].(signals.Signals)
					convey.So(ok, convey.ShouldBeTrue)
				}
			})

			convey.Convey("Then concurrency stays bounded", func() {
				convey.So(f.maxFlight.Load(), convey.ShouldBeLessThanOrEqualTo, 2)
			})
		})

		convey.Convey("When a batch fails once and is retried", func() {
			f.failFor["d"] = 1
			p := worker.NewPool(f, worker.WithBatchSize(3), worker.WithRetries(1), worker.WithBackoff(time.Millisecond), worker.WithMetrics(quietMetrics()))
			got, err := p.Fetch(context.Background(), "acme", all)

			convey.So(err, convey.ShouldBeNil)
			_, ok := got["e"].(signals.Signals)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(f.calls["d"], convey.ShouldEqual, 2)
		})

		convey.Convey("When a batch keeps failing", func() {
			f.failFor["d"] = 10
			p := worker.NewPool(f, worker.WithBatchSize(3), worker.WithRetries(2), worker.WithBackoff(0), worker.WithMetrics(quietMetrics()))
			got, err := p.Fetch(context.Background(), "acme", all)

			convey.Convey("Then only that batch degrades", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(got), convey.ShouldEqual, 7)
				for _, name := range []string{"d", "e", "f"} {
					failed, ok := got[name].(signals.FetchFailed)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(errors.Is(failed.Err, errBoom), convey.ShouldBeTrue)
				}
				_, ok := got["a"].(signals.Signals)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(f.calls["d"], convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When a batch fails with a permanent error", func() {
			f.revokeAt = "d"
			p := worker.NewPool(f, worker.WithBatchSize(3), worker.WithRetries(2), worker.WithBackoff(0), worker.WithMetrics(quietMetrics()))
			got, err := p.Fetch(context.Background(), "acme", all)

			convey.Convey("Then the whole fetch fails without retrying", func() {
				convey.So(got, convey.ShouldBeNil)
				convey.So(worker.IsPermanent(err), convey.ShouldBeTrue)
				convey.So(f.calls["d"], convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the provider leaves a repository out", func() {
			f.omit = "b"
			p := worker.NewPool(f, worker.WithMetrics(quietMetrics()))
			got, err := p.Fetch(context.Background(), "acme", all)

			convey.So(err, convey.ShouldBeNil)
			failed, ok := got["b"].(signals.FetchFailed)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(errors.Is(failed.Err, worker.ErrMissingResult), convey.ShouldBeTrue)
		})

		convey.Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			p := worker.NewPool(f, worker.WithMetrics(quietMetrics()))
			got, err := p.Fetch(ctx, "acme", all)

			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			convey.So(got, convey.ShouldBeNil)
		})
	})
}
