package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/orgstats"
	"github.com/okian/aiready/pkg/logger"
)

const defaultStatsCacheSize = 8

// Loader returns the latest persisted snapshot.
type Loader interface {
	Load(ctx context.Context) (model.Snapshot, error)
}

// Reader serves read-only lookups over the current snapshot. The snapshot can
// be swapped atomically with Replace or Reload.
type Reader struct {
	catalog *catalog.Catalog
	logger  logger.Logger

	mu     sync.RWMutex
	snap   model.Snapshot
	bySlug map[string]int
	loaded bool
	// gen increments on every Replace and keys the stats cache.
	gen uint64

	stats *lru.Cache[uint64, model.OrgStats]
}

// ReaderOption applies a configuration option to the Reader.
type ReaderOption func(*readerOptions)

type readerOptions struct {
	cacheSize int
	logger    logger.Logger
}

// WithStatsCacheSize bounds the number of memoised OrgStats.
func WithStatsCacheSize(n int) ReaderOption {
	return func(o *readerOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithReaderLogger sets a custom logger for the reader.
func WithReaderLogger(l logger.Logger) ReaderOption {
	return func(o *readerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewReader creates an empty Reader.
func NewReader(c *catalog.Catalog, opts ...ReaderOption) *Reader {
	o := readerOptions{cacheSize: defaultStatsCacheSize, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	cache, err := lru.New[uint64, model.OrgStats](o.cacheSize)
	if err != nil {
		// only fails for a non-positive size, which the option rules out
		panic(err)
	}
	if c == nil {
		c = catalog.New()
	}
	return &Reader{
		catalog: c,
		logger:  o.logger,
		bySlug:  map[string]int{},
		stats:   cache,
	}
}

// Replace makes snap the current snapshot.
func (r *Reader) Replace(snap model.Snapshot) {
	idx := make(map[string]int, len(snap.Repositories))
	for i, repo := range snap.Repositories {
		idx[Slug(repo.Slug)] = i
	}

	r.mu.Lock()
	r.snap = snap
	r.bySlug = idx
	r.loaded = true
	r.gen++
	r.mu.Unlock()
}

// Reload loads the latest snapshot from l and makes it current. On failure
// the previous snapshot stays in place.
func (r *Reader) Reload(ctx context.Context, l Loader) error {
	snap, err := l.Load(ctx)
	if err != nil {
		r.logger.Warn(ctx, "snapshot reload failed", logger.Error(err))
		return fmt.Errorf("reload snapshot: %w", err)
	}
	r.Replace(snap)
	r.logger.Info(ctx, "snapshot loaded",
		logger.String("org", snap.OrgName),
		logger.Int("repositories", len(snap.Repositories)),
		logger.String("lastUpdated", snap.LastUpdated.Format(time.RFC3339)),
	)
	return nil
}

// Loaded reports whether a snapshot has been set.
func (r *Reader) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// All returns a copy of every repository in persisted order.
func (r *Reader) All() []model.Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Repository, len(r.snap.Repositories))
	for i, repo := range r.snap.Repositories {
		out[i] = cloneRepository(repo)
	}
	return out
}

// BySlug returns the repository with the given slug. Lookup ignores case.
func (r *Reader) BySlug(slug string) (model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.bySlug[Slug(slug)]
	if !ok {
		return model.Repository{}, fmt.Errorf("%w: %s", ErrRepositoryNotFound, slug)
	}
	return cloneRepository(r.snap.Repositories[i]), nil
}

// Slugs returns every slug in persisted order.
func (r *Reader) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.snap.Repositories))
	for i, repo := range r.snap.Repositories {
		out[i] = repo.Slug
	}
	return out
}

// LastUpdated returns the capture time of the current snapshot.
func (r *Reader) LastUpdated() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.LastUpdated
}

// OrgName returns the organization of the current snapshot.
func (r *Reader) OrgName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.OrgName
}

// OrgStats aggregates the current snapshot. Results are memoised per Replace.
func (r *Reader) OrgStats() model.OrgStats {
	r.mu.RLock()
	snap, gen := r.snap, r.gen
	r.mu.RUnlock()

	if stats, ok := r.stats.Get(gen); ok {
		return stats
	}
	stats := orgstats.Aggregate(r.catalog, snap.Repositories)
	r.stats.Add(gen, stats)
	return stats
}

// cloneRepository copies the maps and slices of repo so callers cannot
// modify the current snapshot.
func cloneRepository(repo model.Repository) model.Repository {
	repo.CategoryScores = maps.Clone(repo.CategoryScores)
	repo.MarkdownFiles = slices.Clone(repo.MarkdownFiles)
	return repo
}
