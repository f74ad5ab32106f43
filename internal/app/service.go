// Package service runs the fetch-score-persist pipeline and serves read-only
// lookups over the resulting snapshot.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/orgstats"
	"github.com/okian/aiready/internal/domain/scoring"
	"github.com/okian/aiready/internal/domain/signals"
	"github.com/okian/aiready/pkg/logger"
	"github.com/okian/aiready/pkg/metrics"
)

const defaultOrg = "getsentry"

// Lister enumerates the repositories of an organization.
type Lister interface {
	ListRepositories(ctx context.Context, org string) ([]model.RepoMeta, error)
}

// Fetcher returns one signals result per repository.
type Fetcher interface {
	Fetch(ctx context.Context, org string, repos []model.RepoMeta) (map[string]signals.Result, error)
}

// Saver persists the snapshot of a run.
type Saver interface {
	Save(ctx context.Context, runID string, snap model.Snapshot) error
}

// Service wires listing, fetching, scoring and persistence of one run.
type Service struct {
	lister  Lister
	fetcher Fetcher
	saver   Saver

	org     string
	catalog *catalog.Catalog
	scorer  *scoring.Scorer
	now     func() time.Time

	logger  logger.Logger
	metrics *metrics.Manager
}

// Report summarises a completed run.
type Report struct {
	RunID    string
	Snapshot model.Snapshot
	Stats    model.OrgStats
	// Failed lists repositories whose signals degraded to empty.
	Failed   []string
	DocFiles int
	Duration time.Duration
}

// New creates a Service with options.
func New(lister Lister, fetcher Fetcher, saver Saver, opts ...Option) *Service {
	s := &Service{
		lister:  lister,
		fetcher: fetcher,
		saver:   saver,
		org:     defaultOrg,
		now:     time.Now,
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.New()
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer(s.catalog)
	}
	return s
}

// Run lists, fetches, scores and persists one snapshot. Listing and
// persistence failures abort the run; per-batch fetch failures do not.
func (s *Service) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger

	log.Info(ctx, "run started", logger.String("runId", runID), logger.String("org", s.org))

	metas, err := s.lister.ListRepositories(ctx, s.org)
	if err != nil {
		s.metrics.RecordError("service", "list_repositories")
		return Report{}, fmt.Errorf("list repositories of %s: %w", s.org, err)
	}
	s.metrics.UpdateReposListed(len(metas))
	log.Info(ctx, "repositories listed", logger.Int("count", len(metas)))

	results, err := s.fetcher.Fetch(ctx, s.org, metas)
	if err != nil {
		return Report{}, err
	}

	snap := Assemble(s.catalog, s.scorer, s.org, metas, results, s.now())

	if err := s.saver.Save(ctx, runID, snap); err != nil {
		s.metrics.RecordError("service", "save_snapshot")
		return Report{}, fmt.Errorf("save snapshot: %w", err)
	}

	report := Report{
		RunID:    runID,
		Snapshot: snap,
		Stats:    orgstats.Aggregate(s.catalog, snap.Repositories),
		Failed:   failedNames(metas, results),
		Duration: time.Since(start),
	}
	for _, r := range snap.Repositories {
		s.metrics.RecordRepositoryScored(r.SkillCount)
		for _, f := range r.MarkdownFiles {
			if f.Classification == model.ClassDocs {
				report.DocFiles++
			}
		}
	}
	s.recordStats(report)

	log.Info(ctx, "run completed",
		logger.String("runId", runID),
		logger.Int("totalRepos", report.Stats.TotalRepos),
		logger.Int("reposWithAnySkill", report.Stats.ReposWithAnySkill),
		logger.Int("legendaryRepos", report.Stats.LegendaryCount),
		logger.Int("docFiles", report.DocFiles),
		logger.Int("degradedRepos", len(report.Failed)),
		logger.Duration("duration", report.Duration),
	)
	return report, nil
}

func (s *Service) recordStats(r Report) {
	levels := make(map[string]int, len(r.Stats.LevelDistribution))
	for l, n := range r.Stats.LevelDistribution {
		levels[string(l)] = n
	}
	s.metrics.UpdateLevelDistribution(levels)
	s.metrics.UpdateReposWithAnySkill(r.Stats.ReposWithAnySkill)
	s.metrics.RecordRun(r.Duration.Seconds(), r.Snapshot.LastUpdated.Unix())
}

func failedNames(metas []model.RepoMeta, results map[string]signals.Result) []string {
	var out []string
	for _, m := range metas {
		switch results[m.Name].(type) {
		case signals.Signals, *signals.Signals:
		default:
			out = append(out, m.Name)
		}
	}
	return out
}
