package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/okian/aiready/internal/adapters/github"
	"github.com/okian/aiready/internal/adapters/http/api"
	"github.com/okian/aiready/internal/adapters/mcpserver"
	"github.com/okian/aiready/internal/adapters/mq/worker"
	"github.com/okian/aiready/internal/adapters/repository"
	"github.com/okian/aiready/internal/adapters/terminal"
	service "github.com/okian/aiready/internal/app"
	"github.com/okian/aiready/internal/config"
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/pkg/logger"
	"github.com/okian/aiready/pkg/metrics"
)

const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// bootstrap loads config and initializes the global logger. Logs go to stderr
// since stdout carries command output and the MCP transport.
func bootstrap(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx, cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := cmd.String("log-format"); v != "" {
		cfg.LogFormat = v
	}
	if err := logger.InitWithFormat(logger.Format(cfg.LogFormat), os.Stderr); err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore returns the configured snapshot store and its closer.
func openStore(cfg *config.Config, log logger.Logger) (repository.Store, func() error, error) {
	opts := []repository.Option{
		repository.WithLogger(log.Named("repository")),
		repository.WithMetrics(metrics.Default()),
	}
	switch cfg.SnapshotDriver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, err
		}
		st, err := repository.OpenSQLite(cfg.SQLitePath, opts...)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		return repository.NewFileStore(cfg.SnapshotPath, opts...), func() error { return nil }, nil
	}
}

// loadReader opens the store and loads the latest snapshot into a Reader.
func loadReader(ctx context.Context, cfg *config.Config, c *catalog.Catalog, log logger.Logger) (*service.Reader, repository.Store, func() error, error) {
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	reader := service.NewReader(c,
		service.WithStatsCacheSize(cfg.StatsCacheSize),
		service.WithReaderLogger(log.Named("reader")),
	)
	if err := reader.Reload(ctx, store); err != nil {
		_ = closeStore()
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: run fetch first", service.ErrNoSnapshot)
		}
		return nil, nil, nil, err
	}
	return reader, store, closeStore, nil
}

func runFetch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	if v := cmd.String("org"); v != "" {
		cfg.OrgName = v
	}
	if v := cmd.Int("min-stars"); v >= 0 {
		cfg.MinStars = v
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}
	log := logger.Get()
	m := metrics.Default()
	c := catalog.New()

	client := github.NewClient(
		github.WithEndpoint(cfg.GitHubEndpoint),
		github.WithToken(cfg.GitHubToken),
		github.WithTimeout(cfg.RequestTimeout()),
		github.WithPageSize(cfg.PageSize),
		github.WithMinStars(cfg.MinStars),
		github.WithCatalog(c),
		github.WithLogger(log.Named("github")),
	)
	pool := worker.NewPool(client,
		worker.WithBatchSize(cfg.BatchSize),
		worker.WithConcurrency(cfg.FetchConcurrency),
		worker.WithRetries(cfg.FetchRetries),
		worker.WithBackoff(cfg.RetryBackoff()),
		worker.WithLogger(log.Named("worker")),
		worker.WithMetrics(m),
	)
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	svc := service.New(client, pool, store,
		service.WithOrg(cfg.OrgName),
		service.WithCatalog(c),
		service.WithLogger(log.Named("service")),
		service.WithMetrics(m),
	)
	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Scored %d repositories of %s in %s (%d with at least one skill, %d Legendary, %d degraded)\n",
		report.Stats.TotalRepos, cfg.OrgName, report.Duration.Round(time.Millisecond),
		report.Stats.ReposWithAnySkill, report.Stats.LegendaryCount, len(report.Failed))
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	log := logger.Get()
	c := catalog.New()

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	reader := service.NewReader(c,
		service.WithStatsCacheSize(cfg.StatsCacheSize),
		service.WithReaderLogger(log.Named("reader")),
	)
	// A missing snapshot is served as "loading" until the first fetch lands.
	if err := reader.Reload(ctx, store); err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
		return err
	}

	srv := api.NewServer(reader, c,
		api.WithMetrics(metrics.Default()),
		api.WithGatherer(metrics.GetRegistry()),
		api.WithLogger(log.Named("api")),
	)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "server listening", logger.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.SnapshotDriver == config.DriverFile && cfg.WatchSnapshot {
		if err := os.MkdirAll(filepath.Dir(cfg.SnapshotPath), 0o755); err != nil {
			return err
		}
		g.Go(func() error {
			return repository.Watch(gctx, cfg.SnapshotPath, func(ctx context.Context) {
				_ = reader.Reload(ctx, store)
			},
				repository.WithLogger(log.Named("watch")),
				repository.WithMetrics(metrics.Default()),
			)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runLeaderboard(ctx context.Context, cmd *cli.Command) error {
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	c := catalog.New()
	reader, _, closeStore, err := loadReader(ctx, cfg, c, logger.Get())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	q := service.Query{
		Search:   cmd.String("search"),
		Level:    service.ParseLevel(cmd.String("level")),
		Language: cmd.String("language"),
		SortBy:   cmd.String("sort"),
		Page:     cmd.Int("page"),
		PageSize: cmd.Int("limit"),
	}
	if err := q.Validate(); err != nil {
		return err
	}
	page := service.Filter(reader.All(), q)
	return terminal.New(cmd.Root().Writer, c).Leaderboard(reader.OrgName(), reader.LastUpdated(), page)
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	slug := cmd.Args().First()
	if slug == "" {
		return errors.New("show: repository slug is required")
	}
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	c := catalog.New()
	reader, _, closeStore, err := loadReader(ctx, cfg, c, logger.Get())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	repo, err := reader.BySlug(slug)
	if err != nil {
		return fmt.Errorf("%s: %w", slug, err)
	}
	return terminal.New(cmd.Root().Writer, c).Repository(repo)
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	c := catalog.New()
	reader, _, closeStore, err := loadReader(ctx, cfg, c, logger.Get())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	return terminal.New(cmd.Root().Writer, c).Stats(reader.OrgName(), reader.LastUpdated(), reader.OrgStats())
}

func runHistory(ctx context.Context, cmd *cli.Command) error {
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	if cfg.SnapshotDriver != config.DriverSQLite {
		return fmt.Errorf("history requires snapshot_driver %q", config.DriverSQLite)
	}
	store, closeStore, err := openStore(cfg, logger.Get())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	runs, err := store.(*repository.SQLiteStore).History(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %-20s %d repositories\n",
			r.LastUpdated.Format(time.RFC3339), r.RunID, r.OrgName, r.RepoCount)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	c := catalog.New()
	reader, _, closeStore, err := loadReader(ctx, cfg, c, logger.Get())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	return mcpserver.New(reader, c, version).ServeStdio()
}
