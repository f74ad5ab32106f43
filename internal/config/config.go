// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New(ctx) builds a Config with defaults; Load(ctx) layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Snapshot drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// OrgName is the organization whose repositories are scored.
	OrgName string `koanf:"org_name"`

	// MinStars stops repository enumeration at the first repository below it.
	MinStars int `koanf:"min_stars"`

	// GitHubEndpoint is the GraphQL endpoint of the provider.
	GitHubEndpoint string `koanf:"github_endpoint"`

	// GitHubToken authenticates against the provider. Falls back to GITHUB_TOKEN.
	GitHubToken string `koanf:"github_token"`

	// PageSize is the number of repositories requested per listing page.
	PageSize int `koanf:"page_size"`

	// BatchSize is the number of repositories checked per signals request.
	BatchSize int `koanf:"batch_size"`

	// FetchConcurrency bounds the number of in-flight batch requests.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// FetchRetries is the number of retries of a failed batch before it degrades.
	FetchRetries int `koanf:"fetch_retries"`

	// RetryBackoffMS is the base backoff between retries.
	RetryBackoffMS int `koanf:"retry_backoff_ms"`

	// RequestTimeoutMS bounds a single provider request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// SnapshotDriver selects the snapshot store: file or sqlite.
	SnapshotDriver string `koanf:"snapshot_driver"`

	// SnapshotPath is the JSON snapshot location for the file driver.
	SnapshotPath string `koanf:"snapshot_path"`

	// SQLitePath is the database location for the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WatchSnapshot reloads the snapshot file on change in serve mode.
	WatchSnapshot bool `koanf:"watch_snapshot"`

	// StatsCacheSize bounds the number of memoised OrgStats.
	StatsCacheSize int `koanf:"stats_cache_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		OrgName:          "getsentry",
		MinStars:         100,
		GitHubEndpoint:   "https://api.github.com/graphql",
		PageSize:         100,
		BatchSize:        3,
		FetchConcurrency: 2,
		FetchRetries:     2,
		RetryBackoffMS:   500,
		RequestTimeoutMS: 30_000,
		SnapshotDriver:   DriverFile,
		SnapshotPath:     "data/repos.json",
		SQLitePath:       "data/aiready.db",
		Addr:             ":9080",
		WatchSnapshot:    true,
		StatsCacheSize:   8,
	}
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.OrgName, validation.Required),
		validation.Field(&c.MinStars, validation.Min(0)),
		validation.Field(&c.GitHubEndpoint, validation.Required),
		validation.Field(&c.PageSize, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.BatchSize, validation.Required, validation.Min(1), validation.Max(20)),
		validation.Field(&c.FetchConcurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.FetchRetries, validation.Min(0)),
		validation.Field(&c.RetryBackoffMS, validation.Min(0)),
		validation.Field(&c.RequestTimeoutMS, validation.Required, validation.Min(1)),
		validation.Field(&c.SnapshotDriver, validation.Required, validation.In(DriverFile, DriverSQLite)),
		validation.Field(&c.SnapshotPath, validation.When(c.SnapshotDriver == DriverFile, validation.Required)),
		validation.Field(&c.SQLitePath, validation.When(c.SnapshotDriver == DriverSQLite, validation.Required)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.StatsCacheSize, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// RequireToken fails when no provider credential is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return ErrMissingToken
	}
	return nil
}

// RequestTimeout is RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// RetryBackoff is RetryBackoffMS as a duration.
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}
