package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/pkg/logger"
)

const snapshotSchemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	org_name     TEXT NOT NULL DEFAULT '',
	last_updated TEXT NOT NULL,
	repo_count   INTEGER NOT NULL DEFAULT 0,
	data         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id);
`

// SQLiteStore keeps every run's snapshot; Load returns the newest.
type SQLiteStore struct {
	conn *sql.DB
	opts options
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at dsn and applies the schema.
func OpenSQLite(dsn string, opts ...Option) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("repository: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("repository: ping: %w", err)
	}
	if _, err := conn.Exec(snapshotSchemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("repository: apply schema: %w", err)
	}
	return &SQLiteStore{conn: conn, opts: newOptions(opts)}, nil
}

// withPragmas appends the connection pragmas to dsn, which may already carry
// query parameters as a file: URI.
func withPragmas(dsn string) string {
	const pragmas = "_journal_mode=WAL&_busy_timeout=5000"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}
	return dsn + "?" + pragmas
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Save appends snap as a new run.
func (s *SQLiteStore) Save(ctx context.Context, runID string, snap model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return s.fail(fmt.Errorf("encode snapshot: %w", err))
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO snapshots (run_id, org_name, last_updated, repo_count, data) VALUES (?, ?, ?, ?, ?)`,
		runID, snap.OrgName, snap.LastUpdated.UTC().Format(time.RFC3339Nano), len(snap.Repositories), string(data),
	)
	if err != nil {
		return s.fail(fmt.Errorf("insert snapshot: %w", err))
	}

	s.opts.metrics.RecordSnapshotSave()
	s.opts.logger.Info(ctx, "snapshot saved",
		logger.String("runId", runID),
		logger.Int("repositories", len(snap.Repositories)),
	)
	return nil
}

// Load returns the most recently inserted snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (model.Snapshot, error) {
	var data string
	err := s.conn.QueryRowContext(ctx, `SELECT data FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return snap, nil
}

// History lists the newest runs first, at most limit of them.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit < 1 {
		limit = 1
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT run_id, org_name, last_updated, repo_count FROM snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []RunSummary{}
	for rows.Next() {
		var (
			r       RunSummary
			updated string
		)
		if err := rows.Scan(&r.RunID, &r.OrgName, &updated, &r.RepoCount); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		r.LastUpdated, err = time.Parse(time.RFC3339Nano, updated)
		if err != nil {
			return nil, fmt.Errorf("%w: last_updated %q", ErrCorruptSnapshot, updated)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) fail(err error) error {
	s.opts.metrics.RecordSnapshotError()
	s.opts.metrics.RecordError("repository", "sqlite_save")
	return err
}
