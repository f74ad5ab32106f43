package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/pkg/logger"
)

// FileStore keeps the latest snapshot as an indented JSON document.
type FileStore struct {
	path string
	opts options
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store writing to path.
func NewFileStore(path string, opts ...Option) *FileStore {
	return &FileStore{path: path, opts: newOptions(opts)}
}

// Path returns the snapshot location.
func (s *FileStore) Path() string { return s.path }

// Save writes snap atomically: readers see either the previous or the new
// document, never a partial one.
func (s *FileStore) Save(ctx context.Context, runID string, snap model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return s.fail(fmt.Errorf("encode snapshot: %w", err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return s.fail(fmt.Errorf("create snapshot dir: %w", err))
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return s.fail(fmt.Errorf("create temp snapshot: %w", err))
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return s.fail(fmt.Errorf("write snapshot: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return s.fail(fmt.Errorf("close snapshot: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return s.fail(fmt.Errorf("replace snapshot: %w", err))
	}

	s.opts.metrics.RecordSnapshotSave()
	s.opts.logger.Info(ctx, "snapshot saved",
		logger.String("path", s.path),
		logger.String("runId", runID),
		logger.Int("repositories", len(snap.Repositories)),
	)
	return nil
}

// Load reads the snapshot document.
func (s *FileStore) Load(_ context.Context) (model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.path)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, s.path, err)
	}
	return snap, nil
}

func (s *FileStore) fail(err error) error {
	s.opts.metrics.RecordSnapshotError()
	s.opts.metrics.RecordError("repository", "file_save")
	return err
}
