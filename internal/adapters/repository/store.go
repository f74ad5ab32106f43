// Package repository persists leaderboard snapshots and notifies readers when
// the persisted snapshot changes.
package repository

import (
	"context"
	"time"

	"github.com/okian/aiready/internal/domain/model"
)

// Store persists the snapshot of a run and returns the latest one.
type Store interface {
	// Save persists snap as the result of run runID.
	Save(ctx context.Context, runID string, snap model.Snapshot) error

	// Load returns the most recently saved snapshot.
	// Returns ErrSnapshotNotFound if nothing has been saved yet.
	Load(ctx context.Context) (model.Snapshot, error)
}

// RunSummary describes one persisted run.
type RunSummary struct {
	RunID       string    `json:"runId"`
	OrgName     string    `json:"orgName"`
	LastUpdated time.Time `json:"lastUpdated"`
	RepoCount   int       `json:"repoCount"`
}
