package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrCorruptSnapshot  = errors.New("snapshot is corrupt")
)
