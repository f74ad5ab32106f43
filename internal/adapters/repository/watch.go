package repository

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/aiready/pkg/logger"
)

const defaultDebounce = 200 * time.Millisecond

// Watch calls onChange after the file at path was created, written or
// replaced, until ctx is canceled. The parent directory is watched so atomic
// renames onto path are observed. Bursts of events are coalesced.
func Watch(ctx context.Context, path string, onChange func(context.Context), opts ...Option) error {
	o := newOptions(opts)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	o.logger.Info(ctx, "watcher started", logger.String("path", target))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(o.debounce)
			timerCh = timer.C
			return
		}
		timer.Reset(o.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			o.logger.Info(ctx, "watcher stopped")
			return nil

		case <-timerCh:
			timer, timerCh = nil, nil
			o.metrics.RecordSnapshotReload()
			onChange(ctx)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				o.logger.Debug(ctx, "snapshot changed", logger.String("op", ev.Op.String()))
				schedule()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			o.logger.Error(ctx, "watcher error", logger.Error(werr))
		}
	}
}
