package dataset

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron"
)

// Monitor invalidates a Cache whenever its source file changes on disk.
// The parent directory is watched so editors that replace the file are caught.
type Monitor struct {
	cache   *Cache
	watcher *fsnotify.Watcher
	target  string
}

// NewMonitor starts watching the directory of the cache's source file
func NewMonitor(cache *Cache) (*Monitor, error) {
	target, err := filepath.Abs(cache.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	return &Monitor{
		cache:   cache,
		watcher: watcher,
		target:  target,
	}, nil
}

// Run processes file events until ctx is done or the watcher is closed
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if !m.isTarget(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				log.Printf("[Monitor] %s: %s, invalidating dataset cache", event.Op, event.Name)
				m.cache.Invalidate()
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[Monitor] Watch error: %v", err)
		}
	}
}

func (m *Monitor) isTarget(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == m.target
}

// Close stops the watcher
func (m *Monitor) Close() error {
	return m.watcher.Close()
}

// StartRefreshJob schedules a periodic revalidation of the cache.
// Each run stats the source and reloads only when it changed, which also
// catches changes the file watcher missed (network mounts, disabled watching).
func StartRefreshJob(cache *Cache, interval time.Duration) (*cron.Cron, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	c := cron.New()
	schedule := fmt.Sprintf("@every %s", interval)
	err := c.AddFunc(schedule, func() {
		if _, err := cache.Get(); err != nil {
			log.Printf("[Refresh] Revalidation of %s failed: %v", cache.Path(), err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule refresh job %q: %w", schedule, err)
	}

	c.Start()
	log.Printf("[Refresh] Dataset revalidation scheduled (%s)", schedule)
	return c, nil
}
