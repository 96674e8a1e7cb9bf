package dataset

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithLoadHook registers a callback that receives the report of every successful load
func WithLoadHook(fn func(models.LoadReport)) CacheOption {
	return func(c *Cache) {
		c.onLoad = fn
	}
}

// sourceKey identifies one version of the source file
type sourceKey struct {
	path    string
	modTime time.Time
	size    int64
}

func (k sourceKey) same(other sourceKey) bool {
	return k.path == other.path && k.modTime.Equal(other.modTime) && k.size == other.size
}

// Cache memoizes the derived table of one source file.
// The table is reloaded when the file's modification time or size changes,
// or after Invalidate. Loads are serialized; the table itself is shared read-only.
type Cache struct {
	path   string
	onLoad func(models.LoadReport)

	mu    sync.RWMutex
	table *Table
	key   sourceKey
	valid bool
	loads int
}

// NewCache creates a cache for the booking file at path. Nothing is read until Get.
func NewCache(path string, opts ...CacheOption) *Cache {
	c := &Cache{path: path}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the cached source path
func (c *Cache) Path() string {
	return c.path
}

// Get returns the table for the current version of the source, loading it if needed
func (c *Cache) Get() (*Table, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		c.drop()
		return nil, &LoadError{Source: c.path, Err: err}
	}
	key := sourceKey{path: c.path, modTime: info.ModTime(), size: info.Size()}

	c.mu.RLock()
	if c.valid && c.key.same(key) {
		table := c.table
		c.mu.RUnlock()
		return table, nil
	}
	c.mu.RUnlock()

	table, loaded, err := c.load(key)
	if err != nil {
		return nil, err
	}
	if loaded && c.onLoad != nil {
		c.onLoad(table.Report())
	}
	return table, nil
}

func (c *Cache) load(key sourceKey) (*Table, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have loaded this version while we waited
	if c.valid && c.key.same(key) {
		return c.table, false, nil
	}

	table, err := Load(c.path)
	if err != nil {
		c.table, c.valid = nil, false
		log.Printf("[Dataset] Load failed: %v", err)
		return nil, false, err
	}

	c.table, c.key, c.valid = table, key, true
	c.loads++

	r := table.Report()
	log.Printf("[Dataset] Loaded %s: read=%d retained=%d dropped(no_adults=%d, negative_rate=%d, malformed=%d) null_dates=%d missing_guests=%d in %dms",
		r.Source, r.RowsRead, r.RowsRetained, r.DroppedNoAdults, r.DroppedNegativeRate,
		r.DroppedMalformed, r.NullArrivalDates, r.MissingGuestCounts, r.DurationMS)
	return table, true, nil
}

func (c *Cache) drop() {
	c.mu.Lock()
	c.table, c.valid = nil, false
	c.mu.Unlock()
}

// Invalidate forces the next Get to reload the source
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Refresh invalidates the cache and reloads the source immediately
func (c *Cache) Refresh() error {
	c.Invalidate()
	_, err := c.Get()
	return err
}

// Cached reports whether a table is held for the last seen version of the source
func (c *Cache) Cached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// Loads returns how many times the source has been loaded
func (c *Cache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}
