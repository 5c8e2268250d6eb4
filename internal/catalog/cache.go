package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
)

// Cache per-session catalog. Fetches and mutations draw versions from one
// monotonic counter; a fetch result lands only if it is newer than the last
// applied one, and the cache is stale while a mutation is newer than it.
type Cache struct {
	mu      sync.Mutex
	counter uint64
	applied uint64
	mutated uint64
	loaded  bool
	records []model.SyllabusRecord
	touched time.Time
}

// BeginFetch draws the version stamp for a fetch about to start
func (c *Cache) BeginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Apply stores a fetch result; it is discarded unless stamp is newer than the applied one
func (c *Cache) Apply(stamp uint64, records []model.SyllabusRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stamp <= c.applied {
		return false
	}
	c.applied = stamp
	c.loaded = true
	c.records = append([]model.SyllabusRecord(nil), records...)
	return true
}

// Invalidate records a mutation; the cache is stale until a fetch started after it lands
func (c *Cache) Invalidate() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	c.mutated = c.counter
	return c.counter
}

// Snapshot returns the cached records, their version and whether they are current
func (c *Cache) Snapshot() ([]model.SyllabusRecord, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := c.loaded && c.applied > c.mutated
	return append([]model.SyllabusRecord(nil), c.records...), c.applied, fresh
}

// Remove drops one record locally so the displayed list loses it before the next fetch
func (c *Cache) Remove(recordID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.records[:0]
	for _, r := range c.records {
		if r.RecordID() != recordID {
			out = append(out, r)
		}
	}
	c.records = out
}

// Registry catalog caches by session id
type Registry struct {
	mu      sync.Mutex
	caches  map[string]*Cache
	idleTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewRegistry creates a Registry; caches idle longer than idleTTL are swept
func NewRegistry(idleTTL time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		caches:  make(map[string]*Cache),
		idleTTL: idleTTL,
		now:     time.Now,
		logger:  logger,
	}
}

// For returns the session's cache, creating it on first use
func (r *Registry) For(sessionID string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caches[sessionID]
	if !ok {
		c = &Cache{}
		r.caches[sessionID] = c
	}
	c.mu.Lock()
	c.touched = r.now()
	c.mu.Unlock()
	return c
}

// Drop forgets the session's cache
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.caches, sessionID)
	r.mu.Unlock()
}

// Sweep evicts caches idle longer than idleTTL and returns how many were removed
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for sid, c := range r.caches {
		c.mu.Lock()
		idle := c.touched.Before(cutoff)
		c.mu.Unlock()
		if idle {
			delete(r.caches, sid)
			n++
		}
	}
	return n
}

// Len number of live caches
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

// Run sweeps every interval until ctx ends
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("catalog caches evicted", zap.Int("count", n))
			}
		}
	}
}
