package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/store"
)

// DefaultTTL is how long a persisted snapshot is considered fresh enough
// to revalidate with a token probe instead of a full fetch.
const DefaultTTL = 24 * time.Hour

// Metrics receives catalog cache observations.
// A nil Metrics disables instrumentation with zero overhead.
type Metrics interface {
	RecordMemoryHit()
	RecordSnapshotAdopted()
	RecordFullFetch()
	RecordProbe(match bool)
}

// Cache produces Collections while minimizing redundant full downloads.
//
// Load resolution order:
//  1. in-memory snapshot, if one exists
//  2. persisted snapshot younger than the TTL whose generation token
//     still matches a lightweight remote probe
//  3. full fetch
//
// A successful full fetch persists the new snapshot; persistence
// failures are logged and swallowed because the in-memory snapshot is
// sufficient for the session.
type Cache struct {
	source  Source
	store   store.Store
	ttl     time.Duration
	metrics Metrics
	now     func() time.Time

	mu       sync.Mutex
	snapshot *Collection
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the snapshot freshness duration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithMetrics attaches catalog metrics.
func WithMetrics(m Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a catalog cache over the given source and snapshot
// store. The store may be nil, in which case nothing is persisted.
func NewCache(source Source, st store.Store, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		store:  st,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// storeKey namespaces the persisted snapshot by source identity, so two
// catalogs sharing one store never clobber each other.
func (c *Cache) storeKey() string {
	return fmt.Sprintf("catalog/snapshot/%016x", xxhash.Sum64String(c.source.ID()))
}

// Load returns the current Collection.
//
// Errors are typed: NetworkError for transport failures,
// ValidationError for structurally invalid manifests. A partial
// collection is never returned, and no retry happens here; retry policy
// belongs to the caller.
func (c *Cache) Load(ctx context.Context) (*Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		if c.metrics != nil {
			c.metrics.RecordMemoryHit()
		}
		return c.snapshot, nil
	}

	if col := c.loadPersisted(ctx); col != nil {
		c.snapshot = col
		return col, nil
	}

	return c.fullFetch(ctx)
}

// loadPersisted tries to adopt a persisted snapshot. It returns nil on
// any miss: absent, stale, token mismatch, or undecodable. Probe
// failures also fall through to a full fetch rather than failing Load.
func (c *Cache) loadPersisted(ctx context.Context) *Collection {
	if c.store == nil {
		return nil
	}

	raw, ok, err := c.store.Get(ctx, c.storeKey())
	if err != nil {
		logger.Warn("failed to read persisted snapshot", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.Collection == nil {
		logger.Warn("discarding undecodable persisted snapshot", "error", err)
		return nil
	}

	age := c.now().Sub(snap.FetchedAt)
	if age >= c.ttl {
		logger.Debug("persisted snapshot too old", "age", age, "ttl", c.ttl)
		return nil
	}

	remoteToken, err := c.source.FetchToken(ctx)
	if err != nil {
		logger.Warn("token probe failed, falling back to full fetch", "error", err)
		return nil
	}

	match := remoteToken == snap.Token
	if c.metrics != nil {
		c.metrics.RecordProbe(match)
	}
	if !match {
		logger.Debug("generation token changed",
			"persisted", snap.Token, "remote", remoteToken)
		return nil
	}

	if c.metrics != nil {
		c.metrics.RecordSnapshotAdopted()
	}
	logger.Debug("adopted persisted snapshot",
		"photos", snap.Collection.Len(), "token", snap.Token)
	return snap.Collection
}

// fullFetch downloads, validates, adopts, and persists the manifest.
// Callers must hold c.mu.
func (c *Cache) fullFetch(ctx context.Context) (*Collection, error) {
	m, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	col := newCollection(m)
	c.snapshot = col
	if c.metrics != nil {
		c.metrics.RecordFullFetch()
	}
	logger.Info("catalog fetched", "photos", col.Len(), "token", col.Token)

	c.persist(ctx, col)
	return col, nil
}

// persist writes the snapshot to the store. Write failures are reported
// as QuotaExceededError in the log and otherwise swallowed: persistence
// is an optimization, not a correctness requirement.
func (c *Cache) persist(ctx context.Context, col *Collection) {
	if c.store == nil {
		return
	}

	raw, err := json.Marshal(snapshot{
		Collection: col,
		Token:      col.Token,
		FetchedAt:  c.now(),
	})
	if err != nil {
		logger.Warn("failed to encode snapshot", "error", err)
		return
	}

	key := c.storeKey()
	if err := c.store.Put(ctx, key, raw); err != nil {
		qe := &QuotaExceededError{Key: key, Err: err}
		logger.Warn("snapshot not persisted", "error", qe)
	}
}

// Invalidate clears the in-memory and persisted snapshots, forcing the
// next Load to perform a full fetch.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	if c.store == nil {
		return nil
	}
	return c.store.Remove(ctx, c.storeKey())
}
