package prefetch

import (
	"context"
	"sync"

	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/catalog"
	"github.com/mstefano/lightbox/pkg/fetch"
	"github.com/mstefano/lightbox/pkg/navigation"
)

// entry tracks one resource reference.
//
// An entry transitions pending -> ready or pending -> failed exactly
// once per load attempt. The cancelled flag is checked under the cache
// lock before any result is committed, so a cancelled load can never
// become ready even if its network call succeeded.
type entry struct {
	tier      Tier
	status    Status
	data      []byte
	cancel    context.CancelFunc
	cancelled bool
}

// Cache keeps a direction-aware window of resources loaded.
//
// There is at most one entry per resource reference: requesting a ref
// that is already pending or ready is a no-op (single flight). Loads run
// asynchronously; Reconcile cancels pending loads that fall outside the
// current window and starts the missing ones. Failed loads are logged
// and otherwise ignored; the resource simply never becomes ready until
// a later Reconcile re-requests it.
//
// Safe for concurrent use.
type Cache struct {
	loader  fetch.Loader
	cfg     Config
	metrics Metrics

	mu         sync.Mutex
	collection *catalog.Collection
	entries    map[string]*entry
	closed     bool
}

// New creates a prefetch cache over the given loader.
// metrics may be nil.
func New(loader fetch.Loader, cfg Config, metrics Metrics) *Cache {
	if cfg.MediaWindow <= 0 {
		cfg.MediaWindow = DefaultConfig().MediaWindow
	}
	if cfg.ThumbWindow <= 0 {
		cfg.ThumbWindow = DefaultConfig().ThumbWindow
	}
	return &Cache{
		loader:  loader,
		cfg:     cfg,
		metrics: metrics,
		entries: make(map[string]*entry),
	}
}

// SetCollection replaces the collection the window is computed against.
// Called on session start and after every catalog refresh.
func (c *Cache) SetCollection(col *catalog.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collection = col
}

// Request starts an asynchronous load for ref unless an entry for it is
// already pending or ready. A previously failed ref gets a fresh
// attempt.
func (c *Cache) Request(ref string, tier Tier) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestLocked(ref, tier)
}

// requestLocked is Request with c.mu held.
func (c *Cache) requestLocked(ref string, tier Tier) error {
	if c.closed {
		return ErrCacheClosed
	}
	if ref == "" {
		return nil
	}
	if e, ok := c.entries[ref]; ok && e.status != StatusFailed {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &entry{tier: tier, status: StatusPending, cancel: cancel}
	c.entries[ref] = e

	if c.metrics != nil {
		c.metrics.RecordLoadStarted(tier.String())
		c.metrics.RecordPending(c.pendingLocked())
	}

	go c.load(ctx, ref, e)
	return nil
}

// load performs the fetch and commits the result, unless the entry was
// cancelled in the meantime. Cancellation is cooperative: the network
// call may run to completion, only the commit is suppressed.
func (c *Cache) load(ctx context.Context, ref string, e *entry) {
	data, err := c.loader.Load(ctx, ref)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e.cancelled || c.entries[ref] != e {
		logger.Debug("discarding cancelled load", "ref", ref, "error", errLoadCancelled)
		if c.metrics != nil {
			c.metrics.RecordLoadCancelled(e.tier.String())
		}
		return
	}

	if err != nil {
		e.status = StatusFailed
		logger.Warn("resource load failed", "ref", ref, "tier", e.tier, "error", err)
		if c.metrics != nil {
			c.metrics.RecordLoadFailed(e.tier.String())
			c.metrics.RecordPending(c.pendingLocked())
		}
		return
	}

	e.status = StatusReady
	e.data = data
	logger.Debug("resource ready", "ref", ref, "tier", e.tier, "bytes", len(data))
	if c.metrics != nil {
		c.metrics.RecordLoadReady(e.tier.String(), len(data))
		c.metrics.RecordPending(c.pendingLocked())
	}
}

// Reconcile recomputes the desired windows around (position, direction)
// and brings the entry map in line: pending loads outside both tiers'
// desired sets are cancelled and removed, then missing refs are
// requested — current position first, look-ahead before look-behind.
func (c *Cache) Reconcile(position int, dir navigation.Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}

	col := c.collection
	n := col.Len()
	if n == 0 {
		return nil
	}

	type want struct {
		ref  string
		tier Tier
	}
	var ordered []want
	desired := make(map[string]bool)

	for _, i := range Window(position, dir, n, c.cfg.MediaWindow) {
		if ref := col.Photo(i).MediaRef; ref != "" && !desired[ref] {
			desired[ref] = true
			ordered = append(ordered, want{ref, TierMedia})
		}
	}
	for _, i := range Window(position, dir, n, c.cfg.ThumbWindow) {
		if ref := col.Photo(i).ThumbRef; ref != "" && !desired[ref] {
			desired[ref] = true
			ordered = append(ordered, want{ref, TierThumb})
		}
	}

	// Cancel in-flight loads that fell outside the window. Ready and
	// failed entries are left alone: there is no eviction here, and a
	// failed ref only restarts if it is still wanted.
	for ref, e := range c.entries {
		if e.status == StatusPending && !desired[ref] {
			e.cancelled = true
			e.cancel()
			delete(c.entries, ref)
			if c.metrics != nil {
				c.metrics.RecordLoadCancelled(e.tier.String())
			}
		}
	}

	for _, w := range ordered {
		if err := c.requestLocked(w.ref, w.tier); err != nil {
			return err
		}
	}
	return nil
}

// IsReady reports whether the resource behind ref is loaded.
func (c *Cache) IsReady(ref string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ref]
	return ok && e.status == StatusReady
}

// Ready returns the loaded bytes for ref, if available.
func (c *Cache) Ready(ref string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ref]
	if !ok || e.status != StatusReady {
		return nil, false
	}
	return e.data, true
}

// Status returns the entry status for ref and whether an entry exists.
func (c *Cache) Status(ref string) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ref]
	if !ok {
		return 0, false
	}
	return e.status, true
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var s Stats
	for _, e := range c.entries {
		switch e.status {
		case StatusPending:
			s.Pending++
		case StatusReady:
			s.Ready++
			s.Bytes += int64(len(e.data))
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Release tears the cache down: every pending load is cancelled so no
// commit can land after the owning session ends. Safe to call multiple
// times; all operations after Release return ErrCacheClosed.
func (c *Cache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	for ref, e := range c.entries {
		if e.status == StatusPending {
			e.cancelled = true
			e.cancel()
			if c.metrics != nil {
				c.metrics.RecordLoadCancelled(e.tier.String())
			}
		}
		delete(c.entries, ref)
	}
	if c.metrics != nil {
		c.metrics.RecordPending(0)
	}
}

// pendingLocked counts pending entries. Callers hold c.mu.
func (c *Cache) pendingLocked() int {
	n := 0
	for _, e := range c.entries {
		if e.status == StatusPending {
			n++
		}
	}
	return n
}
