// Package prefetch keeps a bounded, direction-aware window of media
// resources loaded around the current position, and cancels the rest.
package prefetch

import "errors"

var (
	// ErrCacheClosed is returned when operations are attempted after
	// Release.
	ErrCacheClosed = errors.New("prefetch cache is closed")

	// errLoadCancelled marks a load whose entry was cancelled before its
	// result could be committed. Internal only; never surfaced.
	errLoadCancelled = errors.New("load cancelled")
)

// Tier is a class of resource with its own window size. Media resources
// are expensive and get a small window; thumbnails are cheap and get a
// larger one.
type Tier int

const (
	TierMedia Tier = iota
	TierThumb
)

// String returns the string representation of Tier.
func (t Tier) String() string {
	switch t {
	case TierMedia:
		return "media"
	case TierThumb:
		return "thumb"
	default:
		return "unknown"
	}
}

// Status is the state of a cache entry.
type Status int

const (
	// StatusPending indicates the load is in flight.
	StatusPending Status = iota

	// StatusReady indicates the bytes are available.
	StatusReady

	// StatusFailed indicates the load attempt failed. Terminal for the
	// attempt; a later Reconcile may start a fresh one.
	StatusFailed
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds the per-tier window sizes.
type Config struct {
	// MediaWindow is the look-ahead size for full media resources.
	MediaWindow int

	// ThumbWindow is the look-ahead size for thumbnails.
	ThumbWindow int
}

// DefaultConfig returns the default window sizes.
func DefaultConfig() Config {
	return Config{
		MediaWindow: 3,
		ThumbWindow: 9,
	}
}

// Stats contains cache statistics for observability.
type Stats struct {
	// Pending is the number of in-flight loads.
	Pending int

	// Ready is the number of loaded resources.
	Ready int

	// Failed is the number of entries whose last attempt failed.
	Failed int

	// Bytes is the total size of ready resources.
	Bytes int64
}

// Metrics receives prefetch cache observations.
// A nil Metrics disables instrumentation with zero overhead.
type Metrics interface {
	RecordLoadStarted(tier string)
	RecordLoadReady(tier string, bytes int)
	RecordLoadFailed(tier string)
	RecordLoadCancelled(tier string)
	RecordPending(count int)
}
