package catalog

import "fmt"

// NetworkError indicates a transport failure while fetching the manifest
// or probing the generation token. It is fatal to the calling load; the
// caller decides whether to retry.
type NetworkError struct {
	Op  string // "fetch" or "probe"
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError indicates the manifest body failed structural
// validation. A partial collection is never returned.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid manifest: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid manifest: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// QuotaExceededError indicates a persisted-store write failed.
// Snapshot persistence is an optimization, so the cache swallows this
// error after logging; the in-memory snapshot still serves the session.
type QuotaExceededError struct {
	Key string
	Err error
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("snapshot write %s: %v", e.Key, e.Err)
}

func (e *QuotaExceededError) Unwrap() error { return e.Err }
