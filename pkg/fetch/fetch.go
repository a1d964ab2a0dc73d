// Package fetch provides the resource loader capability: a cancellable
// byte fetch for a media or thumbnail reference.
package fetch

import "context"

// Loader fetches the bytes behind a resource reference.
//
// Load must honor ctx cancellation: cancelling the context releases the
// in-flight request. Implementations never retry; retry policy belongs
// to the caller and must be bounded.
type Loader interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) ([]byte, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}
