package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Source produces manifests for the catalog cache.
//
// Fetch downloads and decodes the full manifest. FetchToken is the
// lightweight revalidation probe: it reads only the generation token so
// a fresh persisted snapshot can be adopted without a full download.
// ID must be stable for a given source; it namespaces the persisted
// snapshot key.
type Source interface {
	ID() string
	Fetch(ctx context.Context) (*Manifest, error)
	FetchToken(ctx context.Context) (string, error)
}

// HTTPSource fetches the manifest from an HTTP endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for the given manifest URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ID returns the manifest URL.
func (s *HTTPSource) ID() string { return s.url }

// Fetch downloads and decodes the full manifest.
func (s *HTTPSource) Fetch(ctx context.Context) (*Manifest, error) {
	var m Manifest
	if err := s.get(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FetchToken downloads the manifest and reads only the generation token.
func (s *HTTPSource) FetchToken(ctx context.Context) (string, error) {
	var p manifestProbe
	if err := s.getOp(ctx, "probe", &p); err != nil {
		return "", err
	}
	return p.token(), nil
}

func (s *HTTPSource) get(ctx context.Context, result any) error {
	return s.getOp(ctx, "fetch", result)
}

func (s *HTTPSource) getOp(ctx context.Context, op string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: s.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: s.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{
			Op:  op,
			URL: s.url,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ValidationError{Reason: "malformed manifest body", Err: err}
	}
	return nil
}
