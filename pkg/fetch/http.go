package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPLoader fetches resources over HTTP, resolving refs against a base
// URL.
type HTTPLoader struct {
	base   string
	client *http.Client
}

// NewHTTPLoader creates a loader rooted at base.
func NewHTTPLoader(base string) *HTTPLoader {
	return &HTTPLoader{
		base: strings.TrimRight(base, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Load fetches base/ref and returns the body.
func (l *HTTPLoader) Load(ctx context.Context, ref string) ([]byte, error) {
	url := l.base + "/" + strings.TrimLeft(ref, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", ref, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return data, nil
}
