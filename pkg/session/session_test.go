package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstefano/lightbox/pkg/catalog"
	"github.com/mstefano/lightbox/pkg/fetch"
	"github.com/mstefano/lightbox/pkg/navigation"
	"github.com/mstefano/lightbox/pkg/prefetch"
	"github.com/mstefano/lightbox/pkg/store"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type fakeSource struct {
	mu       sync.Mutex
	manifest *catalog.Manifest
	fetches  int
}

func (s *fakeSource) ID() string { return "fake://session" }

func (s *fakeSource) Fetch(ctx context.Context) (*catalog.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.manifest, nil
}

func (s *fakeSource) FetchToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manifest.GenerationToken, nil
}

func galleryManifest(token string, n int) *catalog.Manifest {
	photos := make([]catalog.Photo, n)
	for i := range photos {
		photos[i] = catalog.Photo{
			ID:       string(rune('a' + i)),
			MediaRef: "media/" + string(rune('a'+i)),
			ThumbRef: "thumb/" + string(rune('a'+i)),
			Year:     2020 + i/12,
			Month:    1 + i%12,
		}
	}
	return &catalog.Manifest{
		Photos:          photos,
		Periods:         []catalog.Period{{Year: 2020, Count: n}},
		GenerationToken: token,
	}
}

func newTestSession(t *testing.T, src *fakeSource) *Session {
	t.Helper()

	cat := catalog.NewCache(src, store.NewMemory())
	nav := navigation.New(nil)
	loader := fetch.LoaderFunc(func(ctx context.Context, ref string) ([]byte, error) {
		return []byte(ref), nil
	})
	pf := prefetch.New(loader, prefetch.Config{MediaWindow: 2, ThumbWindow: 4}, nil)

	s := New(cat, nav, pf)
	t.Cleanup(s.Close)
	return s
}

func TestStartPrimesWindow(t *testing.T) {
	src := &fakeSource{manifest: galleryManifest("gen-1", 10)}
	s := newTestSession(t, src)

	require.NoError(t, s.Start(context.Background()))

	// The current photo's media is part of the initial window.
	assert.Eventually(t, func() bool {
		return s.Prefetch().IsReady("media/a")
	}, waitFor, tick)
}

func TestStepReconcilesWindow(t *testing.T) {
	src := &fakeSource{manifest: galleryManifest("gen-1", 10)}
	s := newTestSession(t, src)
	require.NoError(t, s.Start(context.Background()))

	pos, err := s.Step(navigation.DirectionForward)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	assert.Eventually(t, func() bool {
		return s.Prefetch().IsReady("media/b") && s.Prefetch().IsReady("media/c")
	}, waitFor, tick)
}

func TestJumpAndSelect(t *testing.T) {
	src := &fakeSource{manifest: galleryManifest("gen-1", 10)}
	s := newTestSession(t, src)
	require.NoError(t, s.Start(context.Background()))

	pos, err := s.Select(5)
	require.NoError(t, err)
	assert.Equal(t, 5, pos)

	pos, err = s.Jump(2020.0)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestRefreshSwapsCollection(t *testing.T) {
	src := &fakeSource{manifest: galleryManifest("gen-1", 10)}
	s := newTestSession(t, src)
	require.NoError(t, s.Start(context.Background()))

	_, err := s.Select(9)
	require.NoError(t, err)

	// A smaller gallery replaces the old one; the position clamps.
	src.mu.Lock()
	src.manifest = galleryManifest("gen-2", 3)
	src.mu.Unlock()

	require.NoError(t, s.Refresh(context.Background()))

	col, err := s.Catalog().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, col.Len())
	assert.Equal(t, "gen-2", col.Token)

	idx, _ := s.Navigation().Position()
	assert.Equal(t, 2, idx)
}

func TestCloseStopsPrefetch(t *testing.T) {
	src := &fakeSource{manifest: galleryManifest("gen-1", 10)}
	s := newTestSession(t, src)
	require.NoError(t, s.Start(context.Background()))

	s.Close()

	_, err := s.Step(navigation.DirectionForward)
	assert.ErrorIs(t, err, prefetch.ErrCacheClosed)
}
