// Package session wires the catalog cache, navigation controller, and
// prefetch cache into one browsing session.
package session

import (
	"context"
	"fmt"

	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/catalog"
	"github.com/mstefano/lightbox/pkg/navigation"
	"github.com/mstefano/lightbox/pkg/prefetch"
)

// Session coordinates one browsing session.
//
// Navigation calls go through the session so every position change is
// followed by a prefetch reconciliation: the window is recomputed and
// loads outside it are cancelled. The session owns teardown: Close
// releases the prefetch cache so no load commits after the session
// ends.
type Session struct {
	catalog  *catalog.Cache
	nav      *navigation.Controller
	prefetch *prefetch.Cache
}

// New creates a session from its three components.
func New(cat *catalog.Cache, nav *navigation.Controller, pf *prefetch.Cache) *Session {
	return &Session{catalog: cat, nav: nav, prefetch: pf}
}

// Start loads the collection and primes the prefetch window around the
// start position.
func (s *Session) Start(ctx context.Context) error {
	col, err := s.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.nav.SetCollection(col)
	s.prefetch.SetCollection(col)

	pos, dir := s.nav.Position()
	if err := s.prefetch.Reconcile(pos, dir); err != nil {
		return err
	}
	logger.Info("session started", "photos", col.Len(), "position", pos)
	return nil
}

// Step moves one photo forward or backward and reconciles the window.
func (s *Session) Step(dir navigation.Direction) (int, error) {
	s.nav.Step(dir)
	return s.reconcile()
}

// Jump moves to the photo nearest the fractional-year target and
// reconciles the window.
func (s *Session) Jump(target float64) (int, error) {
	s.nav.JumpTo(target)
	return s.reconcile()
}

// Select moves directly to index and reconciles the window.
func (s *Session) Select(index int) (int, error) {
	s.nav.Select(index)
	return s.reconcile()
}

func (s *Session) reconcile() (int, error) {
	pos, dir := s.nav.Position()
	if err := s.prefetch.Reconcile(pos, dir); err != nil {
		return pos, err
	}
	return pos, nil
}

// Refresh forces a full catalog fetch and swaps the new collection into
// navigation and prefetch.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.catalog.Invalidate(ctx); err != nil {
		logger.Warn("failed to clear persisted snapshot", "error", err)
	}

	col, err := s.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	s.nav.SetCollection(col)
	s.prefetch.SetCollection(col)

	_, err = s.reconcile()
	return err
}

// Navigation returns the navigation controller.
func (s *Session) Navigation() *navigation.Controller { return s.nav }

// Prefetch returns the prefetch cache.
func (s *Session) Prefetch() *prefetch.Cache { return s.prefetch }

// Catalog returns the catalog cache.
func (s *Session) Catalog() *catalog.Cache { return s.catalog }

// Close tears the session down, cancelling all pending loads.
func (s *Session) Close() {
	s.prefetch.Release()
}
