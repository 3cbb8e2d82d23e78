package service

import (
	"context"
	"sync"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/repository"
)

// State owns the live aggregate. Mutations go through apply: the
// mutator builds a fresh aggregate (copy-on-write), the pointer is
// swapped under the lock, and the new state is written through the
// repository. Readers take Snapshot and must treat it as immutable;
// they re-read after each mutation instead of receiving notifications.
type State struct {
	mu   sync.Mutex
	repo repository.AggregateRepository
	agg  *domain.Aggregate
}

// NewState loads the persisted aggregate and wraps it.
func NewState(ctx context.Context, repo repository.AggregateRepository) *State {
	return &State{
		repo: repo,
		agg:  repo.Load(ctx),
	}
}

// Snapshot returns the current aggregate. The returned value is a
// stable snapshot: later mutations swap in a new aggregate rather
// than editing this one.
func (s *State) Snapshot() *domain.Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg
}

// Replace swaps in a whole new aggregate and persists it. Used by
// destructive operations like reset.
func (s *State) Replace(ctx context.Context, agg *domain.Aggregate) {
	s.mu.Lock()
	s.agg = agg
	s.mu.Unlock()
	s.repo.Save(ctx, agg)
}

// apply runs fn against the current aggregate and installs its result.
// fn must not modify its argument; it returns a fresh aggregate, or
// nil to signal a no-op (unknown id), in which case nothing is saved.
func (s *State) apply(ctx context.Context, fn func(*domain.Aggregate) *domain.Aggregate) {
	s.mu.Lock()
	next := fn(s.agg)
	if next != nil {
		s.agg = next
	}
	s.mu.Unlock()

	if next != nil {
		s.repo.Save(ctx, next)
	}
}
