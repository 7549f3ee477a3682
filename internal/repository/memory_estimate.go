package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/erinhale/kcal/internal/domain"
)

// MemoryEstimateRepo implements EstimateRepo in process memory. It is the
// default store: history lives only as long as the process, which matches
// the app's original behavior. Safe for concurrent use.
type MemoryEstimateRepo struct {
	mu        sync.RWMutex
	estimates []*domain.Estimate // insertion order, oldest first
}

// NewMemoryEstimateRepo creates an empty in-memory estimate repo.
func NewMemoryEstimateRepo() *MemoryEstimateRepo {
	return &MemoryEstimateRepo{}
}

func (r *MemoryEstimateRepo) Create(_ context.Context, e *domain.Estimate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneEstimate(e)
	r.estimates = append(r.estimates, stored)
	return nil
}

func (r *MemoryEstimateRepo) GetByID(_ context.Context, id string) (*domain.Estimate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.estimates {
		if e.ID == id {
			return cloneEstimate(e), nil
		}
	}
	return nil, fmt.Errorf("estimate: %w", ErrNotFound)
}

func (r *MemoryEstimateRepo) ListRecent(_ context.Context, limit int) ([]*domain.Estimate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.estimates)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*domain.Estimate, 0, n)
	for i := len(r.estimates) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, cloneEstimate(r.estimates[i]))
	}
	return out, nil
}

func (r *MemoryEstimateRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.estimates {
		if e.ID == id {
			r.estimates = append(r.estimates[:i], r.estimates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("estimate: %w", ErrNotFound)
}

func (r *MemoryEstimateRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.estimates = nil
	return nil
}

// cloneEstimate deep-copies an estimate so callers and the store never share
// item slices.
func cloneEstimate(e *domain.Estimate) *domain.Estimate {
	clone := *e
	clone.Items = make([]domain.FoodLineItem, len(e.Items))
	copy(clone.Items, e.Items)
	return &clone
}
