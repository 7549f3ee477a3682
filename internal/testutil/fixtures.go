package testutil

import (
	"time"

	"github.com/erinhale/kcal/internal/domain"
	"github.com/google/uuid"
)

// EstimateOption customizes a test estimate fixture.
type EstimateOption func(*domain.Estimate)

// WithCreatedAt pins the fixture's timestamp. Fixtures default to distinct
// timestamps so recency ordering is deterministic across stores.
func WithCreatedAt(t time.Time) EstimateOption {
	return func(e *domain.Estimate) { e.CreatedAt = t }
}

// WithItems replaces the fixture's items and recomputes the total.
func WithItems(items ...domain.FoodLineItem) EstimateOption {
	return func(e *domain.Estimate) {
		e.Items = items
		e.TotalCalories = 0
		for _, it := range items {
			e.TotalCalories += it.Calories
		}
	}
}

var fixtureClock = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// NewTestEstimate builds a recorded estimate with one matched item. Each call
// advances a fixture clock by one second so ListRecent order is stable.
func NewTestEstimate(rawInput string, opts ...EstimateOption) *domain.Estimate {
	fixtureClock = fixtureClock.Add(time.Second)
	e := &domain.Estimate{
		ID:            uuid.New().String(),
		RawInput:      rawInput,
		Items:         []domain.FoodLineItem{{Label: rawInput, Calories: 75, Matched: true}},
		TotalCalories: 75,
		CreatedAt:     fixtureClock,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
