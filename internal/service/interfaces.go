package service

import (
	"context"
	"errors"

	"github.com/erinhale/kcal/internal/domain"
)

// ErrEmptyInput is returned when an estimate is requested for blank input.
// The front ends surface it as an advisory, not a failure.
var ErrEmptyInput = errors.New("nothing to estimate")

// EstimateService runs calorie estimates and keeps the query history.
type EstimateService interface {
	// Estimate runs the estimator over raw and records the result as a new
	// history entry. Blank or whitespace-only input returns ErrEmptyInput.
	Estimate(ctx context.Context, raw string) (*domain.Estimate, error)
	// History returns up to limit past estimates, newest first.
	History(ctx context.Context, limit int) ([]*domain.Estimate, error)
	// Get returns a single past estimate.
	Get(ctx context.Context, id string) (*domain.Estimate, error)
	// Rerun re-estimates a past entry's raw input as a fresh entry.
	Rerun(ctx context.Context, id string) (*domain.Estimate, error)
	// Delete removes a single history entry.
	Delete(ctx context.Context, id string) error
	// Clear removes all history.
	Clear(ctx context.Context) error
}
