package repository

import (
	"context"
	"errors"

	"github.com/erinhale/kcal/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// EstimateRepo stores recorded estimates — the app's query history.
type EstimateRepo interface {
	Create(ctx context.Context, e *domain.Estimate) error
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	// ListRecent returns up to limit estimates, newest first.
	// A non-positive limit means no limit.
	ListRecent(ctx context.Context, limit int) ([]*domain.Estimate, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
