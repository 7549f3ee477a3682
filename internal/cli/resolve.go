package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erinhale/kcal/internal/domain"
	"github.com/erinhale/kcal/internal/repository"
)

// resolveEstimate looks up a history entry by full ID or unambiguous ID
// prefix, so users can paste the 8-character IDs the history table shows.
func resolveEstimate(ctx context.Context, app *App, ref string) (*domain.Estimate, error) {
	entry, err := app.Estimates.Get(ctx, ref)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := app.Estimates.History(ctx, 0)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Estimate
	for _, e := range all {
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("estimate %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("estimate ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
