package repository

import (
	"context"
	"testing"
	"time"

	"github.com/erinhale/kcal/internal/domain"
	"github.com/erinhale/kcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoUnderTest builds each EstimateRepo implementation against fresh state.
// Both stores must satisfy the same contract; the suite below runs against
// each.
func reposUnderTest(t *testing.T) map[string]EstimateRepo {
	t.Helper()
	return map[string]EstimateRepo{
		"sqlite": NewSQLiteEstimateRepo(testutil.NewTestDB(t)),
		"memory": NewMemoryEstimateRepo(),
	}
}

func TestEstimateRepo_CreateAndGet(t *testing.T) {
	for name, repo := range reposUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e := testutil.NewTestEstimate("2 eggs, mystery snack", testutil.WithItems(
				domain.FoodLineItem{Label: "2 eggs", Calories: 156, Matched: true},
				domain.FoodLineItem{Label: "mystery snack", Calories: 120, Matched: false},
			))
			require.NoError(t, repo.Create(ctx, e))

			got, err := repo.GetByID(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, e.ID, got.ID)
			assert.Equal(t, "2 eggs, mystery snack", got.RawInput)
			assert.Equal(t, 276, got.TotalCalories)
			require.Len(t, got.Items, 2)
			assert.Equal(t, "2 eggs", got.Items[0].Label)
			assert.True(t, got.Items[0].Matched)
			assert.Equal(t, "mystery snack", got.Items[1].Label)
			assert.False(t, got.Items[1].Matched, "fallback flag survives the round trip")
			assert.True(t, got.CreatedAt.Equal(e.CreatedAt))
		})
	}
}

func TestEstimateRepo_GetByID_NotFound(t *testing.T) {
	for name, repo := range reposUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByID(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestEstimateRepo_ListRecent_NewestFirst(t *testing.T) {
	for name, repo := range reposUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := testutil.NewTestEstimate("toast")
			second := testutil.NewTestEstimate("banana")
			third := testutil.NewTestEstimate("rice")
			for _, e := range []*domain.Estimate{first, second, third} {
				require.NoError(t, repo.Create(ctx, e))
			}

			recent, err := repo.ListRecent(ctx, 0)
			require.NoError(t, err)
			require.Len(t, recent, 3)
			assert.Equal(t, "rice", recent[0].RawInput)
			assert.Equal(t, "banana", recent[1].RawInput)
			assert.Equal(t, "toast", recent[2].RawInput)
			assert.Len(t, recent[0].Items, 1, "items are loaded for listed estimates")

			limited, err := repo.ListRecent(ctx, 2)
			require.NoError(t, err)
			require.Len(t, limited, 2)
			assert.Equal(t, "rice", limited[0].RawInput)
			assert.Equal(t, "banana", limited[1].RawInput)
		})
	}
}

func TestEstimateRepo_Delete(t *testing.T) {
	for name, repo := range reposUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e := testutil.NewTestEstimate("toast")
			require.NoError(t, repo.Create(ctx, e))

			require.NoError(t, repo.Delete(ctx, e.ID))

			_, err := repo.GetByID(ctx, e.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
		})
	}
}

func TestEstimateRepo_Clear(t *testing.T) {
	for name, repo := range reposUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate("toast")))
			require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate("banana")))

			require.NoError(t, repo.Clear(ctx))

			recent, err := repo.ListRecent(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, recent)

			// Clearing an empty store is fine.
			require.NoError(t, repo.Clear(ctx))
		})
	}
}

func TestMemoryEstimateRepo_CallerCannotMutateStore(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEstimateRepo()

	e := testutil.NewTestEstimate("toast")
	require.NoError(t, repo.Create(ctx, e))

	// Mutating the caller's copy after Create must not affect the store.
	e.Items[0].Calories = 9999

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, got.Items[0].Calories)

	// Nor should mutating a returned copy.
	got.Items[0].Calories = 1
	again, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, again.Items[0].Calories)
}

func TestSQLiteEstimateRepo_TimestampsStoredUTC(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteEstimateRepo(testutil.NewTestDB(t))

	created := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	e := testutil.NewTestEstimate("toast", testutil.WithCreatedAt(created))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created))
}
