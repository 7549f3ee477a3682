package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinhale/kcal/internal/estimator"
	"github.com/erinhale/kcal/internal/repository"
	"github.com/erinhale/kcal/internal/service"
	"github.com/erinhale/kcal/internal/teatest"
)

func testApp() (*App, repository.EstimateRepo) {
	repo := repository.NewMemoryEstimateRepo()
	return &App{
		Estimates: service.NewEstimateService(estimator.New(), repo),
	}, repo
}

func newTestScreen(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	m := newTUIModel(app)
	m.delay = 0 // tests need the estimate tick to fire synchronously
	return teatest.New(t, m)
}

func TestTUI_EstimateFlow(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.Type("2 eggs, toast with butter, black coffee")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "2 eggs")
	assert.Contains(t, view, "156 kcal")
	assert.Contains(t, view, "toast with butter")
	assert.Contains(t, view, "black coffee")
	assert.Contains(t, view, "233 kcal")

	// Input resets for the next entry; the run lands in history.
	assert.Contains(t, view, "Recent")

	recorded, err := app.Estimates.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, 233, recorded[0].TotalCalories)
}

func TestTUI_FallbackChipMarked(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.Type("mystery snack")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "mystery snack")
	assert.Contains(t, view, "~120 kcal (guess)")
}

func TestTUI_EmptyEnterShowsAdvisory(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.PressEnter()

	assert.Contains(t, d.View(), "Describe what you ate first.")

	recorded, err := app.Estimates.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recorded, "empty input must not be recorded")
}

func TestTUI_AdvisoryClearsOnNextEstimate(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.PressEnter()
	assert.Contains(t, d.View(), "Describe what you ate first.")

	d.Type("toast")
	d.PressEnter()
	assert.NotContains(t, d.View(), "Describe what you ate first.")
}

func TestTUI_QuitKeys(t *testing.T) {
	app, _ := testApp()

	d := newTestScreen(t, app)
	d.PressEsc()
	assert.True(t, d.Quitting)

	d = newTestScreen(t, app)
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestTUI_HistoryRecall(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.Type("toast")
	d.PressEnter()
	d.Type("banana")
	d.PressEnter()

	// Up walks newest to oldest; Down comes back to a blank input.
	d.PressUp()
	assert.Contains(t, d.View(), "banana")

	d.PressUp()
	view := d.View()
	assert.Contains(t, view, "toast")

	d.PressDown()
	d.PressDown()
	// Two downs from the oldest entry should land back on fresh input;
	// submitting now should complain about empty input.
	d.PressEnter()
	assert.Contains(t, d.View(), "Describe what you ate first.")
}

func TestTUI_StartupLoadsExistingHistory(t *testing.T) {
	app, _ := testApp()
	_, err := app.Estimates.Estimate(context.Background(), "1 banana")
	require.NoError(t, err)

	d := newTestScreen(t, app)

	view := d.View()
	assert.Contains(t, view, "Recent")
	assert.Contains(t, view, "1 banana")
	assert.Contains(t, view, "105 kcal")
}

func TestTUI_CaptureKeysShowAdvisory(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.PressCtrlP()
	assert.Contains(t, d.View(), "Photo capture isn't available in the terminal.")

	d.PressCtrlB()
	assert.Contains(t, d.View(), "Barcode scanning isn't available in the terminal.")
}

func TestTUI_ClearHistoryConfirmed(t *testing.T) {
	app, repo := testApp()
	d := newTestScreen(t, app)

	d.Type("toast")
	d.PressEnter()

	d.PressCtrlL()
	assert.Contains(t, d.View(), "Clear all 1 past estimates?")

	// The confirm form defaults to "Clear"; Enter accepts it.
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "History cleared.")
	assert.NotContains(t, view, "Recent")

	recorded, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestTUI_ClearHistoryCancelledWithEsc(t *testing.T) {
	app, repo := testApp()
	d := newTestScreen(t, app)

	d.Type("toast")
	d.PressEnter()

	d.PressCtrlL()
	d.PressEsc()

	assert.Contains(t, d.View(), "Recent", "history survives a cancelled clear")

	recorded, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestTUI_ClearHistoryWhenEmpty(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	d.PressCtrlL()

	assert.Contains(t, d.View(), "History is already empty.")
}

func TestTUI_FooterAdvertisesDisabledCapture(t *testing.T) {
	app, _ := testApp()
	d := newTestScreen(t, app)

	assert.Contains(t, d.View(), "photo & barcode capture unavailable in terminal")
}
