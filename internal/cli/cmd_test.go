package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with captured output.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf strings.Builder
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	err := root.Execute()
	return buf.String(), err
}

func TestEstimateCmd_PrintsBreakdown(t *testing.T) {
	app, _ := testApp()

	out, err := execute(t, app, "estimate", "2 eggs, toast with butter, black coffee")
	require.NoError(t, err)

	assert.Contains(t, out, "2 eggs")
	assert.Contains(t, out, "156 kcal")
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, "233 kcal")
}

func TestEstimateCmd_JoinsBareArgs(t *testing.T) {
	app, _ := testApp()

	// Unquoted words are joined back into one description.
	out, err := execute(t, app, "estimate", "1", "banana")
	require.NoError(t, err)

	assert.Contains(t, out, "105 kcal")
}

func TestEstimateCmd_RecordsHistory(t *testing.T) {
	app, _ := testApp()

	_, err := execute(t, app, "estimate", "toast")
	require.NoError(t, err)

	recorded, err := app.Estimates.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "toast", recorded[0].RawInput)
}

func TestHistoryListCmd(t *testing.T) {
	app, _ := testApp()

	out, err := execute(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No estimates yet.")

	_, err = execute(t, app, "estimate", "mystery snack")
	require.NoError(t, err)

	out, err = execute(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "mystery snack")
	assert.Contains(t, out, "120 kcal")
}

func TestHistoryShowCmd_ByIDPrefix(t *testing.T) {
	app, _ := testApp()

	entry, err := app.Estimates.Estimate(context.Background(), "1 banana\n8 oz orange juice")
	require.NoError(t, err)

	out, err := execute(t, app, "history", "show", entry.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "1001 kcal")
}

func TestHistoryRerunCmd(t *testing.T) {
	app, _ := testApp()
	ctx := context.Background()

	entry, err := app.Estimates.Estimate(ctx, "2 eggs")
	require.NoError(t, err)

	out, err := execute(t, app, "history", "rerun", entry.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "156 kcal")

	recorded, err := app.Estimates.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recorded, 2, "rerun appends a fresh entry")
}

func TestHistoryRemoveCmd(t *testing.T) {
	app, _ := testApp()
	ctx := context.Background()

	entry, err := app.Estimates.Estimate(ctx, "toast")
	require.NoError(t, err)

	out, err := execute(t, app, "history", "remove", entry.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed estimate")

	recorded, err := app.Estimates.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestHistoryRemoveCmd_UnknownID(t *testing.T) {
	app, _ := testApp()

	_, err := execute(t, app, "history", "remove", "nope")
	assert.Error(t, err)
}

func TestHistoryClearCmd_RequiresYes(t *testing.T) {
	app, _ := testApp()
	ctx := context.Background()

	_, err := app.Estimates.Estimate(ctx, "toast")
	require.NoError(t, err)

	_, err = execute(t, app, "history", "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	recorded, err := app.Estimates.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recorded, 1, "refused clear must not touch history")

	out, err := execute(t, app, "history", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")

	recorded, err = app.Estimates.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	app, _ := testApp()
	app.IsInteractive = func() bool { return false }

	out, err := execute(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "estimate")
	assert.Contains(t, out, "history")
}

func TestResolveEstimate_AmbiguousPrefix(t *testing.T) {
	app, _ := testApp()
	ctx := context.Background()

	// UUIDs open with a hex character, so 17 entries guarantee two share a
	// first character; a one-character prefix is then ambiguous.
	seen := map[byte]bool{}
	for i := 0; i < 20; i++ {
		e, err := app.Estimates.Estimate(ctx, "toast")
		require.NoError(t, err)
		c := e.ID[0]
		if seen[c] {
			_, err := resolveEstimate(ctx, app, string(c))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "ambiguous")
			return
		}
		seen[c] = true
	}
	t.Fatal("expected a first-character collision across 20 uuids")
}
