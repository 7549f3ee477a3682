package cli

import (
	"github.com/spf13/cobra"

	"github.com/erinhale/kcal/internal/service"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Estimates service.EstimateService

	// IsInteractive reports whether stdin is attached to a terminal.
	// The bare root command only launches the TUI when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "kcal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "kcal",
		Short: "Estimate calories from a free-text description of foods eaten",
		Long: `kcal turns a typed description like "2 eggs, toast with butter" into a
rough per-item calorie breakdown using a small built-in lookup table.
Estimates are heuristic guesses, not nutrition advice.

Run with no arguments in a terminal to open the interactive screen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newEstimateCmd(app),
		newHistoryCmd(app),
	)

	return root
}
