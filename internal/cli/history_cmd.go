package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/erinhale/kcal/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and re-run past estimates",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryRerunCmd(app),
		newHistoryRemoveCmd(app),
		newHistoryClearCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past estimates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			estimates, err := app.Estimates.History(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistoryTable(estimates))
			return nil
		},
	}

	addLimitFlag(cmd.Flags(), &limit)
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one past estimate in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := resolveEstimate(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim(entry.RawInput))
			fmt.Fprintln(out, formatter.FormatEstimate(entry, 0))
			return nil
		},
	}
	return cmd
}

func newHistoryRerunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rerun <id>",
		Short: "Re-run a past estimate's input as a new entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prior, err := resolveEstimate(ctx, app, args[0])
			if err != nil {
				return err
			}
			entry, err := app.Estimates.Rerun(ctx, prior.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimate(entry, 0))
			return nil
		},
		Args: cobra.ExactArgs(1),
	}
	return cmd
}

func newHistoryRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one past estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			entry, err := resolveEstimate(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Estimates.Delete(ctx, entry.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed estimate %s\n", entry.ID)
			return nil
		},
	}
	return cmd
}

func newHistoryClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all past estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("clearing history is irreversible; pass --yes to confirm")
			}
			if err := app.Estimates.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

// addLimitFlag registers the shared --limit flag on a history flag set.
func addLimitFlag(flags *pflag.FlagSet, limit *int) {
	flags.IntVar(limit, "limit", 20, "Maximum entries to show (0 for all)")
}
