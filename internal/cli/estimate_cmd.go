package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erinhale/kcal/internal/cli/formatter"
	"github.com/erinhale/kcal/internal/service"
)

func newEstimateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate <description>...",
		Short: "Estimate calories for a description of foods eaten",
		Example: `  kcal estimate "2 eggs, toast with butter, black coffee"
  kcal estimate 1 banana, 8 oz orange juice`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")

			entry, err := app.Estimates.Estimate(context.Background(), raw)
			if err != nil {
				if errors.Is(err, service.ErrEmptyInput) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Describe what you ate first."))
					return nil
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimate(entry, 0))
			return nil
		},
	}
	return cmd
}
