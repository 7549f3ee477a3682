package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/erinhale/kcal/internal/cli"
	"github.com/erinhale/kcal/internal/db"
	"github.com/erinhale/kcal/internal/estimator"
	"github.com/erinhale/kcal/internal/repository"
	"github.com/erinhale/kcal/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// History is in-memory by default and lives only as long as the
	// process. KCAL_DB points at a SQLite file for history that survives
	// restarts.
	var history repository.EstimateRepo = repository.NewMemoryEstimateRepo()
	if dbPath := os.Getenv("KCAL_DB"); dbPath != "" {
		database, err := db.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()
		history = repository.NewSQLiteEstimateRepo(database)
	}

	est := estimator.New()

	// Shadowed table keys can never win a match; surface them instead of
	// silently reordering the table.
	if shadowed := est.Table().ShadowedKeys(); len(shadowed) > 0 && os.Getenv("KCAL_LOG") != "" {
		fmt.Fprintf(os.Stderr, "warning: calorie table keys shadowed by earlier entries: %v\n", shadowed)
	}

	var observers []service.UseCaseObserver
	if os.Getenv("KCAL_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Estimates: service.NewEstimateService(est, history, observers...),
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
