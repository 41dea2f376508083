package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cricbase/cricstats/internal/report"
	"github.com/cricbase/cricstats/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'cricstats build <dir>' to ingest scorecards.")
		return nil
	}
	lastRun, err := db.LastRun()
	if err != nil {
		return fmt.Errorf("read ingest ledger: %w", err)
	}

	report.PrintMatchList(os.Stdout, matches, lastRun)
	return nil
}
