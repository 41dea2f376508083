package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cricbase/cricstats/internal/report"
	"github.com/cricbase/cricstats/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <season> <match>",
	Short: "Show the scorecard for one match",
	Long:  `Prints the match header plus batting and bowling tables. The match argument is the match number or a stage label such as "Final".`,
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	season, matchID := args[0], args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatch(season, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("no match %s in season %s", matchID, season)
	}
	card, err := db.GetScorecard(season, matchID)
	if err != nil {
		return fmt.Errorf("get scorecard: %w", err)
	}

	report.PrintMatchHeader(os.Stdout, *match)
	report.PrintBattingTable(os.Stdout, card)
	fmt.Fprintln(os.Stdout)
	report.PrintBowlingTable(os.Stdout, card)
	return nil
}
