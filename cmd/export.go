package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cricbase/cricstats/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <outdir>",
	Short: "Export every relation as a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir := args[0]
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	for _, dump := range []struct {
		file string
		rows func(*storage.DB) ([]string, [][]string, error)
	}{
		{"match.csv", matchRows},
		{"player.csv", playerRows},
		{"player_match.csv", playerMatchRows},
		{"delivery.csv", deliveryRows},
		{"wicket.csv", wicketRows},
		{"extra.csv", extraRows},
		{"fielder_wicket.csv", fielderWicketRows},
	} {
		header, rows, err := dump.rows(db)
		if err != nil {
			return fmt.Errorf("%s: %w", dump.file, err)
		}
		if err := writeCSV(filepath.Join(outDir, dump.file), header, rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote %s (%d rows)\n", dump.file, len(rows))
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// optstr renders an optional column; absent values export as empty cells.
func optstr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func matchRows(db *storage.DB) ([]string, [][]string, error) {
	matches, err := db.ListMatches()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"season", "match_id", "city", "start_date", "winner", "eliminator",
		"team_a", "team_b", "team_batting_first", "team_chasing", "target_overs", "target_runs"}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		overs, runs := "", ""
		if m.TargetOvers != nil {
			overs = strconv.FormatFloat(*m.TargetOvers, 'f', -1, 64)
		}
		if m.TargetRuns != nil {
			runs = strconv.Itoa(*m.TargetRuns)
		}
		rows = append(rows, []string{
			m.Season, m.MatchID, optstr(m.City), optstr(m.StartDate), optstr(m.Winner), optstr(m.Eliminator),
			m.TeamA, m.TeamB, optstr(m.TeamBattingFirst), optstr(m.TeamChasing), overs, runs,
		})
	}
	return header, rows, nil
}

func playerRows(db *storage.DB) ([]string, [][]string, error) {
	players, err := db.AllPlayers()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"identifier", "name", "unique_name", "key_cricinfo"}
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{p.ID, p.Name, p.UniqueName, p.CricinfoID})
	}
	return header, rows, nil
}

func playerMatchRows(db *storage.DB) ([]string, [][]string, error) {
	pms, err := db.AllPlayerMatches()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"season", "match_id", "player_id", "name", "team",
		"runs_scored", "runs_conceded", "fours_scored", "fours_conceded",
		"sixes_scored", "sixes_conceded", "balls_faced", "balls_delivered",
		"wickets", "out", "position"}
	rows := make([][]string, 0, len(pms))
	for _, p := range pms {
		position := ""
		if p.Position > 0 {
			position = strconv.Itoa(p.Position)
		}
		rows = append(rows, []string{
			p.Season, p.MatchID, p.PlayerID, p.Name, p.Team,
			strconv.Itoa(p.RunsScored), strconv.Itoa(p.RunsConceded),
			strconv.Itoa(p.FoursScored), strconv.Itoa(p.FoursConceded),
			strconv.Itoa(p.SixesScored), strconv.Itoa(p.SixesConceded),
			strconv.Itoa(p.BallsFaced), strconv.Itoa(p.BallsDelivered),
			strconv.Itoa(p.Wickets), strconv.Itoa(p.Out), position,
		})
	}
	return header, rows, nil
}

func deliveryRows(db *storage.DB) ([]string, [][]string, error) {
	deliveries, err := db.AllDeliveries()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"season", "match_id", "team_batting", "over", "number", "seq",
		"batter_id", "bowler_id", "non_striker_id",
		"batter_runs", "extras_runs", "total_runs", "wicket_count"}
	rows := make([][]string, 0, len(deliveries))
	for _, d := range deliveries {
		rows = append(rows, []string{
			d.Season, d.MatchID, d.TeamBatting,
			strconv.Itoa(d.Over), strconv.Itoa(d.Number), strconv.Itoa(d.Seq),
			d.BatterID, d.BowlerID, d.NonStrikerID,
			strconv.Itoa(d.BatterRuns), strconv.Itoa(d.ExtrasRuns),
			strconv.Itoa(d.TotalRuns), strconv.Itoa(d.WicketCount),
		})
	}
	return header, rows, nil
}

func wicketRows(db *storage.DB) ([]string, [][]string, error) {
	wickets, err := db.AllWickets()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"season", "match_id", "team_batting", "over", "number", "player_out_id", "kind"}
	rows := make([][]string, 0, len(wickets))
	for _, w := range wickets {
		rows = append(rows, []string{
			w.Season, w.MatchID, w.TeamBatting,
			strconv.Itoa(w.Over), strconv.Itoa(w.Number), w.PlayerOutID, w.Kind,
		})
	}
	return header, rows, nil
}

func extraRows(db *storage.DB) ([]string, [][]string, error) {
	extras, err := db.AllExtras()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"season", "match_id", "team_batting", "over", "number",
		"byes", "legbyes", "noballs", "penalty", "wides"}
	rows := make([][]string, 0, len(extras))
	for _, e := range extras {
		rows = append(rows, []string{
			e.Season, e.MatchID, e.TeamBatting,
			strconv.Itoa(e.Over), strconv.Itoa(e.Number),
			strconv.Itoa(e.Byes), strconv.Itoa(e.Legbyes), strconv.Itoa(e.Noballs),
			strconv.Itoa(e.Penalty), strconv.Itoa(e.Wides),
		})
	}
	return header, rows, nil
}

func fielderWicketRows(db *storage.DB) ([]string, [][]string, error) {
	fielders, err := db.AllFielderWickets()
	if err != nil {
		return nil, nil, err
	}
	header := []string{"season", "match_id", "team_batting", "over", "number", "fielder_id"}
	rows := make([][]string, 0, len(fielders))
	for _, f := range fielders {
		rows = append(rows, []string{
			f.Season, f.MatchID, f.TeamBatting,
			strconv.Itoa(f.Over), strconv.Itoa(f.Number), f.FielderID,
		})
	}
	return header, rows, nil
}
