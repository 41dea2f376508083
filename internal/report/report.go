// Package report renders stored relations as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cricbase/cricstats/internal/model"
	"github.com/cricbase/cricstats/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// PrintMatchList prints one row per stored match, with the last ingest run
// as a footer line when one is recorded.
func PrintMatchList(w io.Writer, matches []model.Match, lastRun *storage.IngestRun) {
	table := newTable(w)
	table.Header("SEASON", "MATCH", "DATE", "CITY", "TEAMS", "WINNER")
	for _, m := range matches {
		table.Append(
			m.Season,
			m.MatchID,
			orDash(m.StartDate),
			orDash(m.City),
			fmt.Sprintf("%s v %s", m.TeamA, m.TeamB),
			orDash(m.Winner),
		)
	}
	table.Render()

	if lastRun != nil {
		fmt.Fprintf(w, "\n%d matches, built %s from %s (run %s)\n",
			len(matches), lastRun.StartedAt.Format("2006-01-02 15:04"),
			lastRun.SourceDir, lastRun.ID[:8])
	}
}

// PrintMatchHeader prints a one-line summary for a match.
func PrintMatchHeader(w io.Writer, m model.Match) {
	fmt.Fprintf(w, "\n%s v %s  |  Season: %s  |  Match: %s  |  Date: %s  |  Winner: %s",
		m.TeamA, m.TeamB, m.Season, m.MatchID, orDash(m.StartDate), orDash(m.Winner))
	if m.Eliminator != nil {
		fmt.Fprintf(w, "  |  Eliminator: %s", *m.Eliminator)
	}
	fmt.Fprintln(w)
	if m.TargetRuns != nil && m.TargetOvers != nil && m.TeamChasing != nil {
		fmt.Fprintf(w, "%s chased %d from %.1f overs\n", *m.TeamChasing, *m.TargetRuns, *m.TargetOvers)
	}
	fmt.Fprintln(w)
}

// PrintBattingTable prints every player who held a batting position, in
// order of team and position.
func PrintBattingTable(w io.Writer, card []model.PlayerMatch) {
	batters := make([]model.PlayerMatch, 0, len(card))
	for _, p := range card {
		if p.Position > 0 {
			batters = append(batters, p)
		}
	}
	sort.SliceStable(batters, func(i, j int) bool {
		if batters[i].Team != batters[j].Team {
			return batters[i].Team < batters[j].Team
		}
		return batters[i].Position < batters[j].Position
	})

	table := newTable(w)
	table.Header("TEAM", "POS", "NAME", "RUNS", "BALLS", "4s", "6s", "SR", "OUT")
	for _, p := range batters {
		out := "not out"
		if p.Out == 1 {
			out = "out"
		}
		table.Append(
			p.Team,
			strconv.Itoa(p.Position),
			p.Name,
			strconv.Itoa(p.RunsScored),
			strconv.Itoa(p.BallsFaced),
			strconv.Itoa(p.FoursScored),
			strconv.Itoa(p.SixesScored),
			fmt.Sprintf("%.1f", p.StrikeRate()),
			out,
		)
	}
	table.Render()
}

// PrintBowlingTable prints every player who delivered at least one legal
// ball or conceded runs, best bowling first.
func PrintBowlingTable(w io.Writer, card []model.PlayerMatch) {
	bowlers := make([]model.PlayerMatch, 0, len(card))
	for _, p := range card {
		if p.BallsDelivered > 0 || p.RunsConceded > 0 {
			bowlers = append(bowlers, p)
		}
	}
	sort.SliceStable(bowlers, func(i, j int) bool {
		if bowlers[i].Wickets != bowlers[j].Wickets {
			return bowlers[i].Wickets > bowlers[j].Wickets
		}
		return bowlers[i].RunsConceded < bowlers[j].RunsConceded
	})

	table := newTable(w)
	table.Header("TEAM", "NAME", "BALLS", "RUNS", "WKTS", "4s", "6s", "ECON")
	for _, p := range bowlers {
		table.Append(
			p.Team,
			p.Name,
			strconv.Itoa(p.BallsDelivered),
			strconv.Itoa(p.RunsConceded),
			strconv.Itoa(p.Wickets),
			strconv.Itoa(p.FoursConceded),
			strconv.Itoa(p.SixesConceded),
			fmt.Sprintf("%.2f", p.Economy()),
		)
	}
	table.Render()
}
