package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cricbase/cricstats/internal/model"
)

const matchColumns = `season, match_id, city, start_date, winner, eliminator,
	team_a, team_b, team_batting_first, team_chasing, target_overs, target_runs`

func scanMatch(scan func(...any) error) (model.Match, error) {
	var m model.Match
	err := scan(
		&m.Season, &m.MatchID, &m.City, &m.StartDate, &m.Winner, &m.Eliminator,
		&m.TeamA, &m.TeamB, &m.TeamBattingFirst, &m.TeamChasing,
		&m.TargetOvers, &m.TargetRuns,
	)
	return m, err
}

// ListMatches returns all stored matches ordered by season and start date.
func (db *DB) ListMatches() ([]model.Match, error) {
	rows, err := db.conn.Query(`
		SELECT ` + matchColumns + `
		FROM matches ORDER BY season, start_date, match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatch returns the match with the given key, or nil if none is stored.
func (db *DB) GetMatch(season, matchID string) (*model.Match, error) {
	row := db.conn.QueryRow(`
		SELECT `+matchColumns+`
		FROM matches WHERE season = ? AND match_id = ?`, season, matchID)
	m, err := scanMatch(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const playerMatchColumns = `season, match_id, player_id, name, team,
	runs_scored, runs_conceded,
	fours_scored, fours_conceded, sixes_scored, sixes_conceded,
	balls_faced, balls_delivered, wickets, out, position`

func scanPlayerMatches(rows *sql.Rows) ([]model.PlayerMatch, error) {
	var out []model.PlayerMatch
	for rows.Next() {
		var p model.PlayerMatch
		var position sql.NullInt64
		err := rows.Scan(
			&p.Season, &p.MatchID, &p.PlayerID, &p.Name, &p.Team,
			&p.RunsScored, &p.RunsConceded,
			&p.FoursScored, &p.FoursConceded, &p.SixesScored, &p.SixesConceded,
			&p.BallsFaced, &p.BallsDelivered, &p.Wickets, &p.Out, &position,
		)
		if err != nil {
			return nil, err
		}
		if position.Valid {
			p.Position = int(position.Int64)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetScorecard returns the enriched player rows for one match, batters in
// batting order first, then the rest of each squad.
func (db *DB) GetScorecard(season, matchID string) ([]model.PlayerMatch, error) {
	rows, err := db.conn.Query(`
		SELECT `+playerMatchColumns+`
		FROM player_matches
		WHERE season = ? AND match_id = ?
		ORDER BY team, position IS NULL, position, name`, season, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayerMatches(rows)
}

// LastRun returns the most recent ingest-run ledger entry, or nil when the
// store has never been built.
func (db *DB) LastRun() (*IngestRun, error) {
	var run IngestRun
	var startedAt string
	err := db.conn.QueryRow(`
		SELECT id, started_at, source_dir, match_count
		FROM ingest_runs ORDER BY started_at DESC LIMIT 1`).
		Scan(&run.ID, &startedAt, &run.SourceDir, &run.MatchCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse run timestamp: %w", err)
	}
	return &run, nil
}

// AllPlayers returns the roster pass-through table.
func (db *DB) AllPlayers() ([]model.Player, error) {
	rows, err := db.conn.Query(`SELECT id, name, unique_name, key_cricinfo FROM players ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.UniqueName, &p.CricinfoID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AllPlayerMatches returns every enriched player-match row.
func (db *DB) AllPlayerMatches() ([]model.PlayerMatch, error) {
	rows, err := db.conn.Query(`
		SELECT ` + playerMatchColumns + `
		FROM player_matches ORDER BY season, match_id, team, player_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayerMatches(rows)
}

// AllDeliveries returns every delivery row in chronological order within
// each match.
func (db *DB) AllDeliveries() ([]model.Delivery, error) {
	rows, err := db.conn.Query(`
		SELECT season, match_id, team_batting, "over", number, seq,
		       batter_id, bowler_id, non_striker_id,
		       batter_runs, extras_runs, total_runs, wicket_count
		FROM deliveries ORDER BY season, match_id, seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		err := rows.Scan(
			&d.Season, &d.MatchID, &d.TeamBatting, &d.Over, &d.Number, &d.Seq,
			&d.BatterID, &d.BowlerID, &d.NonStrikerID,
			&d.BatterRuns, &d.ExtrasRuns, &d.TotalRuns, &d.WicketCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// AllWickets returns every dismissal row.
func (db *DB) AllWickets() ([]model.Wicket, error) {
	rows, err := db.conn.Query(`
		SELECT season, match_id, team_batting, "over", number, player_out_id, kind
		FROM wickets ORDER BY season, match_id, "over", number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Wicket
	for rows.Next() {
		var w model.Wicket
		if err := rows.Scan(&w.Season, &w.MatchID, &w.TeamBatting, &w.Over, &w.Number, &w.PlayerOutID, &w.Kind); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// AllExtras returns every extras row.
func (db *DB) AllExtras() ([]model.Extra, error) {
	rows, err := db.conn.Query(`
		SELECT season, match_id, team_batting, "over", number, byes, legbyes, noballs, penalty, wides
		FROM extras ORDER BY season, match_id, "over", number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Extra
	for rows.Next() {
		var e model.Extra
		err := rows.Scan(&e.Season, &e.MatchID, &e.TeamBatting, &e.Over, &e.Number,
			&e.Byes, &e.Legbyes, &e.Noballs, &e.Penalty, &e.Wides)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AllFielderWickets returns every fielder-credit row.
func (db *DB) AllFielderWickets() ([]model.FielderWicket, error) {
	rows, err := db.conn.Query(`
		SELECT season, match_id, team_batting, "over", number, fielder_id
		FROM fielder_wickets ORDER BY season, match_id, "over", number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FielderWicket
	for rows.Next() {
		var f model.FielderWicket
		if err := rows.Scan(&f.Season, &f.MatchID, &f.TeamBatting, &f.Over, &f.Number, &f.FielderID); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
