// Package storage persists the pipeline's relations into SQLite. Writes
// follow the pipeline's all-or-nothing model: one call replaces every
// table's contents inside a single transaction, and an ingest-run ledger
// row records each replacement.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cricbase/cricstats/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB for the cricket relations store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and
// applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// IngestRun is one ledger entry recording a table replacement.
type IngestRun struct {
	ID         string
	StartedAt  time.Time
	SourceDir  string
	MatchCount int
}

// ReplaceAll replaces the contents of every relation with the given
// tables and records the ingest run, all in one transaction. Prior
// contents are dropped entirely; there is no incremental path.
func (db *DB) ReplaceAll(t *model.Tables, run IngestRun) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{
		"matches", "players", "player_matches", "deliveries",
		"wickets", "extras", "fielder_wickets",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertMatches(tx, t.Matches); err != nil {
		return err
	}
	if err := insertPlayers(tx, t.Players); err != nil {
		return err
	}
	if err := insertPlayerMatches(tx, t.PlayerMatches); err != nil {
		return err
	}
	if err := insertDeliveries(tx, t.Deliveries); err != nil {
		return err
	}
	if err := insertWickets(tx, t.Wickets); err != nil {
		return err
	}
	if err := insertExtras(tx, t.Extras); err != nil {
		return err
	}
	if err := insertFielderWickets(tx, t.FielderWickets); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO ingest_runs(id, started_at, source_dir, match_count)
		VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.SourceDir, run.MatchCount,
	); err != nil {
		return fmt.Errorf("record ingest run: %w", err)
	}
	return tx.Commit()
}

func insertMatches(tx *sql.Tx, matches []model.Match) error {
	stmt, err := tx.Prepare(`
		INSERT INTO matches(
			season, match_id, city, start_date, winner, eliminator,
			team_a, team_b, team_batting_first, team_chasing,
			target_overs, target_runs
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		_, err = stmt.Exec(
			m.Season, m.MatchID, m.City, m.StartDate, m.Winner, m.Eliminator,
			m.TeamA, m.TeamB, m.TeamBattingFirst, m.TeamChasing,
			m.TargetOvers, m.TargetRuns,
		)
		if err != nil {
			return fmt.Errorf("insert match %s/%s: %w", m.Season, m.MatchID, err)
		}
	}
	return nil
}

func insertPlayers(tx *sql.Tx, players []model.Player) error {
	stmt, err := tx.Prepare(`
		INSERT INTO players(id, name, unique_name, key_cricinfo)
		VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.UniqueName, p.CricinfoID); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertPlayerMatches(tx *sql.Tx, rows []model.PlayerMatch) error {
	stmt, err := tx.Prepare(`
		INSERT INTO player_matches(
			season, match_id, player_id, name, team,
			runs_scored, runs_conceded,
			fours_scored, fours_conceded, sixes_scored, sixes_conceded,
			balls_faced, balls_delivered, wickets, out, position
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range rows {
		position := sql.NullInt64{Int64: int64(p.Position), Valid: p.Position > 0}
		_, err = stmt.Exec(
			p.Season, p.MatchID, p.PlayerID, p.Name, p.Team,
			p.RunsScored, p.RunsConceded,
			p.FoursScored, p.FoursConceded, p.SixesScored, p.SixesConceded,
			p.BallsFaced, p.BallsDelivered, p.Wickets, p.Out, position,
		)
		if err != nil {
			return fmt.Errorf("insert player_match %s/%s/%s: %w", p.Season, p.MatchID, p.PlayerID, err)
		}
	}
	return nil
}

func insertDeliveries(tx *sql.Tx, rows []model.Delivery) error {
	stmt, err := tx.Prepare(`
		INSERT INTO deliveries(
			season, match_id, team_batting, "over", number, seq,
			batter_id, bowler_id, non_striker_id,
			batter_runs, extras_runs, total_runs, wicket_count
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range rows {
		_, err = stmt.Exec(
			d.Season, d.MatchID, d.TeamBatting, d.Over, d.Number, d.Seq,
			d.BatterID, d.BowlerID, d.NonStrikerID,
			d.BatterRuns, d.ExtrasRuns, d.TotalRuns, d.WicketCount,
		)
		if err != nil {
			return fmt.Errorf("insert delivery %+v: %w", d.Key(), err)
		}
	}
	return nil
}

func insertWickets(tx *sql.Tx, rows []model.Wicket) error {
	stmt, err := tx.Prepare(`
		INSERT INTO wickets(season, match_id, team_batting, "over", number, player_out_id, kind)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range rows {
		_, err = stmt.Exec(w.Season, w.MatchID, w.TeamBatting, w.Over, w.Number, w.PlayerOutID, w.Kind)
		if err != nil {
			return fmt.Errorf("insert wicket %+v: %w", w.Key(), err)
		}
	}
	return nil
}

func insertExtras(tx *sql.Tx, rows []model.Extra) error {
	stmt, err := tx.Prepare(`
		INSERT INTO extras(season, match_id, team_batting, "over", number, byes, legbyes, noballs, penalty, wides)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range rows {
		_, err = stmt.Exec(e.Season, e.MatchID, e.TeamBatting, e.Over, e.Number,
			e.Byes, e.Legbyes, e.Noballs, e.Penalty, e.Wides)
		if err != nil {
			return fmt.Errorf("insert extra %+v: %w", e.Key(), err)
		}
	}
	return nil
}

func insertFielderWickets(tx *sql.Tx, rows []model.FielderWicket) error {
	stmt, err := tx.Prepare(`
		INSERT INTO fielder_wickets(season, match_id, team_batting, "over", number, fielder_id)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range rows {
		_, err = stmt.Exec(f.Season, f.MatchID, f.TeamBatting, f.Over, f.Number, f.FielderID)
		if err != nil {
			return fmt.Errorf("insert fielder_wicket %s/%s: %w", f.MatchID, f.FielderID, err)
		}
	}
	return nil
}
