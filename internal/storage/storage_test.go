package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cricbase/cricstats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func strp(v string) *string { return &v }

func sampleTables() *model.Tables {
	return &model.Tables{
		Matches: []model.Match{
			{Season: "2021", MatchID: "1", City: strp("Chennai"), StartDate: strp("2021-04-09"),
				Winner: strp("Alpha"), TeamA: "Alpha", TeamB: "Beta"},
			{Season: "2021", MatchID: "Final", TeamA: "Alpha", TeamB: "Beta"},
		},
		Players: []model.Player{
			{ID: "a1", Name: "A One", UniqueName: "A One", CricinfoID: "100"},
			{ID: "b1", Name: "B One"},
		},
		PlayerMatches: []model.PlayerMatch{
			{Season: "2021", MatchID: "1", PlayerID: "a1", Name: "A One", Team: "Alpha",
				RunsScored: 34, BallsFaced: 20, FoursScored: 4, Out: 1, Position: 1},
			{Season: "2021", MatchID: "1", PlayerID: "b1", Name: "B One", Team: "Beta",
				RunsConceded: 34, BallsDelivered: 24, Wickets: 1}, // never batted: position NULL
		},
		Deliveries: []model.Delivery{
			{Season: "2021", MatchID: "1", TeamBatting: "Alpha", Over: 0, Number: 0, Seq: 0,
				BatterID: "a1", BowlerID: "b1", NonStrikerID: "a2", BatterRuns: 4, TotalRuns: 4},
		},
		Wickets: []model.Wicket{
			{Season: "2021", MatchID: "1", TeamBatting: "Alpha", Over: 0, Number: 0,
				PlayerOutID: "a1", Kind: "caught"},
		},
		Extras: []model.Extra{
			{Season: "2021", MatchID: "1", TeamBatting: "Alpha", Over: 0, Number: 0, Wides: 1},
		},
		FielderWickets: []model.FielderWicket{
			{Season: "2021", MatchID: "1", TeamBatting: "Alpha", Over: 0, Number: 0, FielderID: "b1"},
		},
	}
}

func run(dir string, matches int) IngestRun {
	return IngestRun{ID: uuid.NewString(), StartedAt: time.Now(), SourceDir: dir, MatchCount: matches}
}

func TestReplaceAllRoundTrip(t *testing.T) {
	db := openMemDB(t)
	if err := db.ReplaceAll(sampleTables(), run("/data", 2)); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("want 2 matches, got %d", len(matches))
	}

	m, err := db.GetMatch("2021", "1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if m == nil {
		t.Fatal("match 2021/1 not found")
	}
	if m.City == nil || *m.City != "Chennai" {
		t.Errorf("city: got %v", m.City)
	}
	if m.Eliminator != nil {
		t.Errorf("absent eliminator must scan as nil, got %v", *m.Eliminator)
	}

	final, err := db.GetMatch("2021", "Final")
	if err != nil {
		t.Fatalf("GetMatch final: %v", err)
	}
	if final == nil || final.City != nil || final.Winner != nil {
		t.Errorf("stage-keyed match with absent optionals: %+v", final)
	}

	missing, err := db.GetMatch("2021", "99")
	if err != nil {
		t.Fatalf("GetMatch missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown match")
	}
}

func TestScorecardPositionNull(t *testing.T) {
	db := openMemDB(t)
	if err := db.ReplaceAll(sampleTables(), run("/data", 2)); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	card, err := db.GetScorecard("2021", "1")
	if err != nil {
		t.Fatalf("GetScorecard: %v", err)
	}
	if len(card) != 2 {
		t.Fatalf("want 2 scorecard rows, got %d", len(card))
	}
	for _, p := range card {
		switch p.PlayerID {
		case "a1":
			if p.Position != 1 || p.RunsScored != 34 {
				t.Errorf("a1 row: %+v", p)
			}
		case "b1":
			if p.Position != 0 {
				t.Errorf("NULL position must read back as 0, got %d", p.Position)
			}
			if p.Wickets != 1 || p.RunsConceded != 34 {
				t.Errorf("b1 row: %+v", p)
			}
		}
	}
}

func TestReplaceAllDropsPriorContents(t *testing.T) {
	db := openMemDB(t)
	if err := db.ReplaceAll(sampleTables(), run("/data", 2)); err != nil {
		t.Fatalf("first ReplaceAll: %v", err)
	}

	smaller := &model.Tables{
		Matches: []model.Match{{Season: "2022", MatchID: "1", TeamA: "Alpha", TeamB: "Beta"}},
	}
	if err := db.ReplaceAll(smaller, run("/data2", 1)); err != nil {
		t.Fatalf("second ReplaceAll: %v", err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 1 || matches[0].Season != "2022" {
		t.Errorf("replace must drop prior rows: %+v", matches)
	}
	players, err := db.AllPlayers()
	if err != nil {
		t.Fatalf("AllPlayers: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("players must be cleared too, got %d", len(players))
	}
}

func TestDumpTables(t *testing.T) {
	db := openMemDB(t)
	if err := db.ReplaceAll(sampleTables(), run("/data", 2)); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	deliveries, err := db.AllDeliveries()
	if err != nil {
		t.Fatalf("AllDeliveries: %v", err)
	}
	if len(deliveries) != 1 || deliveries[0].BatterRuns != 4 {
		t.Errorf("deliveries dump: %+v", deliveries)
	}
	wickets, err := db.AllWickets()
	if err != nil {
		t.Fatalf("AllWickets: %v", err)
	}
	if len(wickets) != 1 || wickets[0].Kind != "caught" {
		t.Errorf("wickets dump: %+v", wickets)
	}
	extras, err := db.AllExtras()
	if err != nil {
		t.Fatalf("AllExtras: %v", err)
	}
	if len(extras) != 1 || extras[0].Wides != 1 {
		t.Errorf("extras dump: %+v", extras)
	}
	fielders, err := db.AllFielderWickets()
	if err != nil {
		t.Fatalf("AllFielderWickets: %v", err)
	}
	if len(fielders) != 1 || fielders[0].FielderID != "b1" {
		t.Errorf("fielder dump: %+v", fielders)
	}
	pms, err := db.AllPlayerMatches()
	if err != nil {
		t.Fatalf("AllPlayerMatches: %v", err)
	}
	if len(pms) != 2 {
		t.Errorf("player-match dump: want 2 rows, got %d", len(pms))
	}
}

func TestLastRunLedger(t *testing.T) {
	db := openMemDB(t)

	none, err := db.LastRun()
	if err != nil {
		t.Fatalf("LastRun on empty store: %v", err)
	}
	if none != nil {
		t.Error("expected nil run before any build")
	}

	first := run("/old", 1)
	first.StartedAt = time.Now().Add(-time.Hour)
	if err := db.ReplaceAll(&model.Tables{}, first); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	second := run("/new", 5)
	if err := db.ReplaceAll(&model.Tables{}, second); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	last, err := db.LastRun()
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last == nil || last.ID != second.ID || last.SourceDir != "/new" || last.MatchCount != 5 {
		t.Errorf("last run: %+v", last)
	}
}
