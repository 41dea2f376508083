package extract

import (
	"errors"
	"testing"

	"github.com/cricbase/cricstats/internal/scorecard"
)

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

// makeRecord builds a minimal two-team record with a registry covering the
// four squad players plus one umpire.
func makeRecord() *scorecard.Match {
	return &scorecard.Match{
		Info: scorecard.Info{
			Season: "2021",
			Event:  scorecard.Event{MatchNumber: intp(7)},
			Teams:  []string{"Alpha XI", "Beta XI"},
			Players: map[string][]string{
				"Alpha XI": {"A One", "A Two"},
				"Beta XI":  {"B One", "B Two"},
			},
			Registry: scorecard.Registry{People: map[string]string{
				"A One": "a1", "A Two": "a2",
				"B One": "b1", "B Two": "b2",
				"Umpire U": "u1",
			}},
		},
	}
}

// ball is a shorthand delivery constructor for extraction tests.
func ball(batter, bowler, nonStriker string, batterRuns, extrasRuns int) scorecard.Delivery {
	return scorecard.Delivery{
		Batter:     batter,
		Bowler:     bowler,
		NonStriker: nonStriker,
		Runs:       scorecard.Runs{Batter: batterRuns, Extras: extrasRuns, Total: batterRuns + extrasRuns},
	}
}

func TestMatchKeyPrefersMatchNumber(t *testing.T) {
	rec := makeRecord()
	rec.Info.Event.Stage = "Final" // should lose to the numeric match number

	key, err := MatchKey(rec)
	if err != nil {
		t.Fatalf("MatchKey: %v", err)
	}
	if key.Season != "2021" || key.MatchID != "7" {
		t.Errorf("got key %+v", key)
	}
}

func TestMatchKeyFallsBackToStage(t *testing.T) {
	rec := makeRecord()
	rec.Info.Event.MatchNumber = nil
	rec.Info.Event.Stage = "Qualifier 1"

	key, err := MatchKey(rec)
	if err != nil {
		t.Fatalf("MatchKey: %v", err)
	}
	if key.MatchID != "Qualifier 1" {
		t.Errorf("want stage label, got %q", key.MatchID)
	}
}

func TestMatchKeyErrors(t *testing.T) {
	rec := makeRecord()
	rec.Info.Event = scorecard.Event{}
	if _, err := MatchKey(rec); !errors.Is(err, ErrMissingMatchIdentifier) {
		t.Errorf("want ErrMissingMatchIdentifier, got %v", err)
	}

	rec = makeRecord()
	rec.Info.Season = ""
	if _, err := MatchKey(rec); !errors.Is(err, ErrMissingSeason) {
		t.Errorf("want ErrMissingSeason, got %v", err)
	}
}

func TestMatchRowOptionalFields(t *testing.T) {
	rec := makeRecord()
	rec.Info.City = strp("Chennai")
	rec.Info.Dates = []string{"2021-04-01", "2021-04-02"}
	rec.Info.Outcome.Winner = strp("Alpha XI")
	rec.Innings = []scorecard.Innings{
		{Team: "Beta XI"},
		{Team: "Alpha XI", Target: &scorecard.Target{Overs: 20, Runs: 163}},
	}

	m, err := MatchRow(rec)
	if err != nil {
		t.Fatalf("MatchRow: %v", err)
	}
	if m.TeamA != "Alpha XI" || m.TeamB != "Beta XI" {
		t.Errorf("teams in record order: got %q, %q", m.TeamA, m.TeamB)
	}
	if m.StartDate == nil || *m.StartDate != "2021-04-01" {
		t.Errorf("start date: got %v", m.StartDate)
	}
	if m.Winner == nil || *m.Winner != "Alpha XI" {
		t.Errorf("winner: got %v", m.Winner)
	}
	if m.TeamBattingFirst == nil || *m.TeamBattingFirst != "Beta XI" {
		t.Errorf("batting first: got %v", m.TeamBattingFirst)
	}
	if m.TargetRuns == nil || *m.TargetRuns != 163 {
		t.Errorf("target runs: got %v", m.TargetRuns)
	}
}

func TestMatchRowAbsentOptionalsStayNil(t *testing.T) {
	rec := makeRecord()
	rec.Info.Outcome.Result = strp("no result")

	m, err := MatchRow(rec)
	if err != nil {
		t.Fatalf("MatchRow: %v", err)
	}
	if m.City != nil || m.StartDate != nil || m.Eliminator != nil {
		t.Errorf("absent optionals must stay nil: %+v", m)
	}
	// No declared winner: the textual result stands in.
	if m.Winner == nil || *m.Winner != "no result" {
		t.Errorf("winner fallback: got %v", m.Winner)
	}
}

func TestPlayerMatchesSkipsOfficials(t *testing.T) {
	pms, err := PlayerMatches(makeRecord())
	if err != nil {
		t.Fatalf("PlayerMatches: %v", err)
	}
	if len(pms) != 4 {
		t.Fatalf("want 4 squad rows (umpire excluded), got %d", len(pms))
	}
	for _, pm := range pms {
		if pm.PlayerID == "u1" {
			t.Error("umpire must not get a player-match row")
		}
		want := "Alpha XI"
		if pm.PlayerID[0] == 'b' {
			want = "Beta XI"
		}
		if pm.Team != want {
			t.Errorf("player %s: team %q, want %q", pm.PlayerID, pm.Team, want)
		}
	}
}

func TestPlayerMatchesAmbiguousSquadFails(t *testing.T) {
	rec := makeRecord()
	rec.Info.Players["Beta XI"] = append(rec.Info.Players["Beta XI"], "A One")

	_, err := PlayerMatches(rec)
	var ambErr *AmbiguousSquadError
	if !errors.As(err, &ambErr) {
		t.Fatalf("want AmbiguousSquadError, got %v", err)
	}
	if ambErr.Name != "A One" {
		t.Errorf("ambiguous name: got %q", ambErr.Name)
	}
}

func TestDeliveryRowsOrderingAndSeq(t *testing.T) {
	rec := makeRecord()
	rec.Innings = []scorecard.Innings{
		{Team: "Alpha XI", Overs: []scorecard.Over{
			{Over: 0, Deliveries: []scorecard.Delivery{
				ball("A One", "B One", "A Two", 0, 0),
				ball("A One", "B One", "A Two", 4, 0),
			}},
			{Over: 1, Deliveries: []scorecard.Delivery{
				ball("A Two", "B Two", "A One", 1, 0),
			}},
		}},
		{Team: "Beta XI", Overs: []scorecard.Over{
			{Over: 0, Deliveries: []scorecard.Delivery{
				ball("B One", "A One", "B Two", 6, 0),
			}},
		}},
	}

	deliveries, _, _, _, err := DeliveryRows(rec)
	if err != nil {
		t.Fatalf("DeliveryRows: %v", err)
	}
	if len(deliveries) != 4 {
		t.Fatalf("want 4 deliveries, got %d", len(deliveries))
	}
	for i, d := range deliveries {
		if d.Seq != i {
			t.Errorf("delivery %d: seq %d", i, d.Seq)
		}
	}
	if deliveries[2].Over != 1 || deliveries[2].Number != 0 {
		t.Errorf("third ball: over %d number %d", deliveries[2].Over, deliveries[2].Number)
	}
	if deliveries[3].TeamBatting != "Beta XI" {
		t.Errorf("second innings team: got %q", deliveries[3].TeamBatting)
	}
	if deliveries[1].BatterRuns != 4 || deliveries[1].TotalRuns != 4 {
		t.Errorf("boundary ball runs: %+v", deliveries[1])
	}
}

func TestDeliveryRowsSkipsSuperOver(t *testing.T) {
	rec := makeRecord()
	inn := scorecard.Innings{Team: "Alpha XI", Overs: []scorecard.Over{
		{Over: 0, Deliveries: []scorecard.Delivery{ball("A One", "B One", "A Two", 1, 0)}},
	}}
	rec.Innings = []scorecard.Innings{inn, inn, inn} // third is a super over

	deliveries, _, _, _, err := DeliveryRows(rec)
	if err != nil {
		t.Fatalf("DeliveryRows: %v", err)
	}
	if len(deliveries) != 2 {
		t.Errorf("super-over deliveries must be skipped: got %d rows", len(deliveries))
	}
}

func TestDeliveryRowsExtrasPresenceGatesRow(t *testing.T) {
	withExtras := ball("A One", "B One", "A Two", 0, 0)
	withExtras.Extras = &scorecard.Extras{} // present but all zero

	rec := makeRecord()
	rec.Innings = []scorecard.Innings{
		{Team: "Alpha XI", Overs: []scorecard.Over{
			{Over: 0, Deliveries: []scorecard.Delivery{
				ball("A One", "B One", "A Two", 0, 0), // no container, no row
				withExtras,                            // container present, row
			}},
		}},
	}

	_, _, extras, _, err := DeliveryRows(rec)
	if err != nil {
		t.Fatalf("DeliveryRows: %v", err)
	}
	if len(extras) != 1 {
		t.Fatalf("want exactly 1 extra row, got %d", len(extras))
	}
	if extras[0].Number != 1 {
		t.Errorf("extra row attached to wrong ball: %+v", extras[0])
	}
}

func TestDeliveryRowsWicketsAndFielders(t *testing.T) {
	runOut := ball("A One", "B One", "A Two", 0, 0)
	runOut.Wickets = []scorecard.Wicket{{
		Kind:      "run out",
		PlayerOut: "A Two",
		Fielders:  []scorecard.Fielder{{Name: "B One"}, {Name: "B Two"}},
	}}

	rec := makeRecord()
	rec.Innings = []scorecard.Innings{
		{Team: "Alpha XI", Overs: []scorecard.Over{
			{Over: 0, Deliveries: []scorecard.Delivery{runOut}},
		}},
	}

	deliveries, wickets, _, fielders, err := DeliveryRows(rec)
	if err != nil {
		t.Fatalf("DeliveryRows: %v", err)
	}
	if deliveries[0].WicketCount != 1 {
		t.Errorf("wicket count: got %d", deliveries[0].WicketCount)
	}
	if len(wickets) != 1 || wickets[0].PlayerOutID != "a2" || wickets[0].Kind != "run out" {
		t.Errorf("wicket row: %+v", wickets)
	}
	if len(fielders) != 2 {
		t.Fatalf("want 2 fielder rows, got %d", len(fielders))
	}
	if fielders[0].FielderID != "b1" || fielders[1].FielderID != "b2" {
		t.Errorf("fielder ids: %+v", fielders)
	}
	if wickets[0].Key() != deliveries[0].Key() {
		t.Error("wicket must reference its parent delivery key")
	}
}

func TestDeliveryRowsUnresolvedIdentity(t *testing.T) {
	rec := makeRecord()
	rec.Innings = []scorecard.Innings{
		{Team: "Alpha XI", Overs: []scorecard.Over{
			{Over: 0, Deliveries: []scorecard.Delivery{
				ball("Nobody", "B One", "A Two", 0, 0),
			}},
		}},
	}

	_, _, _, _, err := DeliveryRows(rec)
	var idErr *UnresolvedIdentityError
	if !errors.As(err, &idErr) {
		t.Fatalf("want UnresolvedIdentityError, got %v", err)
	}
	if idErr.Name != "Nobody" {
		t.Errorf("unresolved name: got %q", idErr.Name)
	}
}
