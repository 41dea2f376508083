// Package extract flattens raw scorecard records into the normalized
// relations: the match catalog row, the squad-derived player-match rows,
// and the per-ball delivery, wicket, extra, and fielder-wicket rows.
package extract

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cricbase/cricstats/internal/model"
	"github.com/cricbase/cricstats/internal/scorecard"
)

// MatchKey resolves the composite (season, match identifier) key for a
// record. A numeric match number wins over a stage label.
func MatchKey(rec *scorecard.Match) (model.MatchKey, error) {
	season := string(rec.Info.Season)
	if season == "" {
		return model.MatchKey{}, ErrMissingSeason
	}
	ev := rec.Info.Event
	switch {
	case ev.MatchNumber != nil:
		return model.MatchKey{Season: season, MatchID: strconv.Itoa(*ev.MatchNumber)}, nil
	case ev.Stage != "":
		return model.MatchKey{Season: season, MatchID: ev.Stage}, nil
	default:
		return model.MatchKey{}, ErrMissingMatchIdentifier
	}
}

// MatchRow builds the Match catalog row for one record.
func MatchRow(rec *scorecard.Match) (model.Match, error) {
	key, err := MatchKey(rec)
	if err != nil {
		return model.Match{}, err
	}
	if len(rec.Info.Teams) != 2 {
		return model.Match{}, fmt.Errorf("record lists %d teams, want 2", len(rec.Info.Teams))
	}

	m := model.Match{
		Season:     key.Season,
		MatchID:    key.MatchID,
		City:       rec.Info.City,
		Eliminator: rec.Info.Outcome.Eliminator,
		TeamA:      rec.Info.Teams[0],
		TeamB:      rec.Info.Teams[1],
	}
	if len(rec.Info.Dates) > 0 {
		d := rec.Info.Dates[0]
		m.StartDate = &d
	}
	// Declared winner if there is one, else the textual result descriptor.
	if rec.Info.Outcome.Winner != nil {
		m.Winner = rec.Info.Outcome.Winner
	} else if rec.Info.Outcome.Result != nil {
		m.Winner = rec.Info.Outcome.Result
	}
	if len(rec.Innings) > 0 {
		t := rec.Innings[0].Team
		m.TeamBattingFirst = &t
	}
	if len(rec.Innings) > 1 {
		t := rec.Innings[1].Team
		m.TeamChasing = &t
		if tgt := rec.Innings[1].Target; tgt != nil {
			overs, runs := tgt.Overs, tgt.Runs
			m.TargetOvers = &overs
			m.TargetRuns = &runs
		}
	}
	return m, nil
}

// PlayerMatches links every registry entry that appears in a squad to its
// team for this match. Registry names that appear in no squad (umpires,
// referees) are skipped; a name in both squads fails the run rather than
// silently duplicating rows downstream. Names are processed in sorted
// order so output is reproducible across runs.
func PlayerMatches(rec *scorecard.Match) ([]model.PlayerMatch, error) {
	key, err := MatchKey(rec)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rec.Info.Registry.People))
	for name := range rec.Info.Registry.People {
		names = append(names, name)
	}
	sort.Strings(names)

	// Squad lookups in record-listed team order.
	teams := rec.Info.Teams
	inSquad := func(team, name string) bool {
		for _, n := range rec.Info.Players[team] {
			if n == name {
				return true
			}
		}
		return false
	}

	var out []model.PlayerMatch
	for _, name := range names {
		var found []string
		for _, team := range teams {
			if inSquad(team, name) {
				found = append(found, team)
			}
		}
		switch len(found) {
		case 0:
			continue // official, not a squad member
		case 1:
			out = append(out, model.PlayerMatch{
				Season:   key.Season,
				MatchID:  key.MatchID,
				PlayerID: rec.Info.Registry.People[name],
				Name:     name,
				Team:     found[0],
			})
		default:
			return nil, &AmbiguousSquadError{Name: name, Teams: found}
		}
	}
	return out, nil
}

// DeliveryRows walks the record's innings in strict chronological order
// and emits the four per-ball relations. Only the first two innings are
// processed; super-over innings are skipped. Every name is resolved
// through the record's registry, and an unknown name aborts extraction.
func DeliveryRows(rec *scorecard.Match) ([]model.Delivery, []model.Wicket, []model.Extra, []model.FielderWicket, error) {
	key, err := MatchKey(rec)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	registry := rec.Info.Registry.People
	resolve := func(name string) (string, error) {
		id, ok := registry[name]
		if !ok {
			return "", &UnresolvedIdentityError{Name: name}
		}
		return id, nil
	}

	var (
		deliveries []model.Delivery
		wickets    []model.Wicket
		extras     []model.Extra
		fielders   []model.FielderWicket
		seq        int
	)
	for i, innings := range rec.Innings {
		if i > 1 {
			break
		}
		teamBatting := innings.Team
		for _, over := range innings.Overs {
			for number, ball := range over.Deliveries {
				batterID, err := resolve(ball.Batter)
				if err != nil {
					return nil, nil, nil, nil, err
				}
				bowlerID, err := resolve(ball.Bowler)
				if err != nil {
					return nil, nil, nil, nil, err
				}
				nonStrikerID, err := resolve(ball.NonStriker)
				if err != nil {
					return nil, nil, nil, nil, err
				}

				for _, w := range ball.Wickets {
					playerOutID, err := resolve(w.PlayerOut)
					if err != nil {
						return nil, nil, nil, nil, err
					}
					wickets = append(wickets, model.Wicket{
						Season:      key.Season,
						MatchID:     key.MatchID,
						TeamBatting: teamBatting,
						Over:        over.Over,
						Number:      number,
						PlayerOutID: playerOutID,
						Kind:        w.Kind,
					})
					for _, f := range w.Fielders {
						fielderID, err := resolve(f.Name)
						if err != nil {
							return nil, nil, nil, nil, err
						}
						fielders = append(fielders, model.FielderWicket{
							Season:      key.Season,
							MatchID:     key.MatchID,
							TeamBatting: teamBatting,
							Over:        over.Over,
							Number:      number,
							FielderID:   fielderID,
						})
					}
				}

				// Presence of the extras container gates the row, not a
				// nonzero total.
				if ball.Extras != nil {
					extras = append(extras, model.Extra{
						Season:      key.Season,
						MatchID:     key.MatchID,
						TeamBatting: teamBatting,
						Over:        over.Over,
						Number:      number,
						Byes:        ball.Extras.Byes,
						Legbyes:     ball.Extras.Legbyes,
						Noballs:     ball.Extras.Noballs,
						Penalty:     ball.Extras.Penalty,
						Wides:       ball.Extras.Wides,
					})
				}

				deliveries = append(deliveries, model.Delivery{
					Season:       key.Season,
					MatchID:      key.MatchID,
					TeamBatting:  teamBatting,
					Over:         over.Over,
					Number:       number,
					Seq:          seq,
					BatterID:     batterID,
					BowlerID:     bowlerID,
					NonStrikerID: nonStrikerID,
					BatterRuns:   ball.Runs.Batter,
					ExtrasRuns:   ball.Runs.Extras,
					TotalRuns:    ball.Runs.Total,
					WicketCount:  len(ball.Wickets),
				})
				seq++
			}
		}
	}
	return deliveries, wickets, extras, fielders, nil
}
