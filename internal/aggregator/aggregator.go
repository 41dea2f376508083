// Package aggregator derives the per-player-per-match statistics from the
// completed base relations. Each statistic is computed independently as a
// partial table keyed by (season, match, player), then every partial is
// folded onto the player-match rows in one left-join pass; players who did
// not bat, bowl, or get dismissed keep zero values rather than being
// dropped.
package aggregator

import (
	"fmt"

	"github.com/cricbase/cricstats/internal/model"
)

type key = model.PlayerMatchKey

// Enrich fills the statistic columns of the player-match rows from the
// delivery, wicket, and extra relations. It runs once, after every record
// has been extracted; the inputs are never mutated.
func Enrich(playerMatches []model.PlayerMatch, deliveries []model.Delivery, wickets []model.Wicket, extras []model.Extra) ([]model.PlayerMatch, error) {
	extraByBall := make(map[model.DeliveryKey]model.Extra, len(extras))
	for _, e := range extras {
		extraByBall[e.Key()] = e
	}
	deliveryByBall := make(map[model.DeliveryKey]model.Delivery, len(deliveries))
	for _, d := range deliveries {
		deliveryByBall[d.Key()] = d
	}

	runsScored := sumBatterRuns(deliveries, batter)
	runsConceded := concededRuns(deliveries, extraByBall)
	foursScored := countBoundary(deliveries, batter, 4)
	foursConceded := countBoundary(deliveries, bowler, 4)
	sixesScored := countBoundary(deliveries, batter, 6)
	sixesConceded := countBoundary(deliveries, bowler, 6)
	ballsFaced := legalBallCount(deliveries, extraByBall, batter)
	ballsDelivered := legalBallCount(deliveries, extraByBall, bowler)
	bowlerWickets, err := creditedWickets(wickets, deliveryByBall)
	if err != nil {
		return nil, err
	}
	outFlags := dismissed(wickets)
	positions := battingPositions(deliveries)

	out := make([]model.PlayerMatch, len(playerMatches))
	for i, pm := range playerMatches {
		k := pm.Key()
		pm.RunsScored = runsScored[k]
		pm.RunsConceded = runsConceded[k]
		pm.FoursScored = foursScored[k]
		pm.FoursConceded = foursConceded[k]
		pm.SixesScored = sixesScored[k]
		pm.SixesConceded = sixesConceded[k]
		pm.BallsFaced = ballsFaced[k]
		pm.BallsDelivered = ballsDelivered[k]
		pm.Wickets = bowlerWickets[k]
		pm.Out = outFlags[k]
		pm.Position = positions[k] // 0 when the player never batted
		out[i] = pm
	}
	return out, nil
}

// role selects which participant of a delivery a statistic is keyed by.
type role func(model.Delivery) string

func batter(d model.Delivery) string { return d.BatterID }
func bowler(d model.Delivery) string { return d.BowlerID }

func sumBatterRuns(deliveries []model.Delivery, by role) map[key]int {
	out := make(map[key]int)
	for _, d := range deliveries {
		out[key{Season: d.Season, MatchID: d.MatchID, PlayerID: by(d)}] += d.BatterRuns
	}
	return out
}

// concededRuns charges each bowler with the runs off the bat plus wides
// and no-balls from their deliveries. Byes, leg-byes, and penalty runs are
// not charged against the bowler by convention.
func concededRuns(deliveries []model.Delivery, extraByBall map[model.DeliveryKey]model.Extra) map[key]int {
	out := make(map[key]int)
	for _, d := range deliveries {
		k := key{Season: d.Season, MatchID: d.MatchID, PlayerID: d.BowlerID}
		out[k] += d.BatterRuns
		if e, ok := extraByBall[d.Key()]; ok {
			out[k] += e.Wides + e.Noballs
		}
	}
	return out
}

func countBoundary(deliveries []model.Delivery, by role, runs int) map[key]int {
	out := make(map[key]int)
	for _, d := range deliveries {
		if d.BatterRuns == runs {
			out[key{Season: d.Season, MatchID: d.MatchID, PlayerID: by(d)}]++
		}
	}
	return out
}

// legalBallCount counts deliveries per player, excluding wides and
// no-balls: an illegal ball is bowled again and counts as neither a ball
// faced nor a ball delivered.
func legalBallCount(deliveries []model.Delivery, extraByBall map[model.DeliveryKey]model.Extra, by role) map[key]int {
	out := make(map[key]int)
	for _, d := range deliveries {
		if e, ok := extraByBall[d.Key()]; ok && (e.Wides > 0 || e.Noballs > 0) {
			continue
		}
		out[key{Season: d.Season, MatchID: d.MatchID, PlayerID: by(d)}]++
	}
	return out
}

// creditedWickets counts dismissals per bowler, excluding run outs, which
// are never credited to the bowler. The bowler is recovered by joining
// each wicket back to its parent delivery; a wicket without one means the
// base relations are inconsistent and the run fails.
func creditedWickets(wickets []model.Wicket, deliveryByBall map[model.DeliveryKey]model.Delivery) (map[key]int, error) {
	out := make(map[key]int)
	for _, w := range wickets {
		if w.Kind == "run out" {
			continue
		}
		d, ok := deliveryByBall[w.Key()]
		if !ok {
			return nil, fmt.Errorf("wicket %+v has no parent delivery", w.Key())
		}
		out[key{Season: w.Season, MatchID: w.MatchID, PlayerID: d.BowlerID}]++
	}
	return out, nil
}

func dismissed(wickets []model.Wicket) map[key]int {
	out := make(map[key]int)
	for _, w := range wickets {
		out[key{Season: w.Season, MatchID: w.MatchID, PlayerID: w.PlayerOutID}] = 1
	}
	return out
}

// battingPositions numbers each team's batters by first appearance at the
// crease. For every delivery in chronological order the striker is
// considered before the non-striker, and both count as appearances: a
// non-striker run out before facing a single ball still holds a position.
func battingPositions(deliveries []model.Delivery) map[key]int {
	type inningsKey struct {
		season, matchID, team string
	}
	next := make(map[inningsKey]int)
	out := make(map[key]int)
	for _, d := range deliveries {
		ik := inningsKey{d.Season, d.MatchID, d.TeamBatting}
		for _, playerID := range [2]string{d.BatterID, d.NonStrikerID} {
			k := key{Season: d.Season, MatchID: d.MatchID, PlayerID: playerID}
			if _, seen := out[k]; seen {
				continue
			}
			next[ik]++
			out[k] = next[ik]
		}
	}
	return out
}
