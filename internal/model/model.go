// Package model defines the normalized relations produced by the ingestion
// pipeline: one Match row per scorecard, the roster-backed Player relation,
// and the per-ball Delivery/Wicket/Extra/FielderWicket relations from which
// the PlayerMatch statistics are derived.
package model

// MatchKey identifies a match across the whole corpus. MatchID is either
// the numeric match number formatted as a string, or a stage label such as
// "Final". Never both, never empty.
type MatchKey struct {
	Season  string
	MatchID string
}

// DeliveryKey uniquely identifies one ball bowled.
type DeliveryKey struct {
	Season      string
	MatchID     string
	TeamBatting string
	Over        int // 0-indexed
	Number      int // 0-indexed within the over
}

// PlayerMatchKey scopes a derived statistic to one player in one match.
type PlayerMatchKey struct {
	Season   string
	MatchID  string
	PlayerID string
}

// Match holds per-match metadata. Optional attributes are nil when the
// source record omits them, never a sentinel string.
type Match struct {
	Season  string
	MatchID string

	City       *string
	StartDate  *string // first listed date, YYYY-MM-DD
	Winner     *string // declared winner, else textual result ("tie", "no result")
	Eliminator *string // winner of a knockout tiebreak, when one was played

	TeamA string
	TeamB string

	TeamBattingFirst *string
	TeamChasing      *string
	TargetOvers      *float64
	TargetRuns       *int
}

// Key returns the composite match key.
func (m Match) Key() MatchKey { return MatchKey{m.Season, m.MatchID} }

// Player is one row of the external roster, passed through unchanged.
type Player struct {
	ID         string // canonical identifier used by every other relation
	Name       string
	UniqueName string
	CricinfoID string
}

// PlayerMatch is one row per (player, match) pair where the player appears
// in either squad, enriched by the aggregation stage with the derived
// statistic columns. Position is 1-indexed batting order; 0 means the
// player never came to the crease.
type PlayerMatch struct {
	Season   string
	MatchID  string
	PlayerID string
	Name     string
	Team     string

	RunsScored     int
	RunsConceded   int
	FoursScored    int
	FoursConceded  int
	SixesScored    int
	SixesConceded  int
	BallsFaced     int
	BallsDelivered int
	Wickets        int
	Out            int // 1 if dismissed in this match
	Position       int
}

// Key returns the composite player-match key.
func (p PlayerMatch) Key() PlayerMatchKey {
	return PlayerMatchKey{p.Season, p.MatchID, p.PlayerID}
}

// StrikeRate returns runs scored per 100 balls faced.
func (p *PlayerMatch) StrikeRate() float64 {
	if p.BallsFaced == 0 {
		return 0
	}
	return float64(p.RunsScored) / float64(p.BallsFaced) * 100
}

// Economy returns runs conceded per over of six legal balls.
func (p *PlayerMatch) Economy() float64 {
	if p.BallsDelivered == 0 {
		return 0
	}
	return float64(p.RunsConceded) / (float64(p.BallsDelivered) / 6.0)
}

// Delivery is one ball bowled, legal or not. Seq is the 0-indexed position
// of the ball within its match in strict chronological order (innings,
// then over, then ball); batting positions are derived from it, so it is
// carried explicitly rather than left to container ordering.
type Delivery struct {
	Season      string
	MatchID     string
	TeamBatting string
	Over        int
	Number      int
	Seq         int

	BatterID     string
	BowlerID     string
	NonStrikerID string

	BatterRuns  int
	ExtrasRuns  int
	TotalRuns   int
	WicketCount int // dismissals on this ball: 0, 1, or rarely 2
}

// Key returns the composite delivery key.
func (d Delivery) Key() DeliveryKey {
	return DeliveryKey{d.Season, d.MatchID, d.TeamBatting, d.Over, d.Number}
}

// Wicket is one dismissal. A single delivery may carry more than one.
type Wicket struct {
	Season      string
	MatchID     string
	TeamBatting string
	Over        int
	Number      int

	PlayerOutID string
	Kind        string // e.g. "caught", "bowled", "run out"
}

// Key returns the key of the parent delivery.
func (w Wicket) Key() DeliveryKey {
	return DeliveryKey{w.Season, w.MatchID, w.TeamBatting, w.Over, w.Number}
}

// Extra records the extras breakdown for a delivery. At most one row per
// delivery; a row exists whenever the source delivery carried an extras
// container, even if every sub-field is zero.
type Extra struct {
	Season      string
	MatchID     string
	TeamBatting string
	Over        int
	Number      int

	Byes    int
	Legbyes int
	Noballs int
	Penalty int
	Wides   int
}

// Key returns the key of the parent delivery.
func (e Extra) Key() DeliveryKey {
	return DeliveryKey{e.Season, e.MatchID, e.TeamBatting, e.Over, e.Number}
}

// FielderWicket credits one fielder on a dismissal. A run out may credit
// several fielders; a bowled dismissal credits none.
type FielderWicket struct {
	Season      string
	MatchID     string
	TeamBatting string
	Over        int
	Number      int

	FielderID string
}

// Tables bundles the seven finalized relations of one pipeline run.
type Tables struct {
	Matches        []Match
	Players        []Player
	PlayerMatches  []PlayerMatch
	Deliveries     []Delivery
	Wickets        []Wicket
	Extras         []Extra
	FielderWickets []FielderWicket
}
