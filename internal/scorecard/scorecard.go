// Package scorecard defines the raw ball-by-ball match record schema and
// decodes one JSON scorecard file into it. The structure is heavy on
// optional fields; anything that may be absent is a pointer or a slice so
// downstream code can distinguish "missing" from a zero value.
package scorecard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Label decodes a JSON value that may arrive as a string or a number.
// Season labels are the usual offender: "2020/21" in some records, a bare
// 2015 in others.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Label(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n == float64(int64(n)) {
			*l = Label(fmt.Sprintf("%d", int64(n)))
		} else {
			*l = Label(fmt.Sprintf("%g", n))
		}
		return nil
	}
	return fmt.Errorf("label is neither string nor number: %s", data)
}

// Match is one raw match record.
type Match struct {
	Info    Info      `json:"info"`
	Innings []Innings `json:"innings"`
}

// Info carries the per-match metadata block.
type Info struct {
	Season   Label               `json:"season"`
	Event    Event               `json:"event"`
	City     *string             `json:"city"`
	Dates    []string            `json:"dates"`
	Outcome  Outcome             `json:"outcome"`
	Teams    []string            `json:"teams"`
	Players  map[string][]string `json:"players"` // squad name lists keyed by team
	Registry Registry            `json:"registry"`
}

// Event identifies the match within its competition: a numeric match
// number for league games, a stage label for knockouts.
type Event struct {
	Name        string `json:"name"`
	MatchNumber *int   `json:"match_number"`
	Stage       string `json:"stage"`
}

// Outcome is the declared result. Winner and Result are mutually
// exclusive; Eliminator names the winner of a knockout tiebreak.
type Outcome struct {
	Winner     *string `json:"winner"`
	Result     *string `json:"result"` // "tie", "no result"
	Eliminator *string `json:"eliminator"`
}

// Registry maps every in-record player name to its canonical identifier.
type Registry struct {
	People map[string]string `json:"people"`
}

// Innings is one team's turn at bat.
type Innings struct {
	Team   string  `json:"team"`
	Overs  []Over  `json:"overs"`
	Target *Target `json:"target"` // present on the chasing innings
}

// Target is the chase target set for a second innings.
type Target struct {
	Overs float64 `json:"overs"`
	Runs  int     `json:"runs"`
}

// Over is one over's deliveries in bowling order.
type Over struct {
	Over       int        `json:"over"` // 0-indexed
	Deliveries []Delivery `json:"deliveries"`
}

// Delivery is one ball as recorded. Wickets and Extras are optional;
// Extras being a pointer matters: a present-but-all-zero extras object is
// distinct from no extras object at all, and the extractor preserves that.
type Delivery struct {
	Batter     string   `json:"batter"`
	Bowler     string   `json:"bowler"`
	NonStriker string   `json:"non_striker"`
	Runs       Runs     `json:"runs"`
	Wickets    []Wicket `json:"wickets"`
	Extras     *Extras  `json:"extras"`
}

// Runs is the runs breakdown for one ball.
type Runs struct {
	Batter int `json:"batter"`
	Extras int `json:"extras"`
	Total  int `json:"total"`
}

// Wicket is one dismissal entry on a delivery.
type Wicket struct {
	Kind      string    `json:"kind"`
	PlayerOut string    `json:"player_out"`
	Fielders  []Fielder `json:"fielders"`
}

// Fielder is one credited fielder on a dismissal.
type Fielder struct {
	Name       string `json:"name"`
	Substitute bool   `json:"substitute"`
}

// Extras is the extras breakdown; absent sub-fields decode to zero.
type Extras struct {
	Byes    int `json:"byes"`
	Legbyes int `json:"legbyes"`
	Noballs int `json:"noballs"`
	Penalty int `json:"penalty"`
	Wides   int `json:"wides"`
}

// Read decodes one match record from r.
func Read(r io.Reader) (*Match, error) {
	var m Match
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode scorecard: %w", err)
	}
	return &m, nil
}

// ReadFile decodes the match record at path.
func ReadFile(path string) (*Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scorecard: %w", err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
