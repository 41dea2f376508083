// Package pipeline accumulates extracted rows across match records and
// finalizes them into the seven relations. Relations are built as one
// global concatenation: any extraction error aborts the whole run, since a
// record that contributes no Match row would break every downstream
// assumption.
package pipeline

import (
	"fmt"

	"github.com/cricbase/cricstats/internal/aggregator"
	"github.com/cricbase/cricstats/internal/extract"
	"github.com/cricbase/cricstats/internal/model"
	"github.com/cricbase/cricstats/internal/scorecard"
)

// Builder accepts one record's worth of rows at a time and finalizes into
// an immutable set of tables. A Builder is single-use.
type Builder struct {
	tables model.Tables
	done   bool
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Add extracts one raw record into the base relations. On error the
// builder holds no rows from the failed record; the caller is expected to
// abandon the builder, per the all-or-nothing propagation policy.
func (b *Builder) Add(rec *scorecard.Match) error {
	if b.done {
		return fmt.Errorf("builder already finalized")
	}

	match, err := extract.MatchRow(rec)
	if err != nil {
		return fmt.Errorf("match row: %w", err)
	}
	playerMatches, err := extract.PlayerMatches(rec)
	if err != nil {
		return fmt.Errorf("player matches: %w", err)
	}
	deliveries, wickets, extras, fielders, err := extract.DeliveryRows(rec)
	if err != nil {
		return fmt.Errorf("delivery rows: %w", err)
	}

	b.tables.Matches = append(b.tables.Matches, match)
	b.tables.PlayerMatches = append(b.tables.PlayerMatches, playerMatches...)
	b.tables.Deliveries = append(b.tables.Deliveries, deliveries...)
	b.tables.Wickets = append(b.tables.Wickets, wickets...)
	b.tables.Extras = append(b.tables.Extras, extras...)
	b.tables.FielderWickets = append(b.tables.FielderWickets, fielders...)
	return nil
}

// Finalize attaches the roster pass-through, runs the aggregation stage
// over the completed base relations, and returns the finished tables. The
// builder cannot be reused afterwards.
func (b *Builder) Finalize(roster []model.Player) (*model.Tables, error) {
	if b.done {
		return nil, fmt.Errorf("builder already finalized")
	}
	b.done = true

	enriched, err := aggregator.Enrich(b.tables.PlayerMatches, b.tables.Deliveries, b.tables.Wickets, b.tables.Extras)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	b.tables.PlayerMatches = enriched
	b.tables.Players = roster
	return &b.tables, nil
}

// Run builds the full set of relations from records and the roster table.
func Run(records []*scorecard.Match, roster []model.Player) (*model.Tables, error) {
	b := New()
	for i, rec := range records {
		if err := b.Add(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return b.Finalize(roster)
}
