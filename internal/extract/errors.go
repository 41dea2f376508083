package extract

import (
	"errors"
	"fmt"
)

// ErrMissingMatchIdentifier is returned when a record's event metadata has
// neither a match number nor a stage label. Well-formed input always has
// one of the two; the record is rejected, not skipped.
var ErrMissingMatchIdentifier = errors.New("record has no match number or stage label")

// ErrMissingSeason is returned when a record carries no season label.
var ErrMissingSeason = errors.New("record has no season")

// UnresolvedIdentityError reports a player name referenced by delivery,
// wicket, or fielder data that is absent from the record's registry.
// Statistics cannot be attributed to an unknown identity, so this aborts
// the run.
type UnresolvedIdentityError struct {
	Name string
}

func (e *UnresolvedIdentityError) Error() string {
	return fmt.Sprintf("player %q not in match registry", e.Name)
}

// AmbiguousSquadError reports a player name listed in both squads. Valid
// data never does this; letting it through would silently duplicate rows
// in every later join, so the run fails instead.
type AmbiguousSquadError struct {
	Name  string
	Teams []string
}

func (e *AmbiguousSquadError) Error() string {
	return fmt.Sprintf("player %q listed in more than one squad: %v", e.Name, e.Teams)
}
