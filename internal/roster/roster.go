// Package roster loads the static player reference table (people.csv).
// The Player relation is a pass-through of this file; nothing in the
// pipeline derives or rewrites it.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/cricbase/cricstats/internal/model"
)

// Read parses roster rows from r. The header row names the columns;
// identifier and name are required, the remaining identifying attributes
// are optional and default to empty.
func Read(r io.Reader) ([]model.Player, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // cricsheet ships ragged trailing columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"identifier", "name"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("roster header missing %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var players []model.Player
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		p := model.Player{
			ID:         field(row, "identifier"),
			Name:       field(row, "name"),
			UniqueName: field(row, "unique_name"),
			CricinfoID: field(row, "key_cricinfo"),
		}
		if p.ID == "" {
			return nil, fmt.Errorf("roster row %d has empty identifier", len(players)+2)
		}
		players = append(players, p)
	}
	return players, nil
}

// ReadFile parses the roster CSV at path.
func ReadFile(path string) ([]model.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	players, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return players, nil
}
