package roster

import (
	"strings"
	"testing"
)

func TestReadRoster(t *testing.T) {
	csvData := `identifier,name,unique_name,key_bcci,key_cricinfo
p1,V Kohli,V Kohli,123,253802
p2,MS Dhoni,MS Dhoni,,28081
p3,R Sharma,R Sharma (2),456,
`
	players, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("want 3 players, got %d", len(players))
	}
	if players[0].ID != "p1" || players[0].Name != "V Kohli" || players[0].CricinfoID != "253802" {
		t.Errorf("first player: %+v", players[0])
	}
	if players[2].UniqueName != "R Sharma (2)" || players[2].CricinfoID != "" {
		t.Errorf("third player: %+v", players[2])
	}
}

func TestReadRosterRaggedRow(t *testing.T) {
	// Trailing optional columns may be absent entirely.
	csvData := "identifier,name,unique_name,key_cricinfo\np1,A Player\n"
	players, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if players[0].UniqueName != "" {
		t.Errorf("missing column should read as empty, got %q", players[0].UniqueName)
	}
}

func TestReadRosterMissingRequiredColumn(t *testing.T) {
	if _, err := Read(strings.NewReader("name,unique_name\nx,y\n")); err == nil {
		t.Error("expected error for header without identifier")
	}
}

func TestReadRosterEmptyIdentifier(t *testing.T) {
	if _, err := Read(strings.NewReader("identifier,name\n,ghost\n")); err == nil {
		t.Error("expected error for empty identifier")
	}
}
