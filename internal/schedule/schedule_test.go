package schedule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omarshaarawi/autoscorer/internal/playoffs"
)

const sample = `# 2026 schedule
Week 1: GSA versus S/T, RPA versus CWR
Week 2: gsa vs rpa, S/T versus CWR

Rivalry Week 3: GSA versus CWR, RPA versus S/T
`

func TestParse(t *testing.T) {
	weeks, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}
	if weeks[0].Rivalry || !weeks[2].Rivalry {
		t.Errorf("rivalry flags = %v %v, want false true", weeks[0].Rivalry, weeks[2].Rivalry)
	}
	if m := weeks[0].Matchups[0]; m.Team1 != "GSA" || m.Team2 != "S/T" {
		t.Errorf("week 1 first matchup = %+v", m)
	}
	if m := weeks[1].Matchups[0]; m.Team1 != "GSA" || m.Team2 != "RPA" {
		t.Errorf("lowercase matchup not upper-cased: %+v", m)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"bad matchup": "Week 1: GSA against RPA",
		"duplicate":   "Week 1: GSA vs RPA\nWeek 1: CWR vs S/T",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.txt")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	weeks, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	w, ok := Regular(weeks, 2)
	if !ok || len(w.Matchups) != 2 {
		t.Errorf("Regular(2) = %+v, %v", w, ok)
	}
	if _, ok := Regular(weeks, 9); ok {
		t.Error("Regular(9) should be missing")
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPlayoff(t *testing.T) {
	seeds := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	weeks := Playoff(playoffs.TenTeam(), [2]int{16, 17}, seeds)

	if len(weeks) != 2 || weeks[0].Number != 16 || weeks[1].Number != 17 {
		t.Fatalf("weeks = %+v", weeks)
	}
	if len(weeks[0].Matchups) != 5 || len(weeks[1].Matchups) != 5 {
		t.Fatalf("matchup counts = %d %d, want 5 5", len(weeks[0].Matchups), len(weeks[1].Matchups))
	}
	if m := weeks[0].Matchups[1]; m.Team1 != "B" || m.Team2 != "C" || m.Bracket != "playoffs" {
		t.Errorf("semi_2 = %+v", m)
	}
	if m := weeks[1].Matchups[0]; m.Team1 != playoffs.TBD || m.Game != "championship" {
		t.Errorf("championship = %+v, want TBD", m)
	}
	if m := weeks[1].Matchups[2]; m.Team1 != "E" || m.Team2 != "F" {
		t.Errorf("mid_bowl_2 = %+v, want E vs F", m)
	}
}
