package models

import (
	"encoding/json"
	"testing"
)

func TestBreakdown_JSONKeepsOrder(t *testing.T) {
	b := NewBreakdown(
		Category{Name: "passing_yards", Points: 12},
		Category{Name: "rushing_yards", Points: 0},
		Category{Name: "turnovers", Points: -2},
	)
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `{"passing_yards":12,"turnovers":-2}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var back Breakdown
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(back) != 2 || back[0].Name != "passing_yards" || back.Total() != 10 {
		t.Errorf("Unmarshal = %+v", back)
	}
	if err := json.Unmarshal([]byte(`[1]`), &back); err == nil {
		t.Error("expected error for a non-object breakdown")
	}
}

func TestPlay_LostFumbleBy(t *testing.T) {
	tests := []struct {
		name string
		play Play
		want string
	}{
		{name: "no fumble", play: Play{Fumbled1PlayerID: "a"}, want: ""},
		{name: "single", play: Play{FumbleLost: true, Fumbled1PlayerID: "a"}, want: "a"},
		{name: "lateral", play: Play{FumbleLost: true, Fumbled1PlayerID: "a", Fumbled2PlayerID: "b"}, want: "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.play.LostFumbleBy(); got != tt.want {
				t.Errorf("LostFumbleBy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlay_ReturnTouchdown(t *testing.T) {
	pickSix := Play{Touchdown: true, TDTeam: "KC", DefTeam: "KC", Interception: true}
	if !pickSix.ReturnTouchdown() {
		t.Error("defensive score not detected")
	}
	offense := Play{Touchdown: true, TDTeam: "BUF", DefTeam: "KC"}
	if offense.ReturnTouchdown() {
		t.Error("offensive score reported as a return")
	}
}

func TestWeekDocument_Scores(t *testing.T) {
	doc := WeekDocument{Teams: []WeekTeam{{Abbrev: "GSA", TotalScore: 80}, {Abbrev: "CWR", TotalScore: 70}}}
	if s := doc.Scores(); s["GSA"] != 80 || s["CWR"] != 70 {
		t.Errorf("Scores() = %v", s)
	}
	if _, ok := doc.Team("XXX"); ok {
		t.Error("Team(XXX) found")
	}
}
