package stats

import (
	"errors"
	"testing"

	"github.com/omarshaarawi/autoscorer/internal/models"
)

func intPtr(v int) *int { return &v }

func testFeed() models.WeekFeed {
	return models.WeekFeed{
		Season: 2025,
		Week:   3,
		Players: []models.PlayerStats{
			{PlayerID: "qb1", DisplayName: "Patrick Mahomes", Team: "KC", PassingYards: 300},
			{PlayerID: "te1", DisplayName: "Travis Kelce", Team: "KC"},
			{PlayerID: "wr1", DisplayName: "Marvin Harrison Jr.", Team: "ARI"},
			{PlayerID: "rb1", DisplayName: "Kyren Williams", Team: "LA"},
			{PlayerID: "wr2", DisplayName: "Mike Williams", Team: "LA"},
			{PlayerID: "k1", DisplayName: "Cam Little", Team: "JAX"},
		},
		Teams: []models.TeamStats{
			{Team: "KC", DefSacks: 3, PassingInterceptions: 1},
			{Team: "LV", DefSacks: 2.5},
			{Team: "LA", DefSacks: 1},
		},
		Games: []models.Game{
			{GameID: "g1", HomeTeam: "KC", AwayTeam: "LV", HomeScore: intPtr(27), AwayScore: intPtr(20), HomeCoach: "Andy Reid", AwayCoach: "Pete Carroll"},
			{GameID: "g2", HomeTeam: "JAX", AwayTeam: "LA"},
		},
		Plays: []models.Play{
			{GameID: "g1", DefTeam: "KC", PosTeam: "LV", Sack: true},
			{GameID: "g1", DefTeam: "KC", PosTeam: "LV", Sack: true},
			{GameID: "g1", DefTeam: "LV", PosTeam: "KC", Interception: true, Touchdown: true, TDTeam: "LV", PasserPlayerID: "qb1"},
			{GameID: "g1", DefTeam: "LV", PosTeam: "KC", FumbleLost: true, Fumbled1PlayerID: "te1", Touchdown: true, TDTeam: "LV"},
			{GameID: "g1", DefTeam: "LV", PosTeam: "KC", FumbleLost: true, Fumbled1PlayerID: "te1", Fumbled2PlayerID: "qb1"},
			{GameID: "g1", DefTeam: "LV", PosTeam: "KC", Touchdown: true, TDTeam: "KC", TDPlayerPosition: "T"},
			{GameID: "g1", DefTeam: "LV", PosTeam: "KC", Touchdown: true, TDTeam: "KC", TDPlayerPosition: "WR"},
		},
	}
}

func TestNormalizeTeam(t *testing.T) {
	tests := map[string]string{
		"LAR":  "LA",
		"jac":  "JAX",
		" KC ": "KC",
		"OAK":  "LV",
		"SF":   "SF",
	}
	for in, want := range tests {
		if got := NormalizeTeam(in); got != want {
			t.Errorf("NormalizeTeam(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"Patrick Mahomes II":  "Patrick Mahomes",
		"Marvin Harrison Jr.": "Marvin Harrison",
		"Odell Beckham jr":    "Odell Beckham",
		"Kenneth Walker III":  "Kenneth Walker",
		"Victor Vance":        "Victor Vance",
	}
	for in, want := range tests {
		if got := CleanName(in); got != want {
			t.Errorf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindPlayer(t *testing.T) {
	r := NewResolver(testFeed())

	tests := []struct {
		name   string
		player string
		team   string
		wantID string
	}{
		{"suffix stripped", "Patrick Mahomes II", "KC", "qb1"},
		{"case insensitive", "travis kelce", "KC", "te1"},
		{"contains match", "Marvin Harrison", "ARI", "wr1"},
		{"team alias", "Kyren Williams", "LAR", "rb1"},
		{"unique last name", "Cameron Little", "JAC", "k1"},
		{"ambiguous last name", "Roschon Williams", "LA", ""},
		{"wrong team", "Patrick Mahomes", "LV", ""},
		{"unknown", "Nobody Here", "KC", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.FindPlayer(tt.player, tt.team)
			if tt.wantID == "" {
				if ok {
					t.Errorf("FindPlayer(%q) = %q, want not found", tt.player, got.PlayerID)
				}
				return
			}
			if !ok || got.PlayerID != tt.wantID {
				t.Errorf("FindPlayer(%q) = %q (found=%v), want %q", tt.player, got.PlayerID, ok, tt.wantID)
			}
		})
	}
}

func TestClosestName(t *testing.T) {
	r := NewResolver(testFeed())
	got, ok := r.ClosestName("Travis Kelse", "KC")
	if !ok || got != "Travis Kelce" {
		t.Errorf("ClosestName = %q (ok=%v), want Travis Kelce", got, ok)
	}
	if _, ok := r.ClosestName("Zzz", "KC"); ok {
		t.Error("expected no suggestion for an unrelated name")
	}
}

func TestGame(t *testing.T) {
	r := NewResolver(testFeed())

	home, err := r.Game("KC")
	if err != nil {
		t.Fatalf("Game(KC): %v", err)
	}
	if !home.IsHome || home.TeamScore != 27 || home.PointsAllowed() != 20 || home.Opponent != "LV" || home.Coach != "Andy Reid" {
		t.Errorf("Game(KC) = %+v", home)
	}

	away, err := r.Game("OAK")
	if err != nil {
		t.Fatalf("Game(OAK): %v", err)
	}
	if away.IsHome || away.TeamScore != 20 || away.OpponentScore != 27 || away.Opponent != "KC" {
		t.Errorf("Game(OAK) = %+v", away)
	}

	if _, err := r.Game("LAR"); !errors.Is(err, ErrGameNotFinal) {
		t.Errorf("Game(LAR) err = %v, want ErrGameNotFinal", err)
	}
	if _, err := r.Game("SF"); !errors.Is(err, ErrNoGame) {
		t.Errorf("Game(SF) err = %v, want ErrNoGame", err)
	}
}

func TestOpponentStats(t *testing.T) {
	r := NewResolver(testFeed())
	opp, ok := r.OpponentStats("LV")
	if !ok || opp.Team != "KC" {
		t.Errorf("OpponentStats(LV) = %q (ok=%v), want KC", opp.Team, ok)
	}
	if _, ok := r.OpponentStats("JAX"); ok {
		t.Error("OpponentStats for an unfinished game should not resolve")
	}
}

func TestDefensiveSacks(t *testing.T) {
	r := NewResolver(testFeed())

	kc := r.DefensiveSacks("KC")
	if kc.Aggregated != 3 || kc.PlayByPlay != 2 || kc.Value() != 2 || !kc.Discrepancy() {
		t.Errorf("DefensiveSacks(KC) = %+v", kc)
	}
	want := "Sack discrepancy: aggregated=3, PBP=2 (using PBP)"
	if kc.Note() != want {
		t.Errorf("Note() = %q, want %q", kc.Note(), want)
	}

	feed := testFeed()
	feed.Plays = nil
	noPBP := NewResolver(feed).DefensiveSacks("KC")
	if noPBP.Value() != 3 || noPBP.Discrepancy() {
		t.Errorf("without play-by-play = %+v, want aggregated 3 and no discrepancy", noPBP)
	}
}

func TestTurnoverTouchdowns(t *testing.T) {
	r := NewResolver(testFeed())

	if got := r.TurnoverTouchdowns("qb1"); got.PickSixes != 1 || got.FumbleSixes != 0 {
		t.Errorf("qb1 = %+v, want one pick-six", got)
	}
	if got := r.TurnoverTouchdowns("te1"); got.PickSixes != 0 || got.FumbleSixes != 1 {
		t.Errorf("te1 = %+v, want one fumble-six", got)
	}
	if got := r.TurnoverTouchdowns(""); got.Count() != 0 {
		t.Errorf("empty id = %+v, want none", got)
	}
}

func TestExtraFumblesLost(t *testing.T) {
	r := NewResolver(testFeed())

	// The lateral fumble is charged to qb1, who has no fumbles in the box score.
	if got := r.ExtraFumblesLost("qb1", models.PlayerStats{}); got != 1 {
		t.Errorf("qb1 extra = %d, want 1", got)
	}
	if got := r.ExtraFumblesLost("te1", models.PlayerStats{RushingFumblesLost: 1}); got != 0 {
		t.Errorf("te1 extra = %d, want 0", got)
	}
	if got := r.ExtraFumblesLost("te1", models.PlayerStats{ReceivingFumblesLost: 3}); got != 0 {
		t.Errorf("extra fumbles must not go negative, got %d", got)
	}
}

func TestOffensiveLineTouchdowns(t *testing.T) {
	r := NewResolver(testFeed())
	if got := r.OffensiveLineTouchdowns("KC"); got != 1 {
		t.Errorf("OffensiveLineTouchdowns(KC) = %d, want 1", got)
	}
	if got := r.OffensiveLineTouchdowns("LV"); got != 0 {
		t.Errorf("OffensiveLineTouchdowns(LV) = %d, want 0", got)
	}
}
