package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/omarshaarawi/autoscorer/internal/stats"
)

func intPtr(v int) *int { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFeed() models.WeekFeed {
	return models.WeekFeed{
		Season: 2025,
		Week:   3,
		Players: []models.PlayerStats{
			{PlayerID: "p1", DisplayName: "Josh Allen", Team: "BUF", PassingYards: 250, PassingTDs: 2},
			{PlayerID: "p2", DisplayName: "James Cook", Team: "BUF", RushingYards: 100},
			{PlayerID: "p3", DisplayName: "Khalil Shakir", Team: "BUF", ReceivingYards: 500},
			{PlayerID: "p4", DisplayName: "Tyler Bass", Team: "BUF", PATMade: 3, FGMade40To49: 1},
		},
		Teams: []models.TeamStats{
			{Team: "BUF", PassingYards: 300, SackYardsLost: -10, RushingYards: 120, SacksSuffered: 2},
			{Team: "KC", DefSacks: 3},
		},
		Games: []models.Game{
			{GameID: "g1", HomeTeam: "KC", AwayTeam: "LV", HomeScore: intPtr(24), AwayScore: intPtr(10)},
			{GameID: "g2", HomeTeam: "BUF", AwayTeam: "MIA", HomeScore: intPtr(31), AwayScore: intPtr(17)},
			{GameID: "g3", HomeTeam: "DAL", AwayTeam: "NYG"},
		},
		Plays: []models.Play{
			{GameID: "g1", PlayID: 1, DefTeam: "KC", Sack: true},
			{GameID: "g1", PlayID: 2, DefTeam: "KC", Sack: true},
		},
	}
}

func newTestScorer() *Scorer {
	return NewScorer(stats.NewResolver(testFeed()), discardLogger())
}

func TestScorePlayer(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name      string
		player    string
		team      string
		pos       models.Position
		wantTotal float64
		wantFound bool
		wantNote  string
	}{
		{name: "quarterback", player: "Josh Allen", team: "BUF", pos: models.PositionQB, wantTotal: 22, wantFound: true},
		{name: "kicker", player: "Tyler Bass", team: "BUF", pos: models.PositionK, wantTotal: 6, wantFound: true},
		// Points allowed 10 -> 4, play-by-play sacks 2.
		{name: "defense", player: "Chiefs", team: "KC", pos: models.PositionDST, wantTotal: 6, wantFound: true, wantNote: "Sack discrepancy: aggregated=3, PBP=2 (using PBP)"},
		{name: "head coach", player: "Sean McDermott", team: "BUF", pos: models.PositionHC, wantTotal: 3, wantFound: true},
		// 290 net passing, 120 rushing, 2 sacks allowed.
		{name: "offensive line", player: "Bills OL", team: "BUF", pos: models.PositionOL, wantTotal: 2, wantFound: true},
		{name: "misspelled", player: "Josh Alen", team: "BUF", pos: models.PositionQB, wantNote: "closest match: Josh Allen"},
		{name: "game not final", player: "Cowboys", team: "DAL", pos: models.PositionHC, wantNote: "not yet available"},
		{name: "bye", player: "49ers", team: "SF", pos: models.PositionDST, wantNote: "No game this week"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ScorePlayer(tt.player, tt.team, tt.pos)
			if got.TotalPoints != tt.wantTotal {
				t.Errorf("TotalPoints = %v, want %v (breakdown %v)", got.TotalPoints, tt.wantTotal, got.Breakdown)
			}
			if got.FoundInStats != tt.wantFound {
				t.Errorf("FoundInStats = %v, want %v", got.FoundInStats, tt.wantFound)
			}
			if got.Breakdown.Total() != got.TotalPoints {
				t.Errorf("breakdown sums to %v, total %v", got.Breakdown.Total(), got.TotalPoints)
			}
			if tt.wantNote != "" && !slices.ContainsFunc(got.DataNotes, func(n string) bool {
				return strings.Contains(n, tt.wantNote)
			}) {
				t.Errorf("DataNotes = %v, want one containing %q", got.DataNotes, tt.wantNote)
			}
		})
	}
}

func benchTeam() models.FantasyTeam {
	return models.FantasyTeam{
		Name:         "Gators",
		Abbreviation: "GSA",
		Players: map[models.Position][]models.RosterEntry{
			models.PositionRB: {{Name: "James Cook", NFLTeam: "BUF", IsStarter: true}},
			models.PositionWR: {{Name: "Khalil Shakir", NFLTeam: "BUF"}},
		},
	}
}

func TestCalculateTeamTotal_ExcludesBench(t *testing.T) {
	scores := newTestScorer().ScoreFantasyTeam(benchTeam(), false)

	if got := CalculateTeamTotal(scores); got != 10 {
		t.Errorf("CalculateTeamTotal() = %v, want 10", got)
	}
	bench := scores.Position(models.PositionWR)
	if len(bench) != 1 || bench[0].Score.TotalPoints != 50 {
		t.Errorf("bench = %+v, want the 50 point receiver still scored", bench)
	}
	if CalculateTeamTotal(scores) != CalculateTeamTotal(scores) {
		t.Error("CalculateTeamTotal is not idempotent")
	}
}

func TestScoreFantasyTeam_StartersOnlyMatchesFilteredFull(t *testing.T) {
	scorer := newTestScorer()
	team := benchTeam()
	team.Players[models.PositionQB] = []models.RosterEntry{
		{Name: "Josh Allen", NFLTeam: "BUF", IsStarter: true},
		{Name: "Backup Guy", NFLTeam: "BUF"},
	}

	full := scorer.ScoreFantasyTeam(team, false)
	starters := scorer.ScoreFantasyTeam(team, true)

	var filtered models.TeamScores
	for _, ps := range full {
		var players []models.ScoredPlayer
		for _, p := range ps.Players {
			if p.IsStarter {
				players = append(players, p)
			}
		}
		if len(players) > 0 {
			filtered = append(filtered, models.PositionScores{Position: ps.Position, Players: players})
		}
	}

	if len(starters) != len(filtered) {
		t.Fatalf("starters-only positions = %d, want %d", len(starters), len(filtered))
	}
	for i := range filtered {
		if starters[i].Position != filtered[i].Position || len(starters[i].Players) != len(filtered[i].Players) {
			t.Errorf("position %d = %+v, want %+v", i, starters[i], filtered[i])
		}
	}
	if CalculateTeamTotal(starters) != CalculateTeamTotal(full) {
		t.Errorf("totals differ: %v vs %v", CalculateTeamTotal(starters), CalculateTeamTotal(full))
	}
	if starters[0].Position != models.PositionQB {
		t.Errorf("first position = %s, want QB in display order", starters[0].Position)
	}
}

func TestScoreFantasyTeam_UnrecognizedPosition(t *testing.T) {
	team := models.FantasyTeam{
		Abbreviation: "GSA",
		Players: map[models.Position][]models.RosterEntry{
			models.PositionRB: {{Name: "James Cook", NFLTeam: "BUF", IsStarter: true}},
			"FLEX":            {{Name: "Khalil Shakir", NFLTeam: "BUF", IsStarter: true}},
		},
	}

	for _, startersOnly := range []bool{false, true} {
		scores := newTestScorer().ScoreFantasyTeam(team, startersOnly)
		if len(scores) != 2 {
			t.Fatalf("startersOnly=%v: positions = %+v, want RB and FLEX", startersOnly, scores)
		}
		if scores[len(scores)-1].Position != "FLEX" {
			t.Errorf("last position = %s, want FLEX after the known positions", scores[len(scores)-1].Position)
		}
		flex := scores.Position("FLEX")
		if len(flex) != 1 {
			t.Fatalf("FLEX players = %+v, want one", flex)
		}
		p := flex[0].Score
		if p.FoundInStats || p.TotalPoints != 0 {
			t.Errorf("FLEX score = %+v, want unscored", p)
		}
		if !slices.ContainsFunc(p.DataNotes, func(n string) bool { return strings.Contains(n, "Unknown position") }) {
			t.Errorf("DataNotes = %v, want an unknown position note", p.DataNotes)
		}
		if got := CalculateTeamTotal(scores); got != 10 {
			t.Errorf("CalculateTeamTotal() = %v, want 10", got)
		}
	}
}

func TestScoreTeams_PermutationInvariant(t *testing.T) {
	scorer := newTestScorer()
	teams := []models.FantasyTeam{
		benchTeam(),
		{Abbreviation: "CWR", Players: map[models.Position][]models.RosterEntry{
			models.PositionQB: {{Name: "Josh Allen", NFLTeam: "BUF", IsStarter: true}},
			models.PositionK:  {{Name: "Tyler Bass", NFLTeam: "BUF", IsStarter: true}},
		}},
		{Abbreviation: "SLS", Players: map[models.Position][]models.RosterEntry{
			models.PositionDST: {{Name: "Chiefs", NFLTeam: "KC", IsStarter: true}},
		}},
	}

	want, err := scorer.ScoreTeams(context.Background(), teams)
	if err != nil {
		t.Fatalf("ScoreTeams: %v", err)
	}
	if want["CWR"].Total != 28 {
		t.Errorf("CWR total = %v, want 28", want["CWR"].Total)
	}

	reversed := slices.Clone(teams)
	slices.Reverse(reversed)
	got, err := scorer.ScoreTeams(context.Background(), reversed)
	if err != nil {
		t.Fatalf("ScoreTeams: %v", err)
	}
	for abbrev, r := range want {
		if got[abbrev].Total != r.Total {
			t.Errorf("%s total = %v after reordering, want %v", abbrev, got[abbrev].Total, r.Total)
		}
	}
}

func TestScoreTeams_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestScorer().ScoreTeams(ctx, []models.FantasyTeam{benchTeam()}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
