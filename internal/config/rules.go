package config

import "github.com/omarshaarawi/autoscorer/internal/models"

type BracketFormat string

const (
	BracketTenTeam           BracketFormat = "ten_team"
	BracketEightTeamJamboree BracketFormat = "eight_team_jamboree"
	BracketEightTeamSewer    BracketFormat = "eight_team_sewer"
)

// SeasonRules are the league constants that changed between eras.
type SeasonRules struct {
	Season             int
	NumTeams           int
	RegularSeasonWeeks int
	PlayoffWeeks       [2]int
	TopHalfMultiplier  float64
	Bracket            BracketFormat
	RosterSlots        map[models.Position]int
	StarterSlots       map[models.Position]int
	// TeamAliases maps retired abbreviations to the team that absorbed them.
	TeamAliases map[string]string
}

var rosterSlots = map[models.Position]int{
	models.PositionQB:  3,
	models.PositionRB:  4,
	models.PositionWR:  5,
	models.PositionTE:  3,
	models.PositionK:   2,
	models.PositionDST: 2,
	models.PositionHC:  2,
	models.PositionOL:  2,
}

var starterSlots = map[models.Position]int{
	models.PositionQB:  1,
	models.PositionRB:  2,
	models.PositionWR:  3,
	models.PositionTE:  1,
	models.PositionK:   1,
	models.PositionDST: 1,
	models.PositionHC:  1,
	models.PositionOL:  1,
}

var teamAliases = map[string]string{
	"T/S": "S/T",
	"SPY": "AYP",
}

func RulesFor(season int) SeasonRules {
	rules := SeasonRules{
		Season:             season,
		NumTeams:           10,
		RegularSeasonWeeks: 15,
		PlayoffWeeks:       [2]int{16, 17},
		TopHalfMultiplier:  0.5,
		Bracket:            BracketTenTeam,
		RosterSlots:        rosterSlots,
		StarterSlots:       starterSlots,
		TeamAliases:        teamAliases,
	}
	switch {
	case season <= 2020:
		rules.NumTeams = 8
		rules.RegularSeasonWeeks = 14
		rules.PlayoffWeeks = [2]int{15, 16}
		rules.TopHalfMultiplier = 1.0
		rules.Bracket = BracketEightTeamJamboree
	case season == 2021:
		rules.NumTeams = 8
		rules.RegularSeasonWeeks = 14
		rules.PlayoffWeeks = [2]int{15, 16}
		rules.TopHalfMultiplier = 1.0
		rules.Bracket = BracketEightTeamSewer
	}
	return rules
}

// Canonical resolves a team abbreviation through the alias table.
func (r SeasonRules) Canonical(abbrev string) string {
	if canonical, ok := r.TeamAliases[abbrev]; ok {
		return canonical
	}
	return abbrev
}

func (r SeasonRules) IsRegularSeason(week int) bool {
	return week >= 1 && week <= r.RegularSeasonWeeks
}

func (r SeasonRules) IsPlayoffWeek(week int) bool {
	return week == r.PlayoffWeeks[0] || week == r.PlayoffWeeks[1]
}
