// Package validation runs sanity checks over rosters, lineups and computed
// scores. Every check returns human-readable warnings; none of them block
// scoring or persistence.
package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/omarshaarawi/autoscorer/internal/config"
	"github.com/omarshaarawi/autoscorer/internal/models"
)

const (
	maxPlayerPoints     = 100
	minPlayerPoints     = -20
	maxTeamPoints       = 300
	maxPointsPerStarter = 50
	tolerance           = 0.1
)

func duplicates(names []string) []string {
	seen := make(map[string]bool)
	var dups []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if seen[name] && !slices.Contains(dups, name) {
			dups = append(dups, name)
		}
		seen[name] = true
	}
	slices.Sort(dups)
	return dups
}

// Roster checks per-position roster and starter limits and looks for players
// listed twice.
func Roster(team models.FantasyTeam, rules config.SeasonRules) []string {
	var warnings []string
	var names []string

	for _, pos := range models.Positions {
		entries := team.Players[pos]
		if limit, ok := rules.RosterSlots[pos]; ok && len(entries) > limit {
			warnings = append(warnings, fmt.Sprintf("%s has %d %s players (max %d)", team.Abbreviation, len(entries), pos, limit))
		}
		starters := 0
		for _, e := range entries {
			names = append(names, e.Name)
			if e.IsStarter {
				starters++
			}
		}
		if limit, ok := rules.StarterSlots[pos]; ok && starters > limit {
			warnings = append(warnings, fmt.Sprintf("%s starts %d %s (max %d)", team.Abbreviation, starters, pos, limit))
		}
	}

	if dups := duplicates(names); len(dups) > 0 {
		warnings = append(warnings, fmt.Sprintf("%s has duplicate players: %s", team.Abbreviation, strings.Join(dups, ", ")))
	}
	return warnings
}

// Lineup checks a submitted lineup against starter limits and the team's
// active roster.
func Lineup(team models.FantasyTeam, lineup models.Lineup, rules config.SeasonRules) []string {
	var warnings []string
	abbrev := team.Abbreviation

	for _, pos := range models.Positions {
		if limit, ok := rules.StarterSlots[pos]; ok && len(lineup[pos]) > limit {
			warnings = append(warnings, fmt.Sprintf("%s lineup has %d %s starters (max %d)", abbrev, len(lineup[pos]), pos, limit))
		}
	}

	var all []string
	for _, pos := range models.Positions {
		for _, name := range lineup[pos] {
			if strings.TrimSpace(name) == "" {
				continue
			}
			all = append(all, name)
			onRoster := slices.ContainsFunc(team.Players[pos], func(e models.RosterEntry) bool {
				return e.Name == name
			})
			if !onRoster {
				warnings = append(warnings, fmt.Sprintf("%s lineup has %s (%s) who is not on active roster", abbrev, name, pos))
			}
		}
	}

	if dups := duplicates(all); len(dups) > 0 {
		warnings = append(warnings, fmt.Sprintf("%s lineup has duplicate players: %s", abbrev, strings.Join(dups, ", ")))
	}
	return warnings
}

func PlayerScore(score models.PlayerScore) []string {
	if math.IsNaN(score.TotalPoints) || math.IsInf(score.TotalPoints, 0) {
		return []string{fmt.Sprintf("%s has invalid score %v", score.Name, score.TotalPoints)}
	}

	var warnings []string
	switch {
	case score.TotalPoints > maxPlayerPoints:
		warnings = append(warnings, fmt.Sprintf("%s scored %.1f pts (unusually high - check for scoring bug)", score.Name, score.TotalPoints))
	case score.TotalPoints < minPlayerPoints:
		warnings = append(warnings, fmt.Sprintf("%s scored %.1f pts (unusually low - check for scoring bug)", score.Name, score.TotalPoints))
	}

	if !score.FoundInStats && (score.TotalPoints != 0 || len(score.Breakdown) > 0) {
		warnings = append(warnings, fmt.Sprintf("%s was not found in stats but scored %.1f pts", score.Name, score.TotalPoints))
	}

	if len(score.Breakdown) > 0 {
		sum := score.Breakdown.Total()
		if diff := math.Abs(sum - score.TotalPoints); diff > tolerance {
			warnings = append(warnings, fmt.Sprintf("%s breakdown sum (%.1f) != total (%.1f) - difference: %.1f", score.Name, sum, score.TotalPoints, diff))
		}
	}
	return warnings
}

func TeamScore(abbrev string, total float64, starters int) []string {
	var warnings []string
	switch {
	case total > maxTeamPoints:
		warnings = append(warnings, fmt.Sprintf("%s scored %.1f pts (unusually high - check for scoring bug)", abbrev, total))
	case total < 0:
		warnings = append(warnings, fmt.Sprintf("%s scored %.1f pts (negative total - check for scoring bug)", abbrev, total))
	}
	if starters > 0 {
		if avg := total / float64(starters); avg > maxPointsPerStarter {
			warnings = append(warnings, fmt.Sprintf("%s averaged %.1f pts/starter (unusually high - check for scoring bug)", abbrev, avg))
		}
	}
	return warnings
}

// Week validates every scored player and team total in a week, including
// that each total is the sum of its starters.
func Week(results []models.TeamResult) []string {
	var warnings []string
	for _, r := range results {
		abbrev := r.Team.Abbreviation
		var starterSum float64
		starters := 0
		for _, ps := range r.Scores {
			for _, sp := range ps.Players {
				warnings = append(warnings, PlayerScore(sp.Score)...)
				if sp.IsStarter {
					starterSum += sp.Score.TotalPoints
					starters++
				}
			}
		}
		if math.Abs(starterSum-r.Total) > tolerance {
			warnings = append(warnings, fmt.Sprintf("%s total (%.1f) != starter sum (%.1f)", abbrev, r.Total, starterSum))
		}
		warnings = append(warnings, TeamScore(abbrev, r.Total, starters)...)
	}
	return warnings
}

// Standings checks that each row's rank points decompose into head-to-head
// results plus the top-half bonus, and that the league-wide totals balance.
func Standings(rows []models.StandingsRow, multiplier float64) []string {
	var warnings []string
	var wins, losses, ties int
	var pointsFor, pointsAgainst float64

	for _, r := range rows {
		expected := float64(r.Wins) + 0.5*float64(r.Ties) + multiplier*r.TopHalf
		if math.Abs(expected-r.RankPoints) > 0.01 {
			warnings = append(warnings, fmt.Sprintf("%s rank points %.2f != %.2f from record and top-half", r.Abbrev, r.RankPoints, expected))
		}
		wins += r.Wins
		losses += r.Losses
		ties += r.Ties
		pointsFor += r.PointsFor
		pointsAgainst += r.PointsAgainst
	}

	if wins != losses {
		warnings = append(warnings, fmt.Sprintf("league has %d wins but %d losses", wins, losses))
	}
	if ties%2 != 0 {
		warnings = append(warnings, fmt.Sprintf("league has an odd number of ties (%d)", ties))
	}
	if math.Abs(pointsFor-pointsAgainst) > tolerance {
		warnings = append(warnings, fmt.Sprintf("points for (%.1f) != points against (%.1f)", pointsFor, pointsAgainst))
	}
	return warnings
}
