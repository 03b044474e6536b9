// Package standings folds scored weeks into season standings.
package standings

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/omarshaarawi/autoscorer/internal/config"
	"github.com/omarshaarawi/autoscorer/internal/models"
)

// TieBreak decides the order of teams level on rank points and points for.
type TieBreak string

const (
	// TieBreakNone leaves such teams level. They are listed by abbreviation
	// and reported in Table.UnresolvedTies.
	TieBreakNone TieBreak = "none"
	// TieBreakPointsAgainst ranks the team with fewer points against higher.
	TieBreakPointsAgainst TieBreak = "points_against"
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieBreakNone:
		return TieBreakNone, nil
	case TieBreakPointsAgainst:
		return TieBreakPointsAgainst, nil
	}
	return "", fmt.Errorf("unknown tiebreak %q", s)
}

type Options struct {
	TieBreak TieBreak
	// ThroughWeek limits the fold to weeks up to and including it when set.
	ThroughWeek int
}

type Table struct {
	Rows []models.StandingsRow
	// ThroughWeek is the last week that contributed.
	ThroughWeek int
	// UnresolvedTies lists groups of teams the tie-break policy could not
	// separate, in table order.
	UnresolvedTies [][]string
}

type weekScore struct {
	abbrev string
	score  float64
}

// Calculate recomputes the standings from scratch. Weeks are folded in week
// order whatever order they arrive in, so the result depends only on the
// set of weeks given.
func Calculate(weeks []models.WeekDocument, rules config.SeasonRules, opts Options) Table {
	ordered := slices.Clone(weeks)
	slices.SortStableFunc(ordered, func(a, b models.WeekDocument) int {
		return cmp.Compare(a.Week, b.Week)
	})

	rows := make(map[string]*models.StandingsRow)
	table := Table{}

	for _, week := range ordered {
		if !week.HasScores || !rules.IsRegularSeason(week.Week) {
			continue
		}
		if opts.ThroughWeek > 0 && week.Week > opts.ThroughWeek {
			continue
		}

		scores := make(map[string]float64, len(week.Teams))
		field := make([]weekScore, 0, len(week.Teams))
		for _, t := range week.Teams {
			abbrev := rules.Canonical(t.Abbrev)
			row, ok := rows[abbrev]
			if !ok {
				row = &models.StandingsRow{Abbrev: abbrev}
				rows[abbrev] = row
			}
			row.Name = t.Name
			row.Owner = t.Owner
			scores[abbrev] = t.TotalScore
			field = append(field, weekScore{abbrev: abbrev, score: t.TotalScore})
		}

		for _, m := range week.Matchups {
			applyMatchup(rows, scores, rules.Canonical(m.Team1), rules.Canonical(m.Team2))
		}
		applyTopHalf(rows, field, rules.TopHalfMultiplier)
		table.ThroughWeek = week.Week
	}

	table.Rows = make([]models.StandingsRow, 0, len(rows))
	for _, row := range rows {
		table.Rows = append(table.Rows, *row)
	}
	slices.SortFunc(table.Rows, func(a, b models.StandingsRow) int {
		if c := compareRows(a, b, opts.TieBreak); c != 0 {
			return c
		}
		return cmp.Compare(a.Abbrev, b.Abbrev)
	})
	table.UnresolvedTies = unresolved(table.Rows, opts.TieBreak)
	return table
}

func applyMatchup(rows map[string]*models.StandingsRow, scores map[string]float64, a1, a2 string) {
	s1, ok1 := scores[a1]
	s2, ok2 := scores[a2]
	if !ok1 || !ok2 || a1 == a2 {
		return
	}
	t1, t2 := rows[a1], rows[a2]

	t1.PointsFor += s1
	t1.PointsAgainst += s2
	t2.PointsFor += s2
	t2.PointsAgainst += s1

	switch {
	case s1 > s2:
		t1.RankPoints += 1.0
		t1.Wins++
		t2.Losses++
	case s2 > s1:
		t2.RankPoints += 1.0
		t2.Wins++
		t1.Losses++
	default:
		t1.RankPoints += 0.5
		t2.RankPoints += 0.5
		t1.Ties++
		t2.Ties++
	}
}

// applyTopHalf ranks the whole field by score. Tied teams share a run of
// positions, and the share of that run inside the top half is split evenly
// across the group.
func applyTopHalf(rows map[string]*models.StandingsRow, field []weekScore, multiplier float64) {
	slices.SortFunc(field, func(a, b weekScore) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.abbrev, b.abbrev)
	})

	cutoff := len(field) / 2
	rank := 1
	for i := 0; i < len(field); {
		j := i
		for j < len(field) && field[j].score == field[i].score {
			j++
		}
		size := j - i
		last := rank + size - 1
		inTop := max(0, min(cutoff, last)-rank+1)

		if inTop > 0 {
			share := float64(inTop) / float64(size)
			for _, ws := range field[i:j] {
				rows[ws.abbrev].RankPoints += multiplier * share
				rows[ws.abbrev].TopHalf += share
			}
		}
		rank += size
		i = j
	}
}

func compareRows(a, b models.StandingsRow, tb TieBreak) int {
	if c := cmp.Compare(b.RankPoints, a.RankPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PointsFor, a.PointsFor); c != 0 {
		return c
	}
	if tb == TieBreakPointsAgainst {
		return cmp.Compare(a.PointsAgainst, b.PointsAgainst)
	}
	return 0
}

func unresolved(rows []models.StandingsRow, tb TieBreak) [][]string {
	var groups [][]string
	for i := 0; i < len(rows); {
		j := i + 1
		for j < len(rows) && compareRows(rows[i], rows[j], tb) == 0 {
			j++
		}
		if j-i > 1 {
			group := make([]string, 0, j-i)
			for _, r := range rows[i:j] {
				group = append(group, r.Abbrev)
			}
			groups = append(groups, group)
		}
		i = j
	}
	return groups
}
