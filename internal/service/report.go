package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/autoscorer/internal/models"
)

var (
	ErrNoScores    = errors.New("no week has been scored yet")
	ErrNoStandings = errors.New("standings have not been calculated yet")
)

// label makes identifiers safe for Telegram's Markdown, where underscores
// start italics.
func label(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

func teamName(doc models.WeekDocument, abbrev string) string {
	if t, ok := doc.Team(abbrev); ok && t.Name != "" {
		return t.Name
	}
	return abbrev
}

func (s *LeagueService) ScoresReport() (string, error) {
	doc, _, ok := s.repo.GetWeek()
	if !ok {
		return "", ErrNoScores
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Scores*\n\n", doc.Week))

	scores := doc.Scores()
	for _, m := range doc.Matchups {
		if m.Game != "" {
			sb.WriteString(fmt.Sprintf("_%s_\n", label(m.Game)))
		}
		s1, ok1 := scores[m.Team1]
		s2, ok2 := scores[m.Team2]
		if !ok1 || !ok2 {
			sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n\n", teamName(doc, m.Team1), teamName(doc, m.Team2)))
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s* %.1f - %.1f *%s*\n\n", teamName(doc, m.Team1), s1, s2, teamName(doc, m.Team2)))
	}

	ranked := make([]models.WeekTeam, len(doc.Teams))
	copy(ranked, doc.Teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreRank < ranked[j].ScoreRank
	})
	sb.WriteString("📊 *Score Ranks:*\n")
	for _, t := range ranked {
		sb.WriteString(fmt.Sprintf("%d. %s %.1f\n", t.ScoreRank, t.Name, t.TotalScore))
	}
	return sb.String(), nil
}

func (s *LeagueService) StandingsReport() (string, error) {
	doc, ok := s.repo.GetStandings()
	if !ok {
		return "", ErrNoStandings
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *Standings* (through week %d)\n\n", doc.ThroughWeek))
	for i, row := range doc.Standings {
		sb.WriteString(fmt.Sprintf("%d. *%s* (%s)\n", i+1, row.Name, row.Abbrev))
		sb.WriteString(fmt.Sprintf("   Rank Points: %.2f\n", row.RankPoints))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d | Top Half: %.1f\n", row.Wins, row.Losses, row.Ties, row.TopHalf))
		sb.WriteString(fmt.Sprintf("   Points For: %.1f | Against: %.1f\n\n", row.PointsFor, row.PointsAgainst))
	}
	for _, group := range doc.UnresolvedTies {
		sb.WriteString(fmt.Sprintf("⚠️ Tied on rank points and points for: %s\n", strings.Join(group, ", ")))
	}
	return sb.String(), nil
}

// findTeam matches an abbreviation or name exactly, then falls back to the
// closest fuzzy match on team names.
func findTeam(teams []models.WeekTeam, query string) (models.WeekTeam, bool) {
	query = strings.TrimSpace(query)
	for _, t := range teams {
		if strings.EqualFold(t.Abbrev, query) || strings.EqualFold(t.Name, query) {
			return t, true
		}
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	if ranks := fuzzy.RankFindFold(query, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return teams[ranks[0].OriginalIndex], true
	}

	best := -1
	bestScore := 0.0
	threshold := 0.5
	q := strings.ToLower(query)
	for i, t := range teams {
		name := strings.ToLower(t.Name)
		distance := fuzzy.LevenshteinDistance(q, name)
		maxLen := float64(max(len(q), len(name)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen
		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = i
		}
	}
	if best < 0 {
		return models.WeekTeam{}, false
	}
	return teams[best], true
}

func writePlayer(sb *strings.Builder, p models.WeekPlayer) {
	points := fmt.Sprintf("%.1f pts", p.Score)
	if !p.FoundInStats {
		points = "-"
	}
	sb.WriteString(fmt.Sprintf("▫️ %s %s - %s\n", p.Position, p.Name, points))
	for _, c := range p.Breakdown {
		sb.WriteString(fmt.Sprintf("      %s: %+g\n", label(c.Name), c.Points))
	}
}

func (s *LeagueService) TeamReport(query string) (string, error) {
	doc, _, ok := s.repo.GetWeek()
	if !ok {
		return "", ErrNoScores
	}
	team, ok := findTeam(doc.Teams, query)
	if !ok {
		return fmt.Sprintf("🔍 No team found matching '%s'.", query), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s* (%s) - Week %d\n", team.Name, team.Abbrev, doc.Week))
	sb.WriteString(fmt.Sprintf("Total: %.1f (rank %d)\n\n", team.TotalScore, team.ScoreRank))

	sb.WriteString("*Starting Lineup:*\n")
	for _, p := range team.Roster {
		if p.Starter {
			writePlayer(&sb, p)
		}
	}
	sb.WriteString("\n*Bench:*\n")
	for _, p := range team.Roster {
		if !p.Starter {
			writePlayer(&sb, p)
		}
	}
	return sb.String(), nil
}

func (s *LeagueService) PlayoffsReport() (string, error) {
	picture, err := s.PlayoffPicture()
	if err != nil {
		return "", err
	}
	return FormatPlayoffs(picture), nil
}

func FormatPlayoffs(p PlayoffPicture) string {
	var sb strings.Builder
	sb.WriteString("🏆 *Playoff Picture*\n\n")
	if p.Provisional {
		sb.WriteString("_Seeds as of today_\n")
	}

	sb.WriteString("*Seeds:*\n")
	for i, team := range p.Seeds {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, team))
	}

	for round, name := range []string{"Semifinals", "Finals"} {
		sb.WriteString(fmt.Sprintf("\n*%s:*\n", name))
		for _, pair := range p.Pairings {
			if pair.Game.Round != round+1 {
				continue
			}
			line := fmt.Sprintf("%s: %s vs %s", label(pair.Game.ID), pair.Team1, pair.Team2)
			if o, ok := p.Resolution.Outcomes[pair.Game.ID]; ok {
				line = fmt.Sprintf("%s: %s %.1f - %.1f %s", label(pair.Game.ID), o.Team1, o.Score1, o.Score2, o.Team2)
			}
			sb.WriteString(line + "\n")
		}
	}

	if len(p.Resolution.Placements) > 0 {
		placed := make([]string, 0, len(p.Resolution.Placements))
		for team := range p.Resolution.Placements {
			placed = append(placed, team)
		}
		sort.Slice(placed, func(i, j int) bool {
			return p.Resolution.Placements[placed[i]] < p.Resolution.Placements[placed[j]]
		})
		sb.WriteString("\n*Final Placements:*\n")
		for _, team := range placed {
			sb.WriteString(fmt.Sprintf("%d. %s\n", p.Resolution.Placements[team], team))
		}
	}
	if len(p.Resolution.Unresolved) > 0 && len(p.Rounds) > 0 {
		sb.WriteString(fmt.Sprintf("\nStill to decide: %s\n", label(strings.Join(p.Resolution.Unresolved, ", "))))
	}
	return sb.String()
}

func (s *LeagueService) NotesReport() (string, error) {
	doc, notes, ok := s.repo.GetWeek()
	if !ok {
		return "", ErrNoScores
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📝 *Week %d Data Notes*\n\n", doc.Week))
	if len(notes) == 0 {
		sb.WriteString("No data notes this week.")
		return sb.String(), nil
	}
	for _, note := range notes {
		sb.WriteString(fmt.Sprintf("• %s\n", label(note)))
	}
	return sb.String(), nil
}

// WeeklyReport is the message posted after a scoring run.
func (s *LeagueService) WeeklyReport() (string, error) {
	scores, err := s.ScoresReport()
	if err != nil {
		return "", err
	}
	standings, err := s.StandingsReport()
	if errors.Is(err, ErrNoStandings) {
		return scores, nil
	}
	if err != nil {
		return "", err
	}
	return scores + "\n" + standings, nil
}
