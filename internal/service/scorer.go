package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/omarshaarawi/autoscorer/internal/scoring"
	"github.com/omarshaarawi/autoscorer/internal/stats"
	"golang.org/x/sync/errgroup"
)

// maxParallelTeams bounds how many teams are scored at once.
const maxParallelTeams = 4

// StatSource is the stat resolution a Scorer needs. *stats.Resolver
// implements it.
type StatSource interface {
	FindPlayer(name, team string) (models.PlayerStats, bool)
	ClosestName(name, team string) (string, bool)
	TeamStats(team string) (models.TeamStats, bool)
	OpponentStats(team string) (models.TeamStats, bool)
	Game(team string) (stats.GameInfo, error)
	DefensiveSacks(team string) stats.SackCount
	TurnoverTouchdowns(playerID string) scoring.TurnoverTDs
	ExtraFumblesLost(playerID string, row models.PlayerStats) int
	OffensiveLineTouchdowns(team string) int
}

// Scorer applies the position rules to fantasy rosters for one week.
type Scorer struct {
	stats  StatSource
	logger *slog.Logger
}

func NewScorer(source StatSource, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{stats: source, logger: logger}
}

// ScorePlayer scores one roster entry. A player who cannot be resolved
// scores zero with FoundInStats unset; that is never an error.
func (s *Scorer) ScorePlayer(name, team string, pos models.Position) models.PlayerScore {
	score := models.PlayerScore{Name: name, Position: pos, NFLTeam: team}

	switch pos {
	case models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE:
		s.scoreSkill(&score)
	case models.PositionK:
		s.scoreKicker(&score)
	case models.PositionDST:
		s.scoreDefense(&score)
	case models.PositionHC:
		s.scoreHeadCoach(&score)
	case models.PositionOL:
		s.scoreOffensiveLine(&score)
	default:
		score.DataNotes = append(score.DataNotes, fmt.Sprintf("Unknown position %q", pos))
	}
	return score
}

func (s *Scorer) apply(score *models.PlayerScore, result scoring.Result) {
	score.TotalPoints = result.Total
	score.Breakdown = result.Breakdown
	score.FoundInStats = true
}

func (s *Scorer) notFound(score *models.PlayerScore) {
	if suggestion, ok := s.stats.ClosestName(score.Name, score.NFLTeam); ok {
		score.DataNotes = append(score.DataNotes, fmt.Sprintf("Not found in stats (closest match: %s)", suggestion))
		return
	}
	score.DataNotes = append(score.DataNotes, "Not found in stats")
}

// gameNote explains why a team-based score is unavailable.
func gameNote(err error) string {
	switch {
	case errors.Is(err, stats.ErrGameNotFinal):
		return "Game not final; score not yet available"
	case errors.Is(err, stats.ErrNoGame):
		return "No game this week"
	}
	return err.Error()
}

func (s *Scorer) scoreSkill(score *models.PlayerScore) {
	row, ok := s.stats.FindPlayer(score.Name, score.NFLTeam)
	if !ok {
		s.notFound(score)
		return
	}
	tds := s.stats.TurnoverTouchdowns(row.PlayerID)
	extra := s.stats.ExtraFumblesLost(row.PlayerID, row)
	if extra > 0 {
		score.DataNotes = append(score.DataNotes, fmt.Sprintf("%d fumble(s) lost found only in play-by-play", extra))
	}
	s.apply(score, scoring.SkillPlayer(row, tds, extra))
}

func (s *Scorer) scoreKicker(score *models.PlayerScore) {
	row, ok := s.stats.FindPlayer(score.Name, score.NFLTeam)
	if !ok {
		s.notFound(score)
		return
	}
	s.apply(score, scoring.Kicker(row))
}

func (s *Scorer) scoreDefense(score *models.PlayerScore) {
	game, err := s.stats.Game(score.NFLTeam)
	if err != nil {
		score.DataNotes = append(score.DataNotes, gameNote(err))
		return
	}
	team, ok := s.stats.TeamStats(score.NFLTeam)
	if !ok {
		score.DataNotes = append(score.DataNotes, "No team stats for "+score.NFLTeam)
		return
	}
	// Missing opponent stats count as zeros.
	opponent, _ := s.stats.OpponentStats(score.NFLTeam)

	sacks := s.stats.DefensiveSacks(score.NFLTeam)
	if sacks.Discrepancy() {
		score.DataNotes = append(score.DataNotes, sacks.Note())
	}

	s.apply(score, scoring.Defense(scoring.DefenseInput{
		Team:          team,
		Opponent:      opponent,
		PointsAllowed: game.PointsAllowed(),
		Sacks:         sacks.Value(),
	}))
}

func (s *Scorer) scoreHeadCoach(score *models.PlayerScore) {
	game, err := s.stats.Game(score.NFLTeam)
	if err != nil {
		score.DataNotes = append(score.DataNotes, gameNote(err))
		return
	}
	s.apply(score, scoring.HeadCoach(game.TeamScore, game.OpponentScore))
}

func (s *Scorer) scoreOffensiveLine(score *models.PlayerScore) {
	if _, err := s.stats.Game(score.NFLTeam); err != nil {
		score.DataNotes = append(score.DataNotes, gameNote(err))
		return
	}
	team, ok := s.stats.TeamStats(score.NFLTeam)
	if !ok {
		score.DataNotes = append(score.DataNotes, "No team stats for "+score.NFLTeam)
		return
	}
	s.apply(score, scoring.OffensiveLine(team, s.stats.OffensiveLineTouchdowns(score.NFLTeam)))
}

// positionOrder lists the team's buckets in display order, followed by any
// unrecognized buckets sorted by name.
func positionOrder(team models.FantasyTeam) []models.Position {
	order := slices.Clone(models.Positions)
	var extra []models.Position
	for pos := range team.Players {
		if !slices.Contains(models.Positions, pos) {
			extra = append(extra, pos)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

// ScoreFantasyTeam scores a roster grouped by position in display order,
// keeping roster order within a position. With startersOnly the bench is
// skipped entirely. Entries in an unrecognized bucket are kept, scored zero
// with a note.
func (s *Scorer) ScoreFantasyTeam(team models.FantasyTeam, startersOnly bool) models.TeamScores {
	var scores models.TeamScores
	for _, pos := range positionOrder(team) {
		if !slices.Contains(models.Positions, pos) && len(team.Players[pos]) > 0 {
			s.logger.Warn("Unrecognized roster position", "team", team.Abbreviation, "position", pos, "players", len(team.Players[pos]))
		}
		var players []models.ScoredPlayer
		for _, entry := range team.Players[pos] {
			if startersOnly && !entry.IsStarter {
				continue
			}
			players = append(players, models.ScoredPlayer{
				Score:     s.ScorePlayer(entry.Name, entry.NFLTeam, pos),
				IsStarter: entry.IsStarter,
			})
		}
		if len(players) > 0 {
			scores = append(scores, models.PositionScores{Position: pos, Players: players})
		}
	}
	return scores
}

// CalculateTeamTotal sums starter points. Bench points never count.
func CalculateTeamTotal(scores models.TeamScores) float64 {
	var total float64
	for _, ps := range scores {
		for _, p := range ps.Players {
			if p.IsStarter {
				total += p.Score.TotalPoints
			}
		}
	}
	return total
}

// ScoreTeams scores every team independently and in parallel. Results are
// keyed by team abbreviation.
func (s *Scorer) ScoreTeams(ctx context.Context, teams []models.FantasyTeam) (map[string]models.TeamResult, error) {
	results := make(map[string]models.TeamResult, len(teams))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelTeams)
	for _, team := range teams {
		team := team
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores := s.ScoreFantasyTeam(team, false)
			total := CalculateTeamTotal(scores)

			mu.Lock()
			results[team.Abbreviation] = models.TeamResult{Team: team, Total: total, Scores: scores}
			mu.Unlock()

			s.logger.Debug("Scored team", "team", team.Abbreviation, "total", total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring teams: %w", err)
	}
	return results, nil
}
