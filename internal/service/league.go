package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/autoscorer/internal/config"
	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/omarshaarawi/autoscorer/internal/playoffs"
	"github.com/omarshaarawi/autoscorer/internal/repository/memory"
	"github.com/omarshaarawi/autoscorer/internal/schedule"
	"github.com/omarshaarawi/autoscorer/internal/standings"
	"github.com/omarshaarawi/autoscorer/internal/stats"
	"github.com/omarshaarawi/autoscorer/internal/validation"
)

type FeedProvider interface {
	WeekFeed(ctx context.Context, season, week int) (models.WeekFeed, error)
}

type RosterSource interface {
	FantasyTeams(week int) ([]models.FantasyTeam, error)
	Lineups(week int) (map[string]models.Lineup, error)
	Schedule() ([]schedule.Week, error)
}

type ResultStore interface {
	SaveWeek(doc models.WeekDocument) (models.WeekDocument, error)
	LoadWeeks() ([]models.WeekDocument, error)
	SaveStandings(doc models.StandingsDocument) error
	LoadStandings() (models.StandingsDocument, error)
}

// LeagueService runs the weekly scoring pipeline: fetch stats, score every
// roster, validate, persist, and refresh standings.
type LeagueService struct {
	feed     FeedProvider
	roster   RosterSource
	store    ResultStore
	repo     *memory.Repository
	rules    config.SeasonRules
	tieBreak standings.TieBreak
	logger   *slog.Logger
	now      func() time.Time
}

func NewLeagueService(
	feed FeedProvider,
	roster RosterSource,
	store ResultStore,
	repo *memory.Repository,
	rules config.SeasonRules,
	tieBreak standings.TieBreak,
	logger *slog.Logger,
) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeagueService{
		feed:     feed,
		roster:   roster,
		store:    store,
		repo:     repo,
		rules:    rules,
		tieBreak: tieBreak,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *LeagueService) Rules() config.SeasonRules {
	return s.rules
}

func (s *LeagueService) lastWeek() int {
	return s.rules.PlayoffWeeks[1]
}

// ScoreWeek scores every team for the week and persists the result. Missing
// players and unfinished games only produce notes; fetch and roster errors
// abort the week.
func (s *LeagueService) ScoreWeek(ctx context.Context, week int) (models.WeekDocument, error) {
	if week < 1 || week > s.lastWeek() {
		return models.WeekDocument{}, fmt.Errorf("week %d outside season %d (1-%d)", week, s.rules.Season, s.lastWeek())
	}

	feed, err := s.feed.WeekFeed(ctx, s.rules.Season, week)
	if err != nil {
		return models.WeekDocument{}, fmt.Errorf("fetching week %d stats: %w", week, err)
	}
	teams, err := s.roster.FantasyTeams(week)
	if err != nil {
		return models.WeekDocument{}, fmt.Errorf("loading week %d rosters: %w", week, err)
	}

	warnings := s.validateRosters(week, teams)

	scorer := NewScorer(stats.NewResolver(feed), s.logger)
	byAbbrev, err := scorer.ScoreTeams(ctx, teams)
	if err != nil {
		return models.WeekDocument{}, err
	}
	results := orderedResults(byAbbrev)
	warnings = append(warnings, validation.Week(results)...)

	matchups, err := s.matchups(week)
	if err != nil {
		s.logger.Warn("No matchups for week", "week", week, "error", err)
	}

	doc := buildWeekDocument(week, results, matchups)
	doc.RunID = uuid.NewString()
	doc.ScoredAt = s.now().UTC().Format(time.RFC3339)

	saved, err := s.store.SaveWeek(doc)
	if err != nil {
		return models.WeekDocument{}, err
	}

	for _, w := range warnings {
		s.logger.Warn("Validation warning", "week", week, "warning", w)
	}
	s.repo.SaveWeek(saved, append(dataNotes(results), warnings...))

	s.logger.Info("Scored week", "week", week, "teams", len(results), "has_scores", saved.HasScores, "run_id", doc.RunID)
	return saved, nil
}

func (s *LeagueService) validateRosters(week int, teams []models.FantasyTeam) []string {
	var warnings []string
	lineups, err := s.roster.Lineups(week)
	if err != nil {
		s.logger.Warn("Skipping lineup validation", "week", week, "error", err)
	}
	for _, team := range teams {
		warnings = append(warnings, validation.Roster(team, s.rules)...)
		if lineup, ok := lineups[team.Abbreviation]; ok {
			warnings = append(warnings, validation.Lineup(team, lineup, s.rules)...)
		}
	}
	return warnings
}

func orderedResults(byAbbrev map[string]models.TeamResult) []models.TeamResult {
	results := make([]models.TeamResult, 0, len(byAbbrev))
	for _, r := range byAbbrev {
		results = append(results, r)
	}
	slices.SortFunc(results, func(a, b models.TeamResult) int {
		return cmp.Compare(a.Team.Abbreviation, b.Team.Abbreviation)
	})
	return results
}

func buildWeekDocument(week int, results []models.TeamResult, matchups []models.WeekMatchup) models.WeekDocument {
	doc := models.WeekDocument{Week: week, Matchups: matchups}
	for _, r := range results {
		team := models.WeekTeam{
			Name:       r.Team.Name,
			Owner:      r.Team.Owner,
			Abbrev:     r.Team.Abbreviation,
			TotalScore: r.Total,
		}
		for _, ps := range r.Scores {
			for _, p := range ps.Players {
				team.Roster = append(team.Roster, models.WeekPlayer{
					Name:         p.Score.Name,
					NFLTeam:      p.Score.NFLTeam,
					Position:     string(ps.Position),
					Score:        p.Score.TotalPoints,
					Starter:      p.IsStarter,
					FoundInStats: p.Score.FoundInStats,
					Breakdown:    p.Score.Breakdown,
					Notes:        p.Score.DataNotes,
				})
			}
		}
		if r.Total != 0 {
			doc.HasScores = true
		}
		doc.Teams = append(doc.Teams, team)
	}
	rankScores(doc.Teams)
	return doc
}

// rankScores sets competition ranks by total: tied teams share a rank and
// the next rank skips past them.
func rankScores(teams []models.WeekTeam) {
	totals := make([]float64, len(teams))
	for i, t := range teams {
		totals[i] = t.TotalScore
	}
	for i := range teams {
		rank := 1
		for _, other := range totals {
			if other > totals[i] {
				rank++
			}
		}
		teams[i].ScoreRank = rank
	}
}

func dataNotes(results []models.TeamResult) []string {
	var notes []string
	for _, r := range results {
		for _, ps := range r.Scores {
			for _, p := range ps.Players {
				for _, note := range p.Score.DataNotes {
					notes = append(notes, fmt.Sprintf("%s %s %s: %s", r.Team.Abbreviation, ps.Position, p.Score.Name, note))
				}
			}
		}
	}
	return notes
}

func (s *LeagueService) matchups(week int) ([]models.WeekMatchup, error) {
	var sched schedule.Week
	switch {
	case s.rules.IsRegularSeason(week):
		weeks, err := s.roster.Schedule()
		if err != nil {
			return nil, err
		}
		w, ok := schedule.Regular(weeks, week)
		if !ok {
			return nil, fmt.Errorf("week %d not in schedule", week)
		}
		sched = w
	case s.rules.IsPlayoffWeek(week):
		picture, err := s.playoffPicture(week)
		if err != nil {
			return nil, err
		}
		for _, w := range schedule.Playoff(picture.Bracket, s.rules.PlayoffWeeks, picture.Seeds, picture.Rounds...) {
			if w.Number == week {
				sched = w
			}
		}
	}

	matchups := make([]models.WeekMatchup, 0, len(sched.Matchups))
	for _, m := range sched.Matchups {
		matchups = append(matchups, models.WeekMatchup{Team1: m.Team1, Team2: m.Team2, Bracket: m.Bracket, Game: m.Game})
	}
	return matchups, nil
}

// Standings folds every stored week into the current table.
func (s *LeagueService) Standings() (standings.Table, error) {
	weeks, err := s.store.LoadWeeks()
	if err != nil {
		return standings.Table{}, err
	}
	return standings.Calculate(weeks, s.rules, standings.Options{TieBreak: s.tieBreak}), nil
}

// RefreshStandings recomputes the standings from every stored week, applies
// final playoff placements once all of them are known, and persists the
// result.
func (s *LeagueService) RefreshStandings() (models.StandingsDocument, error) {
	table, err := s.Standings()
	if err != nil {
		return models.StandingsDocument{}, err
	}

	for _, w := range validation.Standings(table.Rows, s.rules.TopHalfMultiplier) {
		s.logger.Warn("Standings check failed", "warning", w)
	}
	for _, group := range table.UnresolvedTies {
		s.logger.Warn("Unresolved standings tie", "teams", group, "tiebreak", s.tieBreak)
	}

	rows := table.Rows
	if picture, err := s.playoffPicture(math.MaxInt); err != nil {
		s.logger.Warn("Skipping playoff placements", "error", err)
	} else if res := picture.Resolution; len(res.Placements) > 0 && len(res.Unresolved) == 0 {
		rows = playoffs.ApplyPlacements(rows, res.Placements)
	}

	doc := models.StandingsDocument{
		Season:         s.rules.Season,
		UpdatedAt:      s.now().UTC().Format(time.RFC3339),
		ThroughWeek:    table.ThroughWeek,
		Standings:      rows,
		UnresolvedTies: table.UnresolvedTies,
	}
	if err := s.store.SaveStandings(doc); err != nil {
		return models.StandingsDocument{}, err
	}
	s.repo.SaveStandings(doc)

	s.logger.Info("Refreshed standings", "season", doc.Season, "through_week", doc.ThroughWeek)
	return doc, nil
}

type PlayoffPicture struct {
	Bracket playoffs.Bracket
	// Seeds are provisional while the regular season is still being played.
	Seeds       []string
	Provisional bool
	Rounds      []playoffs.RoundScores
	Pairings    []playoffs.Pairing
	Resolution  playoffs.Resolution
}

// PlayoffPicture seeds the bracket from regular-season standings and
// resolves it with every playoff week scored so far.
func (s *LeagueService) PlayoffPicture() (PlayoffPicture, error) {
	return s.playoffPicture(math.MaxInt)
}

// playoffPicture uses only playoff weeks before the given week.
func (s *LeagueService) playoffPicture(before int) (PlayoffPicture, error) {
	bracket, err := playoffs.ForFormat(s.rules.Bracket)
	if err != nil {
		return PlayoffPicture{}, err
	}
	weeks, err := s.store.LoadWeeks()
	if err != nil {
		return PlayoffPicture{}, err
	}

	table := standings.Calculate(weeks, s.rules, standings.Options{
		TieBreak:    s.tieBreak,
		ThroughWeek: s.rules.RegularSeasonWeeks,
	})
	seeds := playoffs.Seeds(table.Rows)
	if len(seeds) > bracket.Teams {
		seeds = seeds[:bracket.Teams]
	}
	rounds := playoffRounds(weeks, s.rules.PlayoffWeeks, before)

	return PlayoffPicture{
		Bracket:     bracket,
		Seeds:       seeds,
		Provisional: table.ThroughWeek < s.rules.RegularSeasonWeeks,
		Rounds:      rounds,
		Pairings:    bracket.Matchups(seeds, rounds...),
		Resolution:  playoffs.Resolve(bracket, seeds, rounds),
	}, nil
}

// playoffRounds collects the scores of consecutive scored playoff weeks
// earlier than before.
func playoffRounds(weeks []models.WeekDocument, playoffWeeks [2]int, before int) []playoffs.RoundScores {
	var rounds []playoffs.RoundScores
	for _, pw := range playoffWeeks {
		if pw >= before {
			break
		}
		i := slices.IndexFunc(weeks, func(w models.WeekDocument) bool {
			return w.Week == pw && w.HasScores
		})
		if i < 0 {
			break
		}
		rounds = append(rounds, playoffs.RoundScores(weeks[i].Scores()))
	}
	return rounds
}

// NextWeek is the week after the last one with scores, capped at the final
// playoff week.
func (s *LeagueService) NextWeek() (int, error) {
	weeks, err := s.store.LoadWeeks()
	if err != nil {
		return 0, err
	}
	last := 0
	for _, w := range weeks {
		if w.HasScores {
			last = max(last, w.Week)
		}
	}
	return min(last+1, s.lastWeek()), nil
}

// Run scores the week, or the next unscored week when week is zero, and
// refreshes the standings.
func (s *LeagueService) Run(ctx context.Context, week int) (models.WeekDocument, error) {
	if week == 0 {
		next, err := s.NextWeek()
		if err != nil {
			return models.WeekDocument{}, err
		}
		week = next
	}
	doc, err := s.ScoreWeek(ctx, week)
	if err != nil {
		return models.WeekDocument{}, err
	}
	if _, err := s.RefreshStandings(); err != nil {
		return models.WeekDocument{}, fmt.Errorf("refreshing standings: %w", err)
	}
	return doc, nil
}

// Warm loads the latest stored results into the cache so the bot can answer
// before the next scoring run.
func (s *LeagueService) Warm() error {
	weeks, err := s.store.LoadWeeks()
	if err != nil {
		return err
	}
	for i := len(weeks) - 1; i >= 0; i-- {
		if weeks[i].HasScores {
			s.repo.SaveWeek(weeks[i], nil)
			break
		}
	}

	doc, err := s.store.LoadStandings()
	if err != nil {
		s.logger.Info("No stored standings yet", "error", err)
		return nil
	}
	s.repo.SaveStandings(doc)
	return nil
}
