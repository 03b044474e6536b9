// Package league reads the league's own data files: rosters, team info,
// weekly lineups and the schedule.
package league

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/omarshaarawi/autoscorer/internal/schedule"
)

var ErrUnknownPosition = errors.New("unknown roster position")

type RosterPlayer struct {
	Name     string `json:"name" validate:"required"`
	NFLTeam  string `json:"nfl_team" validate:"required"`
	Position string `json:"position" validate:"required"`
	Taxi     bool   `json:"taxi"`
}

type TeamInfo struct {
	Name  string `json:"name" validate:"required"`
	Owner string `json:"owner"`
}

type lineupFile struct {
	Week    int                   `json:"week" validate:"min=1"`
	Lineups map[string]teamLineup `json:"lineups" validate:"required"`
}

type teamLineup struct {
	Starters    models.Lineup
	SubmittedAt string
	Comment     string
}

func (l *teamLineup) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Starters = make(models.Lineup)
	for key, value := range raw {
		switch key {
		case "submitted_at":
			if err := json.Unmarshal(value, &l.SubmittedAt); err != nil {
				return fmt.Errorf("submitted_at: %w", err)
			}
			continue
		case "comment":
			if err := json.Unmarshal(value, &l.Comment); err != nil {
				return fmt.Errorf("comment: %w", err)
			}
			continue
		}
		pos, ok := models.ParsePosition(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPosition, key)
		}
		var names []string
		if err := json.Unmarshal(value, &names); err != nil {
			return fmt.Errorf("%s starters: %w", key, err)
		}
		l.Starters[pos] = names
	}
	return nil
}

// Source is the roster and lineup source backed by the league data
// directory.
type Source struct {
	dir      string
	season   int
	validate *validator.Validate
	logger   *slog.Logger
}

func NewSource(dataDir string, season int, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		dir:      dataDir,
		season:   season,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *Source) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// Rosters returns every team's roster keyed by team abbreviation.
func (s *Source) Rosters() (map[string][]RosterPlayer, error) {
	var rosters map[string][]RosterPlayer
	if err := s.readJSON("rosters.json", &rosters); err != nil {
		return nil, fmt.Errorf("loading rosters: %w", err)
	}
	for abbrev, players := range rosters {
		for i, p := range players {
			if err := s.validate.Struct(p); err != nil {
				return nil, fmt.Errorf("roster %s entry %d: %w", abbrev, i, err)
			}
			if _, ok := models.ParsePosition(p.Position); !ok {
				return nil, fmt.Errorf("roster %s player %s: %w: %q", abbrev, p.Name, ErrUnknownPosition, p.Position)
			}
		}
	}
	return rosters, nil
}

// Teams returns team names and owners. The file is optional.
func (s *Source) Teams() (map[string]TeamInfo, error) {
	var teams map[string]TeamInfo
	err := s.readJSON("teams.json", &teams)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]TeamInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	for abbrev, info := range teams {
		if err := s.validate.Struct(info); err != nil {
			return nil, fmt.Errorf("team %s: %w", abbrev, err)
		}
	}
	return teams, nil
}

func (s *Source) lineupPath(week int) string {
	return filepath.Join("lineups", fmt.Sprint(s.season), fmt.Sprintf("week_%d.json", week))
}

// Lineups returns each team's declared starters for the week.
func (s *Source) Lineups(week int) (map[string]models.Lineup, error) {
	var file lineupFile
	if err := s.readJSON(s.lineupPath(week), &file); err != nil {
		return nil, fmt.Errorf("loading week %d lineups: %w", week, err)
	}
	if err := s.validate.Struct(file); err != nil {
		return nil, fmt.Errorf("week %d lineups: %w", week, err)
	}
	if file.Week != week {
		s.logger.Warn("Lineup file week mismatch", "file_week", file.Week, "week", week)
	}

	lineups := make(map[string]models.Lineup, len(file.Lineups))
	for abbrev, l := range file.Lineups {
		lineups[abbrev] = l.Starters
	}
	return lineups, nil
}

// Schedule parses schedule.txt for the season.
func (s *Source) Schedule() ([]schedule.Week, error) {
	return schedule.ParseFile(filepath.Join(s.dir, "schedule.txt"))
}

// FantasyTeams builds every team's week roster. Taxi players are left out and
// a player starts when named in the team's lineup. Teams come back
// sorted by abbreviation.
func (s *Source) FantasyTeams(week int) ([]models.FantasyTeam, error) {
	rosters, err := s.Rosters()
	if err != nil {
		return nil, err
	}
	info, err := s.Teams()
	if err != nil {
		return nil, err
	}
	lineups, err := s.Lineups(week)
	if err != nil {
		return nil, err
	}

	abbrevs := make([]string, 0, len(rosters))
	for abbrev := range rosters {
		abbrevs = append(abbrevs, abbrev)
	}
	slices.Sort(abbrevs)

	teams := make([]models.FantasyTeam, 0, len(abbrevs))
	for _, abbrev := range abbrevs {
		if _, ok := lineups[abbrev]; !ok {
			s.logger.Warn("No lineup submitted", "team", abbrev, "week", week)
		}
		teams = append(teams, BuildTeam(abbrev, rosters[abbrev], lineups[abbrev], info[abbrev]))
	}
	return teams, nil
}

// BuildTeam assembles a FantasyTeam from its roster, lineup and info.
func BuildTeam(abbrev string, roster []RosterPlayer, lineup models.Lineup, info TeamInfo) models.FantasyTeam {
	starters := make(map[string]bool)
	for _, names := range lineup {
		for _, name := range names {
			starters[name] = true
		}
	}

	name := info.Name
	if name == "" {
		name = abbrev
	}
	team := models.FantasyTeam{
		Name:         name,
		Owner:        info.Owner,
		Abbreviation: abbrev,
		Players:      make(map[models.Position][]models.RosterEntry),
	}
	for _, p := range roster {
		if p.Taxi {
			continue
		}
		pos := models.Position(p.Position)
		team.Players[pos] = append(team.Players[pos], models.RosterEntry{
			Name:      p.Name,
			NFLTeam:   p.NFLTeam,
			IsStarter: starters[p.Name],
		})
	}
	return team
}
