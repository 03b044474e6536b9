// Package stats resolves roster identities against one week of the NFL stats
// feed and derives the play-by-play signals the box score does not carry.
package stats

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/omarshaarawi/autoscorer/internal/scoring"
)

var (
	ErrNoGame       = errors.New("no game scheduled")
	ErrGameNotFinal = errors.New("game not final")
)

// teamAliases maps roster-side abbreviations to the feed's codes.
var teamAliases = map[string]string{
	"LAR": "LA",
	"JAC": "JAX",
	"WSH": "WAS",
	"OAK": "LV",
	"SD":  "LAC",
	"STL": "LA",
}

var nameSuffix = regexp.MustCompile(`(?i)\s+(Sr\.?|Jr\.?|II|III|IV|V)$`)

// Play-by-play position codes that count as offensive linemen.
var linePositions = map[string]bool{
	"T": true, "G": true, "C": true, "OT": true, "OG": true, "OL": true,
}

func NormalizeTeam(team string) string {
	team = strings.ToUpper(strings.TrimSpace(team))
	if canonical, ok := teamAliases[team]; ok {
		return canonical
	}
	return team
}

// CleanName trims the name and drops a trailing generational suffix.
func CleanName(name string) string {
	return nameSuffix.ReplaceAllString(strings.TrimSpace(name), "")
}

type GameInfo struct {
	GameID        string
	TeamScore     int
	OpponentScore int
	Opponent      string
	Coach         string
	IsHome        bool
}

func (g GameInfo) PointsAllowed() int {
	return g.OpponentScore
}

// SackCount holds both sack sources for a defense. PlayByPlay is only
// meaningful when HasPlayByPlay is set.
type SackCount struct {
	Aggregated    int
	PlayByPlay    int
	HasPlayByPlay bool
}

// Value is the count used for scoring: play-by-play when available.
func (s SackCount) Value() int {
	if s.HasPlayByPlay {
		return s.PlayByPlay
	}
	return s.Aggregated
}

func (s SackCount) Discrepancy() bool {
	return s.HasPlayByPlay && s.PlayByPlay != s.Aggregated
}

func (s SackCount) Note() string {
	return fmt.Sprintf("Sack discrepancy: aggregated=%d, PBP=%d (using PBP)", s.Aggregated, s.PlayByPlay)
}

// Resolver answers lookups against a single week's feed. It never mutates the
// feed and is safe for concurrent use once built.
type Resolver struct {
	feed    models.WeekFeed
	byTeam  map[string][]models.PlayerStats
	teams   map[string]models.TeamStats
	lostBy  map[string]int
	hasPlay bool
}

func NewResolver(feed models.WeekFeed) *Resolver {
	r := &Resolver{
		feed:    feed,
		byTeam:  make(map[string][]models.PlayerStats),
		teams:   make(map[string]models.TeamStats, len(feed.Teams)),
		lostBy:  make(map[string]int),
		hasPlay: feed.Plays != nil,
	}
	for _, p := range feed.Players {
		team := NormalizeTeam(p.Team)
		r.byTeam[team] = append(r.byTeam[team], p)
	}
	for _, t := range feed.Teams {
		r.teams[NormalizeTeam(t.Team)] = t
	}
	for _, play := range feed.Plays {
		if id := play.LostFumbleBy(); id != "" {
			r.lostBy[id]++
		}
	}
	return r
}

func (r *Resolver) Season() int { return r.feed.Season }
func (r *Resolver) Week() int   { return r.feed.Week }

func (r *Resolver) candidates(team string) []models.PlayerStats {
	team = NormalizeTeam(team)
	if team != "" {
		return r.byTeam[team]
	}
	return r.feed.Players
}

// FindPlayer locates a player's stat row. It tries an exact match on the
// display name, then a substring match, then a last-name match that must be
// unambiguous. All comparisons are case-insensitive and scoped to the team.
func (r *Resolver) FindPlayer(name, team string) (models.PlayerStats, bool) {
	clean := strings.ToLower(CleanName(name))
	if clean == "" {
		return models.PlayerStats{}, false
	}
	pool := r.candidates(team)

	for _, p := range pool {
		if strings.ToLower(p.DisplayName) == clean {
			return p, true
		}
	}
	for _, p := range pool {
		if strings.Contains(strings.ToLower(p.DisplayName), clean) {
			return p, true
		}
	}

	parts := strings.Fields(clean)
	if len(parts) < 2 {
		return models.PlayerStats{}, false
	}
	last := parts[len(parts)-1]
	var match models.PlayerStats
	hits := 0
	for _, p := range pool {
		if strings.Contains(strings.ToLower(p.DisplayName), last) {
			match = p
			hits++
		}
	}
	if hits == 1 {
		return match, true
	}
	return models.PlayerStats{}, false
}

// ClosestName suggests the most similar display name on the team for a
// player FindPlayer could not match.
func (r *Resolver) ClosestName(name, team string) (string, bool) {
	clean := strings.ToLower(CleanName(name))
	best := ""
	bestScore := 0.0
	threshold := 0.6

	for _, p := range r.candidates(team) {
		fullName := strings.ToLower(p.DisplayName)
		distance := fuzzy.LevenshteinDistance(clean, fullName)
		maxLen := float64(max(len(clean), len(fullName)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = p.DisplayName
		}
	}
	return best, best != ""
}

func (r *Resolver) TeamStats(team string) (models.TeamStats, bool) {
	t, ok := r.teams[NormalizeTeam(team)]
	return t, ok
}

// Game finds the team's game for the week. It returns ErrNoGame on a bye and
// ErrGameNotFinal while the score is still missing, so callers can tell
// "not played yet" apart from a real zero.
func (r *Resolver) Game(team string) (GameInfo, error) {
	team = NormalizeTeam(team)
	for _, g := range r.feed.Games {
		switch team {
		case g.HomeTeam:
			if g.HomeScore == nil || g.AwayScore == nil {
				return GameInfo{}, fmt.Errorf("%s vs %s: %w", g.HomeTeam, g.AwayTeam, ErrGameNotFinal)
			}
			return GameInfo{
				GameID:        g.GameID,
				TeamScore:     *g.HomeScore,
				OpponentScore: *g.AwayScore,
				Opponent:      g.AwayTeam,
				Coach:         g.HomeCoach,
				IsHome:        true,
			}, nil
		case g.AwayTeam:
			if g.HomeScore == nil || g.AwayScore == nil {
				return GameInfo{}, fmt.Errorf("%s at %s: %w", g.AwayTeam, g.HomeTeam, ErrGameNotFinal)
			}
			return GameInfo{
				GameID:        g.GameID,
				TeamScore:     *g.AwayScore,
				OpponentScore: *g.HomeScore,
				Opponent:      g.HomeTeam,
				Coach:         g.AwayCoach,
			}, nil
		}
	}
	return GameInfo{}, fmt.Errorf("%s week %d: %w", team, r.feed.Week, ErrNoGame)
}

func (r *Resolver) OpponentStats(team string) (models.TeamStats, bool) {
	game, err := r.Game(team)
	if err != nil {
		return models.TeamStats{}, false
	}
	return r.TeamStats(game.Opponent)
}

func (r *Resolver) DefensiveSacks(team string) SackCount {
	team = NormalizeTeam(team)
	count := SackCount{HasPlayByPlay: r.hasPlay}
	if t, ok := r.teams[team]; ok {
		count.Aggregated = int(math.Round(t.DefSacks))
	}
	for _, play := range r.feed.Plays {
		if play.Sack && NormalizeTeam(play.DefTeam) == team {
			count.PlayByPlay++
		}
	}
	return count
}

// TurnoverTouchdowns counts the player's interceptions and lost fumbles that
// the defense returned for a score.
func (r *Resolver) TurnoverTouchdowns(playerID string) scoring.TurnoverTDs {
	var tds scoring.TurnoverTDs
	if playerID == "" {
		return tds
	}
	for _, play := range r.feed.Plays {
		if !play.ReturnTouchdown() {
			continue
		}
		switch {
		case play.Interception && play.PasserPlayerID == playerID:
			tds.PickSixes++
		case play.LostFumbleBy() == playerID:
			tds.FumbleSixes++
		}
	}
	return tds
}

// ExtraFumblesLost returns lost fumbles charged to the player in the
// play-by-play that the aggregated row does not include, such as fumbles
// on laterals.
func (r *Resolver) ExtraFumblesLost(playerID string, row models.PlayerStats) int {
	if playerID == "" || !r.hasPlay {
		return 0
	}
	return max(0, r.lostBy[playerID]-row.FumblesLost())
}

func (r *Resolver) OffensiveLineTouchdowns(team string) int {
	team = NormalizeTeam(team)
	n := 0
	for _, play := range r.feed.Plays {
		if play.Touchdown && NormalizeTeam(play.TDTeam) == team && linePositions[strings.ToUpper(play.TDPlayerPosition)] {
			n++
		}
	}
	return n
}
