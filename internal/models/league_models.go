package models

type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "D/ST"
	PositionHC  Position = "HC"
	PositionOL  Position = "OL"
)

// Positions lists roster buckets in display order.
var Positions = []Position{
	PositionQB, PositionRB, PositionWR, PositionTE,
	PositionK, PositionDST, PositionHC, PositionOL,
}

func ParsePosition(s string) (Position, bool) {
	for _, p := range Positions {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

func (p Position) IsSkill() bool {
	return p == PositionQB || p == PositionRB || p == PositionWR || p == PositionTE
}

type RosterEntry struct {
	Name      string
	NFLTeam   string
	IsStarter bool
}

// FantasyTeam is a league team's roster for one week. Abbreviation is the
// team's identity; Name and Owner can change between seasons.
type FantasyTeam struct {
	Name         string
	Owner        string
	Abbreviation string
	Players      map[Position][]RosterEntry
}

func (t FantasyTeam) StarterCount() int {
	n := 0
	for _, entries := range t.Players {
		for _, e := range entries {
			if e.IsStarter {
				n++
			}
		}
	}
	return n
}

type PlayerScore struct {
	Name         string
	Position     Position
	NFLTeam      string
	TotalPoints  float64
	Breakdown    Breakdown
	FoundInStats bool
	DataNotes    []string
}

type ScoredPlayer struct {
	Score     PlayerScore
	IsStarter bool
}

type PositionScores struct {
	Position Position
	Players  []ScoredPlayer
}

// TeamScores holds a team's scored roster grouped by position, in display order.
type TeamScores []PositionScores

func (s TeamScores) Position(pos Position) []ScoredPlayer {
	for _, ps := range s {
		if ps.Position == pos {
			return ps.Players
		}
	}
	return nil
}

type TeamResult struct {
	Team   FantasyTeam
	Total  float64
	Scores TeamScores
}

type StandingsRow struct {
	Name          string  `json:"name"`
	Owner         string  `json:"owner"`
	Abbrev        string  `json:"abbrev"`
	RankPoints    float64 `json:"rank_points"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	TopHalf       float64 `json:"top_half"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

func (r StandingsRow) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// Lineup lists a team's declared starters for one week, by position.
type Lineup map[Position][]string
