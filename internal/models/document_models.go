package models

// WeekDocument is the persisted JSON shape of one scored week.
type WeekDocument struct {
	Week      int           `json:"week"`
	ScoredAt  string        `json:"scored_at,omitempty"`
	RunID     string        `json:"run_id,omitempty"`
	Teams     []WeekTeam    `json:"teams"`
	Matchups  []WeekMatchup `json:"matchups"`
	HasScores bool          `json:"has_scores"`
}

type WeekTeam struct {
	Name       string       `json:"name"`
	Owner      string       `json:"owner,omitempty"`
	Abbrev     string       `json:"abbrev"`
	Roster     []WeekPlayer `json:"roster"`
	TotalScore float64      `json:"total_score"`
	ScoreRank  int          `json:"score_rank,omitempty"`
}

type WeekPlayer struct {
	Name         string    `json:"name"`
	NFLTeam      string    `json:"nfl_team"`
	Position     string    `json:"position"`
	Score        float64   `json:"score"`
	Starter      bool      `json:"starter"`
	FoundInStats bool      `json:"found_in_stats"`
	Breakdown    Breakdown `json:"breakdown,omitempty"`
	Notes        []string  `json:"notes,omitempty"`
}

type WeekMatchup struct {
	Team1   string `json:"team1"`
	Team2   string `json:"team2"`
	Bracket string `json:"bracket,omitempty"`
	Game    string `json:"game,omitempty"`
}

// Team returns the team with the given abbreviation.
func (d WeekDocument) Team(abbrev string) (WeekTeam, bool) {
	for _, t := range d.Teams {
		if t.Abbrev == abbrev {
			return t, true
		}
	}
	return WeekTeam{}, false
}

// Scores maps each team abbreviation to its total for the week.
func (d WeekDocument) Scores() map[string]float64 {
	scores := make(map[string]float64, len(d.Teams))
	for _, t := range d.Teams {
		scores[t.Abbrev] = t.TotalScore
	}
	return scores
}

type StandingsDocument struct {
	Season         int            `json:"season"`
	UpdatedAt      string         `json:"updated_at"`
	ThroughWeek    int            `json:"through_week"`
	Standings      []StandingsRow `json:"standings"`
	UnresolvedTies [][]string     `json:"unresolved_ties,omitempty"`
}
