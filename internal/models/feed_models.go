package models

// WeekFeed is one week of the NFL stats feed. Plays is nil when play-by-play
// data has not been published for the week yet.
type WeekFeed struct {
	Season  int           `json:"season"`
	Week    int           `json:"week"`
	Players []PlayerStats `json:"players"`
	Teams   []TeamStats   `json:"teams"`
	Games   []Game        `json:"games"`
	Plays   []Play        `json:"plays"`
}

type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"player_display_name"`
	Position    string `json:"position"`
	Team        string `json:"team"`

	PassingYards          int `json:"passing_yards"`
	PassingTDs            int `json:"passing_tds"`
	PassingInterceptions  int `json:"passing_interceptions"`
	Passing2PtConversions int `json:"passing_2pt_conversions"`
	SackFumblesLost       int `json:"sack_fumbles_lost"`

	RushingYards          int `json:"rushing_yards"`
	RushingTDs            int `json:"rushing_tds"`
	RushingFumblesLost    int `json:"rushing_fumbles_lost"`
	Rushing2PtConversions int `json:"rushing_2pt_conversions"`

	ReceivingYards          int `json:"receiving_yards"`
	ReceivingTDs            int `json:"receiving_tds"`
	ReceivingFumblesLost    int `json:"receiving_fumbles_lost"`
	Receiving2PtConversions int `json:"receiving_2pt_conversions"`

	FumbleRecoveryTDs int `json:"fumble_recovery_tds"`

	PATMade    int `json:"pat_made"`
	PATMissed  int `json:"pat_missed"`
	PATBlocked int `json:"pat_blocked"`

	FGMade0To19  int `json:"fg_made_0_19"`
	FGMade20To29 int `json:"fg_made_20_29"`
	FGMade30To39 int `json:"fg_made_30_39"`
	FGMade40To49 int `json:"fg_made_40_49"`
	FGMade50To59 int `json:"fg_made_50_59"`
	FGMade60Plus int `json:"fg_made_60_"`
	FGMissed     int `json:"fg_missed"`
	FGBlocked    int `json:"fg_blocked"`
}

// FumblesLost is the aggregated fumbles lost across sack, rush and reception.
func (p PlayerStats) FumblesLost() int {
	return p.SackFumblesLost + p.RushingFumblesLost + p.ReceivingFumblesLost
}

type TeamStats struct {
	Team string `json:"team"`

	PassingYards         int `json:"passing_yards"`
	SackYardsLost        int `json:"sack_yards_lost"`
	RushingYards         int `json:"rushing_yards"`
	SacksSuffered        int `json:"sacks_suffered"`
	PassingInterceptions int `json:"passing_interceptions"`
	SackFumblesLost      int `json:"sack_fumbles_lost"`
	RushingFumblesLost   int `json:"rushing_fumbles_lost"`
	ReceivingFumblesLost int `json:"receiving_fumbles_lost"`

	DefInterceptions  int     `json:"def_interceptions"`
	DefSacks          float64 `json:"def_sacks"`
	DefSafeties       int     `json:"def_safeties"`
	DefTDs            int     `json:"def_tds"`
	FumbleRecoveryOpp int     `json:"fumble_recovery_opp"`
	FumbleRecoveryTDs int     `json:"fumble_recovery_tds"`
	SpecialTeamsTDs   int     `json:"special_teams_tds"`

	FGBlocked  int `json:"fg_blocked"`
	PATBlocked int `json:"pat_blocked"`
}

func (t TeamStats) FumblesLost() int {
	return t.SackFumblesLost + t.RushingFumblesLost + t.ReceivingFumblesLost
}

// Game is a scheduled NFL game. Scores stay nil until the game is final.
type Game struct {
	GameID    string `json:"game_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	HomeCoach string `json:"home_coach"`
	AwayCoach string `json:"away_coach"`
}

type Play struct {
	GameID  string `json:"game_id"`
	PlayID  int    `json:"play_id"`
	PosTeam string `json:"posteam"`
	DefTeam string `json:"defteam"`

	Sack         bool `json:"sack"`
	Interception bool `json:"interception"`
	FumbleLost   bool `json:"fumble_lost"`
	Touchdown    bool `json:"touchdown"`

	TDTeam           string `json:"td_team"`
	TDPlayerID       string `json:"td_player_id"`
	TDPlayerPosition string `json:"td_player_position"`
	PasserPlayerID   string `json:"passer_player_id"`
	Fumbled1PlayerID string `json:"fumbled_1_player_id"`
	Fumbled2PlayerID string `json:"fumbled_2_player_id"`
}

// ReturnTouchdown reports whether the defense scored on the play.
func (p Play) ReturnTouchdown() bool {
	return p.Touchdown && p.TDTeam != "" && p.TDTeam == p.DefTeam
}

// LostFumbleBy returns the player charged with the lost fumble: the last
// ball carrier to fumble, which on a lateral is the second fumbler.
func (p Play) LostFumbleBy() string {
	if !p.FumbleLost {
		return ""
	}
	if p.Fumbled2PlayerID != "" {
		return p.Fumbled2PlayerID
	}
	return p.Fumbled1PlayerID
}
