// Package playoffs defines the league's two-week playoff brackets and resolves
// them into final placements.
package playoffs

import (
	"fmt"

	"github.com/omarshaarawi/autoscorer/internal/config"
)

type Take string

const (
	TakeWinners Take = "winners"
	TakeLosers  Take = "losers"
)

// Game is one bracket game. A game either pairs two seeds directly or takes
// the winners or losers of two earlier games. Rounds are 1-based.
type Game struct {
	ID      string
	Round   int
	Bracket string
	Seeds   [2]int
	From    [2]string
	Take    Take
	// CumulativeWith names an earlier game between the same teams whose score
	// is added to this one.
	CumulativeWith string
	// Determines holds the placements for the winner and loser.
	Determines []int
}

func (g Game) Derived() bool {
	return g.From[0] != ""
}

// Pool ranks a group of teams by their total score over several rounds
// rather than head to head.
type Pool struct {
	ID         string
	Bracket    string
	Seeds      []int
	Rounds     []int
	Determines []int
}

type Bracket struct {
	Name  string
	Teams int
	Games []Game
	Pools []Pool
}

func (b Bracket) Game(id string) (Game, bool) {
	for _, g := range b.Games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

func (b Bracket) RoundGames(round int) []Game {
	var games []Game
	for _, g := range b.Games {
		if g.Round == round {
			games = append(games, g)
		}
	}
	return games
}

// TenTeam is the bracket used since the league grew to ten teams.
func TenTeam() Bracket {
	return Bracket{
		Name:  "ten_team",
		Teams: 10,
		Games: []Game{
			{ID: "semi_1", Round: 1, Bracket: "playoffs", Seeds: [2]int{1, 4}},
			{ID: "semi_2", Round: 1, Bracket: "playoffs", Seeds: [2]int{2, 3}},
			{ID: "mid_bowl_1", Round: 1, Bracket: "mid_bowl", Seeds: [2]int{5, 6}},
			{ID: "sewer_1", Round: 1, Bracket: "sewer_series", Seeds: [2]int{7, 10}},
			{ID: "sewer_2", Round: 1, Bracket: "sewer_series", Seeds: [2]int{8, 9}},

			{ID: "championship", Round: 2, Bracket: "championship", From: [2]string{"semi_1", "semi_2"}, Take: TakeWinners, Determines: []int{1, 2}},
			{ID: "consolation_cup", Round: 2, Bracket: "consolation_cup", From: [2]string{"semi_1", "semi_2"}, Take: TakeLosers, Determines: []int{3, 4}},
			{ID: "mid_bowl_2", Round: 2, Bracket: "mid_bowl", Seeds: [2]int{5, 6}, CumulativeWith: "mid_bowl_1", Determines: []int{5, 6}},
			{ID: "7th_place", Round: 2, Bracket: "7th_place", From: [2]string{"sewer_1", "sewer_2"}, Take: TakeWinners, Determines: []int{7, 8}},
			{ID: "toilet_bowl", Round: 2, Bracket: "toilet_bowl", From: [2]string{"sewer_1", "sewer_2"}, Take: TakeLosers, Determines: []int{9, 10}},
		},
	}
}

// EightTeamJamboree is the 2020 bracket. Seeds 5 through 8 play a two-week
// total-points jamboree instead of a consolation bracket.
func EightTeamJamboree() Bracket {
	return Bracket{
		Name:  "eight_team_jamboree",
		Teams: 8,
		Games: []Game{
			{ID: "semi_1", Round: 1, Bracket: "playoffs", Seeds: [2]int{1, 4}},
			{ID: "semi_2", Round: 1, Bracket: "playoffs", Seeds: [2]int{2, 3}},
			{ID: "jamboree_1", Round: 1, Bracket: "jamboree", Seeds: [2]int{5, 8}},
			{ID: "jamboree_2", Round: 1, Bracket: "jamboree", Seeds: [2]int{6, 7}},

			{ID: "championship", Round: 2, Bracket: "championship", From: [2]string{"semi_1", "semi_2"}, Take: TakeWinners, Determines: []int{1, 2}},
			{ID: "consolation_cup", Round: 2, Bracket: "consolation_cup", From: [2]string{"semi_1", "semi_2"}, Take: TakeLosers, Determines: []int{3, 4}},
			{ID: "jamboree_3", Round: 2, Bracket: "jamboree", Seeds: [2]int{5, 6}},
			{ID: "jamboree_4", Round: 2, Bracket: "jamboree", Seeds: [2]int{7, 8}},
		},
		Pools: []Pool{
			{ID: "jamboree", Bracket: "jamboree", Seeds: []int{5, 6, 7, 8}, Rounds: []int{1, 2}, Determines: []int{5, 6, 7, 8}},
		},
	}
}

// EightTeamSewer is the 2021 bracket: eight teams with a four-team sewer
// series feeding a fifth-place game and the toilet bowl.
func EightTeamSewer() Bracket {
	return Bracket{
		Name:  "eight_team_sewer",
		Teams: 8,
		Games: []Game{
			{ID: "semi_1", Round: 1, Bracket: "playoffs", Seeds: [2]int{1, 4}},
			{ID: "semi_2", Round: 1, Bracket: "playoffs", Seeds: [2]int{2, 3}},
			{ID: "sewer_1", Round: 1, Bracket: "sewer_series", Seeds: [2]int{5, 8}},
			{ID: "sewer_2", Round: 1, Bracket: "sewer_series", Seeds: [2]int{6, 7}},

			{ID: "championship", Round: 2, Bracket: "championship", From: [2]string{"semi_1", "semi_2"}, Take: TakeWinners, Determines: []int{1, 2}},
			{ID: "consolation_cup", Round: 2, Bracket: "consolation_cup", From: [2]string{"semi_1", "semi_2"}, Take: TakeLosers, Determines: []int{3, 4}},
			{ID: "5th_place", Round: 2, Bracket: "5th_place", From: [2]string{"sewer_1", "sewer_2"}, Take: TakeWinners, Determines: []int{5, 6}},
			{ID: "toilet_bowl", Round: 2, Bracket: "toilet_bowl", From: [2]string{"sewer_1", "sewer_2"}, Take: TakeLosers, Determines: []int{7, 8}},
		},
	}
}

func ForFormat(format config.BracketFormat) (Bracket, error) {
	switch format {
	case config.BracketTenTeam:
		return TenTeam(), nil
	case config.BracketEightTeamJamboree:
		return EightTeamJamboree(), nil
	case config.BracketEightTeamSewer:
		return EightTeamSewer(), nil
	}
	return Bracket{}, fmt.Errorf("unknown bracket format %q", format)
}
