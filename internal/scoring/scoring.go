// Package scoring implements the league's position scoring rules. Every rule
// is a pure function of its stat input and returns the total together with
// the itemized breakdown it was summed from.
package scoring

import (
	"math"

	"github.com/omarshaarawi/autoscorer/internal/models"
)

type Result struct {
	Total     float64
	Breakdown models.Breakdown
}

// TurnoverTDs counts a player's turnovers that the defense returned for a score.
type TurnoverTDs struct {
	PickSixes   int
	FumbleSixes int
}

func (t TurnoverTDs) Count() int {
	return t.PickSixes + t.FumbleSixes
}

// DefenseInput carries everything a D/ST score needs. Sacks is the reconciled
// sack count, not the raw box-score value.
type DefenseInput struct {
	Team          models.TeamStats
	Opponent      models.TeamStats
	PointsAllowed int
	Sacks         int
}

func newResult(categories ...models.Category) Result {
	b := models.NewBreakdown(categories...)
	return Result{Total: b.Total(), Breakdown: b}
}

func cat(name string, points float64) models.Category {
	return models.Category{Name: name, Points: points}
}

// per returns one point for every full `every` yards, rounding toward
// negative infinity so that negative yardage costs points.
func per(yards, every int) float64 {
	return math.Floor(float64(yards) / float64(every))
}

func SkillPlayer(stats models.PlayerStats, turnoverTDs TurnoverTDs, extraFumbles int) Result {
	touchdowns := stats.PassingTDs + stats.RushingTDs + stats.ReceivingTDs + stats.FumbleRecoveryTDs
	turnovers := stats.PassingInterceptions + stats.FumblesLost() + extraFumbles
	twoPoint := stats.Passing2PtConversions + stats.Rushing2PtConversions + stats.Receiving2PtConversions

	return newResult(
		cat("passing_yards", per(stats.PassingYards, 25)),
		cat("rushing_yards", per(stats.RushingYards, 10)),
		cat("receiving_yards", per(stats.ReceivingYards, 10)),
		cat("touchdowns", float64(6*touchdowns)),
		cat("turnovers", float64(-2*turnovers)),
		cat("turnover_tds", float64(-4*turnoverTDs.Count())),
		cat("two_point_conversions", float64(2*twoPoint)),
	)
}

func Kicker(stats models.PlayerStats) Result {
	return newResult(
		cat("pat_made", float64(stats.PATMade)),
		cat("pat_missed", float64(-2*stats.PATMissed)),
		cat("pat_blocked", float64(-2*stats.PATBlocked)),
		cat("fg_1_29", float64(stats.FGMade0To19+stats.FGMade20To29)),
		cat("fg_30_39", float64(2*stats.FGMade30To39)),
		cat("fg_40_49", float64(3*stats.FGMade40To49)),
		cat("fg_50_59", float64(4*stats.FGMade50To59)),
		cat("fg_60+", float64(5*stats.FGMade60Plus)),
		cat("fg_missed", float64(-stats.FGMissed)),
		cat("fg_blocked", float64(-stats.FGBlocked)),
	)
}

type pointsAllowedTier struct {
	max    int
	points float64
}

// Upper bounds are inclusive; the first tier that fits wins.
var pointsAllowedTiers = []pointsAllowedTier{
	{0, 8},
	{9, 6},
	{13, 4},
	{17, 2},
	{27, 0},
	{31, -2},
	{35, -4},
}

func PointsAllowed(pointsAllowed int) float64 {
	for _, tier := range pointsAllowedTiers {
		if pointsAllowed <= tier.max {
			return tier.points
		}
	}
	return -6
}

func Defense(in DefenseInput) Result {
	interceptions := max(in.Team.DefInterceptions, in.Opponent.PassingInterceptions)
	// Own recoveries catch special-teams fumbles; the opponent's fumbles lost
	// catch recoveries that ended in a touchback.
	fumbleRecoveries := max(in.Team.FumbleRecoveryOpp, in.Opponent.FumblesLost())
	touchdowns := in.Team.DefTDs + in.Team.FumbleRecoveryTDs + in.Team.SpecialTeamsTDs

	return newResult(
		cat("points_allowed", PointsAllowed(in.PointsAllowed)),
		cat("interceptions", float64(2*interceptions)),
		cat("fumble_recoveries", float64(2*fumbleRecoveries)),
		cat("sacks", float64(in.Sacks)),
		cat("safeties", float64(2*in.Team.DefSafeties)),
		cat("blocked_kicks", float64(2*in.Opponent.FGBlocked)),
		cat("blocked_pats", float64(in.Opponent.PATBlocked)),
		cat("defensive_st_tds", float64(4*touchdowns)),
	)
}

func HeadCoach(teamScore, opponentScore int) Result {
	margin := teamScore - opponentScore
	switch {
	case margin > 0 && margin < 10:
		return newResult(cat("win_margin_<10", 2))
	case margin >= 10 && margin <= 19:
		return newResult(cat("win_margin_10-19", 3))
	case margin >= 20:
		return newResult(cat("win_margin_20+", 4))
	case margin < 0 && -margin < 10:
		return newResult(cat("loss_margin_<10", -1))
	case margin <= -10 && margin >= -20:
		return newResult(cat("loss_margin_10-20", -2))
	case margin < -20:
		return newResult(cat("loss_margin_20+", -3))
	}
	return newResult()
}

// OffensiveLine scores a team's line. Passing yards are net of sack yardage;
// SackYardsLost is reported as a negative number by the feed.
func OffensiveLine(stats models.TeamStats, olTouchdowns int) Result {
	netPassing := stats.PassingYards + stats.SackYardsLost

	return newResult(
		cat("passing_yards", per(netPassing, 100)),
		cat("rushing_yards", per(stats.RushingYards, 50)),
		cat("sacks_allowed", float64(-stats.SacksSuffered)),
		cat("ol_touchdowns", float64(6*olTouchdowns)),
	)
}
