// Package nflstats fetches one week of NFL statistics over HTTP.
package nflstats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/autoscorer/internal/models"
)

type API struct {
	client *Client
	logger *slog.Logger
}

func NewAPI(client *Client, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{client: client, logger: logger}
}

func weekEndpoint(season, week int, resource string) string {
	return fmt.Sprintf("/seasons/%d/weeks/%d/%s", season, week, resource)
}

// WeekFeed loads player stats, team stats, games and play-by-play for the
// week. Play-by-play is published later than the box scores, so a missing
// play-by-play resource leaves Plays nil instead of failing.
func (a *API) WeekFeed(ctx context.Context, season, week int) (models.WeekFeed, error) {
	feed := models.WeekFeed{Season: season, Week: week}

	if err := a.client.Get(ctx, weekEndpoint(season, week, "player_stats"), nil, &feed.Players); err != nil {
		return models.WeekFeed{}, fmt.Errorf("fetching player stats: %w", err)
	}
	if err := a.client.Get(ctx, weekEndpoint(season, week, "team_stats"), nil, &feed.Teams); err != nil {
		return models.WeekFeed{}, fmt.Errorf("fetching team stats: %w", err)
	}
	if err := a.client.Get(ctx, weekEndpoint(season, week, "games"), nil, &feed.Games); err != nil {
		return models.WeekFeed{}, fmt.Errorf("fetching games: %w", err)
	}

	var plays []models.Play
	err := a.client.Get(ctx, weekEndpoint(season, week, "pbp"), map[string]string{"filter": "scoring,sack,turnover"}, &plays)
	switch {
	case errors.Is(err, ErrNotFound):
		a.logger.Warn("Play-by-play not available", "season", season, "week", week)
	case err != nil:
		return models.WeekFeed{}, fmt.Errorf("fetching play-by-play: %w", err)
	default:
		if plays == nil {
			plays = []models.Play{}
		}
		feed.Plays = plays
	}

	a.logger.Info("Fetched week feed",
		"season", season,
		"week", week,
		"players", len(feed.Players),
		"teams", len(feed.Teams),
		"games", len(feed.Games),
		"plays", len(feed.Plays),
	)
	return feed, nil
}
