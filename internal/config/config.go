package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":80"`
	League      League
	Stats       Stats
	Scheduler   Scheduler
	TelegramBot TelegramBot
}

type League struct {
	Season    int    `envconfig:"SEASON" required:"true"`
	DataDir   string `envconfig:"DATA_DIR" default:"data"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"web/data"`
	TieBreak  string `envconfig:"TIEBREAK" default:"none"`
	// Zero keeps the season's own multiplier.
	TopHalfMultiplier float64 `envconfig:"TOP_HALF_MULTIPLIER"`
}

type Stats struct {
	BaseURL string        `envconfig:"STATS_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"STATS_TIMEOUT" default:"15s"`
}

type Scheduler struct {
	ScoreCron     string `envconfig:"SCORE_CRON" default:"30 7 * * 2"`
	StandingsCron string `envconfig:"STANDINGS_CRON" default:"30 7 * * 3"`
	Timezone      string `envconfig:"TIMEZONE" default:"America/Chicago"`
	// RunOnceWeek scores that week and exits instead of scheduling.
	RunOnceWeek int `envconfig:"RUN_ONCE_WEEK"`
}

// TelegramBot is optional; the bot stays off without a token.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Rules returns the season's league rules with any env overrides applied.
func (c *Config) Rules() SeasonRules {
	rules := RulesFor(c.League.Season)
	if c.League.TopHalfMultiplier > 0 {
		rules.TopHalfMultiplier = c.League.TopHalfMultiplier
	}
	return rules
}
