package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/autoscorer/internal/config"
	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/robfig/cron/v3"
)

// Runner is the weekly work the scheduler triggers.
type Runner interface {
	Run(ctx context.Context, week int) (models.WeekDocument, error)
	WeeklyReport() (string, error)
	StandingsReport() (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	runner      Runner
	sendMessage func(string) error
	cfg         config.Scheduler
	location    *time.Location
	logger      *slog.Logger
}

// NewScheduler validates the cron expressions up front so a typo fails at
// startup instead of silently never firing. sendMessage may be nil, in which
// case reports are only logged.
func NewScheduler(cfg config.Scheduler, runner Runner, sendMessage func(string) error, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("Failed to load location", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	for name, spec := range map[string]string{"score": cfg.ScoreCron, "standings": cfg.StandingsCron} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return nil, fmt.Errorf("invalid %s cron %q: %w", name, spec, err)
		}
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		runner:      runner,
		sendMessage: sendMessage,
		cfg:         cfg,
		location:    location,
		logger:      logger,
	}, nil
}

// NextRun reports when a standard cron expression next fires after from.
func NextRun(spec string, from time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	// Score the next week and post results - default Tuesday 7:30 CT
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.ScoreCron, false),
		gocron.NewTask(s.scoreAndPost, ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create score job: %w", err)
	}

	// Current standings - default Wednesday 7:30 CT
	_, err = s.s.NewJob(
		gocron.CronJob(s.cfg.StandingsCron, false),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings job: %w", err)
	}

	s.s.Start()

	now := time.Now().In(s.location)
	if next, err := NextRun(s.cfg.ScoreCron, now); err == nil {
		s.logger.Info("Scheduler started", "next_score_run", next.Format(time.RFC1123))
	}
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) send(text string) {
	if s.sendMessage == nil {
		s.logger.Info("Report", "text", text)
		return
	}
	if err := s.sendMessage(text); err != nil {
		s.logger.Error("Failed to send report", "error", err)
	}
}

func (s *Scheduler) scoreAndPost(ctx context.Context) {
	doc, err := s.runner.Run(ctx, 0)
	if err != nil {
		s.logger.Error("Failed to score week", "error", err)
		return
	}
	s.logger.Info("Scheduled run finished", "week", doc.Week, "run_id", doc.RunID)

	report, err := s.runner.WeeklyReport()
	if err != nil {
		s.logger.Error("Failed to build weekly report", "error", err)
		return
	}
	s.send(report)
}

func (s *Scheduler) sendStandings() {
	standings, err := s.runner.StandingsReport()
	if err != nil {
		s.logger.Error("Failed to get standings", "error", err)
		return
	}
	s.send(standings)
}
