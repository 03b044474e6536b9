package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/omarshaarawi/autoscorer/internal/config"
	"github.com/omarshaarawi/autoscorer/internal/models"
)

type fakeRunner struct {
	runErr error
	weeks  []int
}

func (f *fakeRunner) Run(ctx context.Context, week int) (models.WeekDocument, error) {
	f.weeks = append(f.weeks, week)
	if f.runErr != nil {
		return models.WeekDocument{}, f.runErr
	}
	return models.WeekDocument{Week: 4, RunID: "run"}, nil
}

func (f *fakeRunner) WeeklyReport() (string, error)    { return "weekly", nil }
func (f *fakeRunner) StandingsReport() (string, error) { return "standings", nil }

func testConfig() config.Scheduler {
	return config.Scheduler{ScoreCron: "30 7 * * 2", StandingsCron: "30 7 * * 3", Timezone: "America/Chicago"}
}

func newTestScheduler(t *testing.T, runner Runner, send func(string) error) *Scheduler {
	t.Helper()
	s, err := NewScheduler(testConfig(), runner, send, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s
}

func TestNewScheduler_InvalidCron(t *testing.T) {
	cfg := testConfig()
	cfg.ScoreCron = "every tuesday"
	if _, err := NewScheduler(cfg, &fakeRunner{}, nil, nil); err == nil {
		t.Error("expected error for invalid cron")
	}
}

func TestNextRun(t *testing.T) {
	// Monday 2025-09-08 12:00 UTC.
	from := time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC)
	next, err := NextRun("30 7 * * 2", from)
	if err != nil {
		t.Fatalf("NextRun: %v", err)
	}
	want := time.Date(2025, 9, 9, 7, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("NextRun = %v, want %v", next, want)
	}
}

func TestScoreAndPost(t *testing.T) {
	runner := &fakeRunner{}
	var sent []string
	s := newTestScheduler(t, runner, func(text string) error {
		sent = append(sent, text)
		return nil
	})

	s.scoreAndPost(context.Background())
	if len(runner.weeks) != 1 || runner.weeks[0] != 0 {
		t.Errorf("Run weeks = %v, want [0] for the next unscored week", runner.weeks)
	}
	if len(sent) != 1 || sent[0] != "weekly" {
		t.Errorf("sent = %v, want the weekly report", sent)
	}

	s.sendStandings()
	if len(sent) != 2 || sent[1] != "standings" {
		t.Errorf("sent = %v, want standings posted", sent)
	}
}

func TestScoreAndPost_RunFails(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("feed down")}
	sent := 0
	s := newTestScheduler(t, runner, func(string) error {
		sent++
		return nil
	})

	s.scoreAndPost(context.Background())
	if sent != 0 {
		t.Errorf("sent %d messages after a failed run, want 0", sent)
	}
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler(t, &fakeRunner{}, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
