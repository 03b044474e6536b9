package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/autoscorer/internal/api/league"
	"github.com/omarshaarawi/autoscorer/internal/api/nflstats"
	"github.com/omarshaarawi/autoscorer/internal/bot"
	"github.com/omarshaarawi/autoscorer/internal/config"
	"github.com/omarshaarawi/autoscorer/internal/repository/file"
	"github.com/omarshaarawi/autoscorer/internal/repository/memory"
	"github.com/omarshaarawi/autoscorer/internal/scheduler"
	"github.com/omarshaarawi/autoscorer/internal/service"
	"github.com/omarshaarawi/autoscorer/internal/standings"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	tieBreak, err := standings.ParseTieBreak(cfg.League.TieBreak)
	if err != nil {
		return err
	}
	rules := cfg.Rules()
	logger := slog.Default().With("season", rules.Season)

	statsClient := nflstats.NewClient(cfg.Stats)
	statsAPI := nflstats.NewAPI(statsClient, logger)
	source := league.NewSource(cfg.League.DataDir, rules.Season, logger)
	store := file.NewStore(cfg.League.OutputDir, rules.Season)

	repo := memory.NewRepository()
	leagueService := service.NewLeagueService(statsAPI, source, store, repo, rules, tieBreak, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if week := cfg.Scheduler.RunOnceWeek; week > 0 {
		doc, err := leagueService.Run(ctx, week)
		if err != nil {
			return err
		}
		logger.Info("Scored week", "week", doc.Week, "run_id", doc.RunID, "output", cfg.League.OutputDir)
		return nil
	}

	if err := leagueService.Warm(); err != nil {
		logger.Error("Error loading stored results", "error", err)
	}

	var sendMessage func(string) error
	if cfg.TelegramBot.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, leagueService, logger)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				logger.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		logger.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Scheduler, leagueService, sendMessage, logger)
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			logger.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
			logger.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
