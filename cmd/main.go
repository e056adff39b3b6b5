package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	"flood-report-bot/config"
	telegram "flood-report-bot/internal/api"
	"flood-report-bot/internal/api/status"
	"flood-report-bot/internal/container"
	"flood-report-bot/internal/infrastructure/scheduler"
	"flood-report-bot/internal/metrics"
)

// version задаётся при сборке через -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	setupLogging(cfg.LogFormat, cfg.LogLevel)
	metrics.Register()

	// Собираем сервисы приложения
	appContainer, err := container.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to build services")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Служебный HTTP-сервер
	router := status.NewRouter(status.Info{
		Version:  version,
		Provider: cfg.AnalyzerProvider,
		Started:  time.Now().UTC(),
	}, appContainer.ReportRepo.Count)
	statusServer := status.NewServer(cfg.StatusAddr, router)
	statusServer.Start()

	// Очистка брошенных отчётов
	sweeper, err := scheduler.NewSweeper(cfg.SessionSweepSchedule, appContainer.Reports, cfg.SessionIdleTTL)
	if err != nil {
		log.WithError(err).Fatal("failed to schedule session sweeper")
	}
	sweeper.Start()

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.Reports, telegram.Options{
		Language:      appContainer.Language,
		MaxImageBytes: appContainer.MaxImageBytes,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create bot")
	}

	log.WithFields(log.Fields{
		"analyzer": cfg.AnalyzerProvider,
		"language": appContainer.Language,
		"version":  version,
	}).Info("bot is running")

	if err := bot.Run(ctx); err != nil {
		log.WithError(err).Error("bot stopped with error")
	}

	log.Info("shutting down")
	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := statusServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("status server shutdown failed")
	}
}

func setupLogging(format, level string) {
	if format == "json" {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(text.New(os.Stderr))
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
