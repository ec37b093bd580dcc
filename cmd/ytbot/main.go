package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ytbot/internal/adapters/telegram"
	"ytbot/internal/config"
	"ytbot/internal/flow"
	"ytbot/internal/jobs"
	"ytbot/internal/logger"
	"ytbot/internal/session"
	"ytbot/internal/storage"
)

func main() {
	cfg := config.Load()
	if cfg.Telegram.Token == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	lg := logger.New(cfg.Log.FilePath)
	defer func() { _ = lg.Sync() }()

	workdirs := storage.NewWorkdirs(cfg.Download.BaseDir)
	if err := workdirs.EnsureBase(); err != nil {
		lg.Fatal("failed to prepare download directory", zap.Error(err))
	}

	sessions := session.NewStore(cfg.SessionTTL)
	registry := jobs.NewRegistry(lg)

	api, err := telegram.NewAPI(cfg.Telegram.Token, cfg.Telegram.APIEndpoint)
	if err != nil {
		lg.Fatal("failed to connect to Telegram", zap.Error(err))
	}
	msg := telegram.NewMessenger(api)

	watcher := jobs.NewWatcher(msg, sessions, registry, workdirs,
		cfg.Download.MaxFileBytes, cfg.Download.AutoCleanup, lg)
	launcher := jobs.NewLauncher(jobs.LauncherConfig{
		YtDlpPath:   cfg.Download.YtDlpPath,
		Parallelism: cfg.Download.Parallelism,
		CookiesFile: cfg.Download.CookiesFile,
	}, registry, workdirs, watcher, msg, lg)

	fl := flow.New(sessions, registry, launcher, workdirs, msg, lg)
	bot := telegram.NewBot(api, fl, cfg.AllowedUserIDs, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("ytbot started",
		zap.String("download_dir", cfg.Download.BaseDir),
		zap.Bool("auto_cleanup", cfg.Download.AutoCleanup),
		zap.Int("allowed_users", len(cfg.AllowedUserIDs)))

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped", zap.Error(err))
	}
	lg.Info("shutdown complete")
}
