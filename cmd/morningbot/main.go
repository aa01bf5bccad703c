// Package main contains the entrypoint for the morning greeting bot.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/edgard/morningbot/internal/bot"
	"github.com/edgard/morningbot/internal/bot/tasks"
	"github.com/edgard/morningbot/internal/config"
	"github.com/edgard/morningbot/internal/logger"
	"github.com/edgard/morningbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run loads configuration, wires the pipeline and either sends one greeting or
// keeps sending them on schedule. It returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	daemon := flag.Bool("daemon", false, "Keep running and send the greeting on the configured schedule")
	dryRun := flag.Bool("dry-run", false, "Compose the greeting and log it without sending")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON, cfg.Logger.File)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON, "file", cfg.Logger.File)
	log.Debug("Configuration loaded", "config", cfg)

	tg, err := telegram.NewClient(cfg.Telegram, log)
	if err != nil {
		log.Error("Failed to create Telegram client", "error", err)
		return 1
	}

	greeter := bot.NewGreeter(cfg, tg, log, bot.WithDryRun(*dryRun))

	if !*daemon {
		if err := greeter.RunOnce(ctx); err != nil {
			return 1
		}
		return 0
	}

	if _, ok := cfg.Task(config.MorningTaskName); !ok {
		log.Warn("Daemon started without an enabled morning greeting task", "task_name", config.MorningTaskName)
	}

	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Greeter: greeter, Config: cfg})
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, cfg.Location, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	log.Info("Starting daemon...", "timezone", cfg.Timezone)
	if err := bot.NewBot(log, sched).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Daemon stopped due to error", "error", err)
		return 1
	}

	log.Info("Daemon stopped gracefully.")
	return 0
}
