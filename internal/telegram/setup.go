// Package telegram delivers the composed greeting through the Telegram Bot API.
package telegram

import (
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/edgard/morningbot/internal/config"
)

// NewTelegramBot creates a go-telegram/bot instance for outbound calls only.
// The bot never polls for updates, so the startup getMe round trip is skipped.
func NewTelegramBot(cfg config.TelegramConfig, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	base := []bot.Option{bot.WithSkipGetMe()}
	if cfg.ServerURL != "" {
		base = append(base, bot.WithServerURL(cfg.ServerURL))
	}

	b, err := bot.New(cfg.Token, append(base, opts...)...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Debug("Telegram bot instance created", "server_url", cfg.ServerURL)
	return b, nil
}
