package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/morningbot/internal/config"
)

// ErrDelivery wraps every failed send.
var ErrDelivery = errors.New("telegram delivery failed")

// Client sends messages to the single configured chat.
type Client struct {
	bot     *bot.Bot
	chatID  string
	timeout time.Duration
	log     *slog.Logger
}

// NewClient builds a Client from the Telegram settings.
func NewClient(cfg config.TelegramConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram chat id cannot be empty")
	}

	b, err := NewTelegramBot(cfg, logger)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTelegramTimeout
	}

	return &Client{
		bot:     b,
		chatID:  cfg.ChatID,
		timeout: timeout,
		log:     logger.With("component", "telegram_client", "chat_id", cfg.ChatID),
	}, nil
}

// ChatID returns the destination chat.
func (c *Client) ChatID() string {
	return c.chatID
}

// SendText posts a plain text message.
func (c *Client) SendText(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: c.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("%w: sendMessage: %w", ErrDelivery, err)
	}

	c.log.Debug("Sent text message", "message_id", msg.ID, "chars", len([]rune(text)))
	return nil
}

// SendPhoto uploads data as a photo with the given caption.
func (c *Client) SendPhoto(ctx context.Context, filename string, data []byte, caption string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: c.chatID,
		Photo: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("%w: sendPhoto: %w", ErrDelivery, err)
	}

	c.log.Debug("Sent photo", "message_id", msg.ID, "bytes", len(data))
	return nil
}
