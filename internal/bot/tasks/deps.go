// Package tasks implements the scheduled tasks of the daemon mode.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/morningbot/internal/config"
)

// Greeter composes and delivers one morning greeting.
type Greeter interface {
	RunOnce(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Greeter Greeter
	Config  *config.Config
}
