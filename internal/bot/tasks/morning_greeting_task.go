package tasks

import (
	"context"
	"fmt"
	"time"
)

// newMorningGreetingTask creates the scheduled task that sends the daily greeting.
func newMorningGreetingTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "morning_greeting")
	if deps.Config != nil {
		log = log.With("timezone", deps.Config.Timezone)
	}

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting scheduled morning greeting...")
		startTime := time.Now()

		err := deps.Greeter.RunOnce(ctx)
		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Morning greeting failed", "error", err, "duration", duration)
			return fmt.Errorf("morning greeting failed: %w", err)
		}

		log.InfoContext(ctx, "Morning greeting completed", "duration", duration)
		return nil
	}
}
