package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/HAtherlolz/tg-bot-notification/internal/sweep"
)

// newCheckMessagesTask creates the scheduled task function for the
// unanswered-message sweep.
func newCheckMessagesTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "check_messages")
	engine := sweep.NewEngine(deps.Store, deps.Notifier, deps.Logger, deps.Config.Bot.AdminsGroupChatName)

	return func(ctx context.Context) error {
		log.DebugContext(ctx, "Starting message sweep tick...")
		startTime := time.Now()

		err := engine.Run(ctx)

		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Message sweep tick failed", "error", err, "duration", duration)
			return fmt.Errorf("message sweep failed: %w", err)
		}

		log.DebugContext(ctx, "Message sweep tick completed", "duration", duration)
		return nil
	}
}
