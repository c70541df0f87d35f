// Package tasks implements scheduled tasks for the notification bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"log/slog"

	"github.com/HAtherlolz/tg-bot-notification/internal/config"
	"github.com/HAtherlolz/tg-bot-notification/internal/database"
	"github.com/HAtherlolz/tg-bot-notification/internal/sweep"
)

// TaskDeps contains all dependencies required by scheduled tasks.
// It provides access to logging, the data store, the notification
// dispatcher, and configuration.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Notifier sweep.Notifier
	Config   *config.Config
}
