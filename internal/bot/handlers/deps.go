// Package handlers contains Telegram bot command handlers, the default
// message-ingestion handler, and their registration logic.
package handlers

import (
	"log/slog"

	"github.com/HAtherlolz/tg-bot-notification/internal/config"
	"github.com/HAtherlolz/tg-bot-notification/internal/database"
)

// HandlerDeps contains all dependencies required by bot handlers.
// It provides access to logging, the data store, and configuration.
type HandlerDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
