package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const ignoreUsage = "The command is incorrect \nCorrect form is - /ignore 'username'"

// NewIgnoreHandler returns a handler for the /ignore command, which adds a
// username to the escalation ignore list.
func NewIgnoreHandler(deps HandlerDeps) bot.HandlerFunc {
	return ignoreHandler{deps}.Handle
}

type ignoreHandler struct {
	deps HandlerDeps
}

func (h ignoreHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "ignore")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Ignore handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) != 2 {
		reply(ctx, b, log, chatID, ignoreUsage, nil)
		return
	}

	username := strings.TrimPrefix(parts[1], "@")

	added, err := h.deps.Store.AddIgnoredUser(ctx, username)
	if err != nil {
		log.ErrorContext(ctx, "Failed to add ignored user", "username", username, "error", err)
		reply(ctx, b, log, chatID, "Something went wrong, please try again later.", nil)
		return
	}

	log.InfoContext(ctx, "Ignore command processed", "username", username, "added", added)

	if added {
		reply(ctx, b, log, chatID,
			fmt.Sprintf("The messages from %s will be ignored, and won't notify", username), nil)
	} else {
		reply(ctx, b, log, chatID,
			fmt.Sprintf("The user with username %s is already in ignore list", username), nil)
	}
}
