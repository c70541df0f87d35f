package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = "Here are the available commands:\n" +
	"/start - Start the bot\n" +
	"/help - Show help message\n" +
	"/set_moderator - Make me a moderator\n" +
	"/get_all_moderators - Get all moderators\n" +
	"/ignore {username you want to ignore} - Set user's username to ignore for notification list\n" +
	"/get_bot_groups - Get all groups bot in\n" +
	"/leave_group {group name} - Make the bot leave the named group\n"

// NewHelpHandler returns a handler for the /help command and the Help button.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return helpHandler{deps}.Handle
}

type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	chatID, _, ok := replyTarget(ctx, b, log, update)
	if !ok {
		log.WarnContext(ctx, "Help handler could not determine reply target", "update_id", update.ID)
		return
	}

	reply(ctx, b, log, chatID, helpText, nil)
}
