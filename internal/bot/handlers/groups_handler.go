package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewGroupsHandler returns a handler for the /get_bot_groups command and the
// matching button, listing all group chats the bot has recorded.
func NewGroupsHandler(deps HandlerDeps) bot.HandlerFunc {
	return groupsHandler{deps}.Handle
}

type groupsHandler struct {
	deps HandlerDeps
}

func (h groupsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "get_bot_groups")

	chatID, _, ok := replyTarget(ctx, b, log, update)
	if !ok {
		log.WarnContext(ctx, "Groups handler could not determine reply target", "update_id", update.ID)
		return
	}

	groupChats, err := h.deps.Store.GetAllGroupChats(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list group chats", "error", err)
		reply(ctx, b, log, chatID, "Something went wrong, please try again later.", nil)
		return
	}

	if len(groupChats) == 0 {
		reply(ctx, b, log, chatID, "I am not in any group chats!", nil)
		return
	}

	names := make([]string, 0, len(groupChats))
	for _, chat := range groupChats {
		names = append(names, chat.Name)
	}

	reply(ctx, b, log, chatID,
		"Here are the groups I am in:\n\n"+strings.Join(names, "\n")+"\n", nil)
}
