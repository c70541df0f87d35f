package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const leaveGroupUsage = "The command is incorrect \nCorrect form is - /leave_group 'group name'"

// NewLeaveGroupHandler returns a handler for the /leave_group command, which
// makes the bot leave the named group chat.
func NewLeaveGroupHandler(deps HandlerDeps) bot.HandlerFunc {
	return leaveGroupHandler{deps}.Handle
}

type leaveGroupHandler struct {
	deps HandlerDeps
}

func (h leaveGroupHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "leave_group")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Leave group handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		reply(ctx, b, log, chatID, leaveGroupUsage, nil)
		return
	}
	groupName := strings.TrimSpace(parts[1])

	chat, err := h.deps.Store.GetChatByName(ctx, groupName)
	if err != nil {
		log.ErrorContext(ctx, "Failed to look up group chat", "name", groupName, "error", err)
		reply(ctx, b, log, chatID, "Something went wrong, please try again later.", nil)
		return
	}
	if chat == nil {
		reply(ctx, b, log, chatID, fmt.Sprintf("I don't know any group named %s!", groupName), nil)
		return
	}

	if _, err := b.LeaveChat(ctx, &bot.LeaveChatParams{ChatID: chat.ChatID}); err != nil {
		log.ErrorContext(ctx, "Failed to leave group chat", "chat_id", chat.ChatID, "error", err)
		reply(ctx, b, log, chatID, "Something went wrong, please try again later.", nil)
		return
	}

	log.InfoContext(ctx, "Left group chat", "chat_id", chat.ChatID, "name", groupName)
	reply(ctx, b, log, chatID, fmt.Sprintf("Bot has left the group: %s!", groupName), nil)
}
