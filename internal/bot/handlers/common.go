package handlers

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Callback data values for the /start inline keyboard.
const (
	callbackHelp           = "help"
	callbackSetModerator   = "set_moderator"
	callbackModeratorsList = "get_all_moderators"
	callbackBotGroups      = "get_bot_groups"
)

// replyTarget extracts the chat to reply to and the invoking user from
// either a message or a callback-query update. Callback queries are answered
// before returning so the client stops showing a progress indicator.
func replyTarget(ctx context.Context, b *tgbot.Bot, log *slog.Logger, update *models.Update) (int64, *models.User, bool) {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.Chat.ID, update.Message.From, true
	}

	if update.CallbackQuery != nil {
		if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		}); err != nil {
			log.WarnContext(ctx, "Failed to answer callback query", "error", err)
		}

		var chatID int64
		if update.CallbackQuery.Message.Message != nil {
			chatID = update.CallbackQuery.Message.Message.Chat.ID
		} else if update.CallbackQuery.Message.InaccessibleMessage != nil {
			chatID = update.CallbackQuery.Message.InaccessibleMessage.Chat.ID
		} else {
			return 0, nil, false
		}
		return chatID, &update.CallbackQuery.From, true
	}

	return 0, nil, false
}

// reply sends plain text to a chat, logging delivery failures.
func reply(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "chat_id", chatID, "error", err)
	}
}
