package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/HAtherlolz/tg-bot-notification/internal/database"
)

// NewSetModeratorHandler returns a handler for the /set_moderator command and
// the "I am a moderator" button. Registration is first-come: a username that
// is already registered keeps its original record.
func NewSetModeratorHandler(deps HandlerDeps) bot.HandlerFunc {
	return setModeratorHandler{deps}.Handle
}

type setModeratorHandler struct {
	deps HandlerDeps
}

func (h setModeratorHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "set_moderator")

	chatID, from, ok := replyTarget(ctx, b, log, update)
	if !ok || from.Username == "" {
		log.WarnContext(ctx, "Set moderator handler missing sender username", "update_id", update.ID)
		return
	}

	user := &database.User{
		Username:             from.Username,
		ChatID:               chatID,
		IsModerator:          true,
		ReceiveNotifications: true,
	}

	created, err := h.deps.Store.CreateUser(ctx, user)
	if err != nil {
		log.ErrorContext(ctx, "Failed to register moderator", "username", from.Username, "error", err)
		reply(ctx, b, log, chatID, "Something went wrong, please try again later.", nil)
		return
	}

	if !created {
		log.InfoContext(ctx, "Moderator already registered", "username", from.Username)
	}
	reply(ctx, b, log, chatID, "You are a moderator now!", nil)
}

// NewModeratorsListHandler returns a handler for the /get_all_moderators
// command and the matching button.
func NewModeratorsListHandler(deps HandlerDeps) bot.HandlerFunc {
	return moderatorsListHandler{deps}.Handle
}

type moderatorsListHandler struct {
	deps HandlerDeps
}

func (h moderatorsListHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "get_all_moderators")

	chatID, _, ok := replyTarget(ctx, b, log, update)
	if !ok {
		log.WarnContext(ctx, "Moderators list handler could not determine reply target", "update_id", update.ID)
		return
	}

	moderators, err := h.deps.Store.GetAllModerators(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load moderators", "error", err)
		reply(ctx, b, log, chatID, "Something went wrong, please try again later.", nil)
		return
	}

	names := make([]string, 0, len(moderators))
	for _, moderator := range moderators {
		names = append(names, "@"+moderator.Username)
	}

	reply(ctx, b, log, chatID, "Moderators:\n"+strings.Join(names, "\n"), nil)
}
