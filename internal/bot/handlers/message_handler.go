package handlers

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/HAtherlolz/tg-bot-notification/internal/database"
	"github.com/HAtherlolz/tg-bot-notification/internal/sweep"
)

// Synthetic message texts used for non-text events.
const (
	reactionText  = "REACTION"
	animationText = "GIF"
)

// NewIngestHandler returns the default update handler. It normalizes observed
// group messages, reactions, and animations into store records feeding the
// sweep. Ingestion is fire-and-forget: store failures are logged, never
// surfaced to Telegram.
func NewIngestHandler(deps HandlerDeps) bot.HandlerFunc {
	h := ingestHandler{deps: deps, now: time.Now}
	return h.Handle
}

type ingestHandler struct {
	deps HandlerDeps
	now  func() time.Time
}

func (h ingestHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	switch {
	case update.MessageReaction != nil:
		h.handleReaction(ctx, update.MessageReaction)
	case update.Message != nil && update.Message.Animation != nil:
		h.handleAnimation(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		// Commands are handled by their registered handlers; anything
		// command-shaped that reaches the default handler is not content.
		if strings.HasPrefix(update.Message.Text, "/") {
			return
		}
		h.handleMessage(ctx, update.Message)
	}
}

// handleMessage records a text message and, on first contact, its chat.
func (h ingestHandler) handleMessage(ctx context.Context, msg *models.Message) {
	log := h.deps.Logger.With("handler", "ingest")

	createdAt := h.localTime(msg.Date)

	var username, firstName, lastName string
	if msg.From != nil {
		username = msg.From.Username
		firstName = msg.From.FirstName
		lastName = msg.From.LastName
	}

	h.recordMessage(ctx, log, &database.Message{
		ChatID:    msg.Chat.ID,
		Name:      msg.Chat.Title,
		FirstName: firstName,
		LastName:  lastName,
		Message:   msg.Text,
		Username:  username,
		CreatedAt: createdAt,
	}, true)
}

// handleReaction records a synthetic REACTION message, but only when the
// reactor's first or last name contains "stark".
func (h ingestHandler) handleReaction(ctx context.Context, reaction *models.MessageReactionUpdated) {
	log := h.deps.Logger.With("handler", "ingest_reaction")

	if reaction.User == nil {
		return
	}

	if monitored := h.deps.Config.Bot.MonitoredGroups; len(monitored) > 0 &&
		!slices.Contains(monitored, reaction.Chat.Title) {
		return
	}

	firstName := strings.ToLower(reaction.User.FirstName)
	lastName := strings.ToLower(reaction.User.LastName)
	if !strings.Contains(firstName, "stark") && !strings.Contains(lastName, "stark") {
		return
	}

	h.recordMessage(ctx, log, &database.Message{
		ChatID:    reaction.Chat.ID,
		Name:      reaction.Chat.Title,
		FirstName: reaction.User.FirstName,
		LastName:  reaction.User.LastName,
		Message:   reactionText,
		Username:  reaction.User.Username,
		CreatedAt: h.localTime(reaction.Date),
	}, false)
}

// handleAnimation records a synthetic GIF message.
func (h ingestHandler) handleAnimation(ctx context.Context, msg *models.Message) {
	log := h.deps.Logger.With("handler", "ingest_animation")

	var username, firstName, lastName string
	if msg.From != nil {
		username = msg.From.Username
		firstName = msg.From.FirstName
		lastName = msg.From.LastName
	}

	log.DebugContext(ctx, "Recording animation", "chat_id", msg.Chat.ID, "file_name", msg.Animation.FileName)

	h.recordMessage(ctx, log, &database.Message{
		ChatID:    msg.Chat.ID,
		Name:      msg.Chat.Title,
		FirstName: firstName,
		LastName:  lastName,
		Message:   animationText,
		Username:  username,
		CreatedAt: h.localTime(msg.Date),
	}, false)
}

// recordMessage writes the chat (when createChat is set) and message records.
// The admin channel's own traffic is never logged as monitorable content.
func (h ingestHandler) recordMessage(ctx context.Context, log *slog.Logger, message *database.Message, createChat bool) {
	if createChat {
		chat := &database.Chat{
			ChatID:    message.ChatID,
			Name:      message.Name,
			CreatedAt: message.CreatedAt,
		}
		if _, err := h.deps.Store.CreateChat(ctx, chat); err != nil {
			log.ErrorContext(ctx, "Failed to save chat", "chat_id", chat.ChatID, "error", err)
		}
	}

	if message.Name == h.deps.Config.Bot.AdminsGroupChatName {
		return
	}

	if err := h.deps.Store.CreateMessage(ctx, message); err != nil {
		log.ErrorContext(ctx, "Failed to save message", "chat_id", message.ChatID, "error", err)
	}
}

// localTime converts a Telegram unix timestamp to the fixed local offset,
// substituting the current time when the event carries no timestamp.
func (h ingestHandler) localTime(date int) time.Time {
	if date == 0 {
		return h.now().In(sweep.Location)
	}
	return time.Unix(int64(date), 0).In(sweep.Location)
}
