// Package sweep implements the periodic scan for unanswered messages from
// external parties ("advertisers") in monitored group chats. Outside working
// hours it collects the most recent message of the day per group chat,
// filters out messages from moderators, ignored users, and known reply
// phrases, and escalates the rest to the moderator channel.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/HAtherlolz/tg-bot-notification/internal/database"
)

// staleAfter is how old a message must be before it counts as unanswered.
const staleAfter = 14 * time.Minute

// notificationHeader is the first line of every escalation message.
const notificationHeader = "These are the advertisers that are waiting for a reply:"

// ignoredPhrases are short replies that indicate the message is part of an
// ongoing conversation rather than an unanswered request.
var ignoredPhrases = map[string]struct{}{
	"thanks":    {},
	"thank":     {},
	"no":        {},
	"moment":    {},
	"atm":       {},
	"noted":     {},
	"pushing":   {},
	"us":        {},
	"thank you": {},
	"need":      {},
	"push":      {},
}

// Notifier delivers a notification message to a chat.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Advertiser identifies an escalated message author and the chat they wrote in.
type Advertiser struct {
	ChatID   int64
	Username string
	Name     string
}

// Engine runs the periodic unanswered-message sweep.
type Engine struct {
	store          database.Store
	notifier       Notifier
	logger         *slog.Logger
	adminsChatName string
	now            func() time.Time
}

// NewEngine creates a sweep engine. adminsChatName is the title of the
// moderator group chat that receives escalations.
func NewEngine(store database.Store, notifier Notifier, logger *slog.Logger, adminsChatName string) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:          store,
		notifier:       notifier,
		logger:         logger.With("component", "sweep"),
		adminsChatName: adminsChatName,
		now:            time.Now,
	}
}

// Run executes a single sweep tick. It returns an error only when the tick
// cannot safely proceed (moderator, ignore-list, or chat-listing reads fail);
// per-chat message read failures and delivery failures are logged and absorbed.
func (e *Engine) Run(ctx context.Context) error {
	now := e.now().In(Location)

	if IsWorkTime(now) {
		e.logger.DebugContext(ctx, "Inside working hours, skipping sweep", "now", now)
		return nil
	}

	moderators, err := e.store.GetAllModerators(ctx)
	if err != nil {
		return fmt.Errorf("sweep aborted, failed to load moderators: %w", err)
	}
	moderatorSet := make(map[string]struct{}, len(moderators))
	for _, m := range moderators {
		moderatorSet[m.Username] = struct{}{}
	}

	ignoredUsers, err := e.store.GetIgnoredUsernames(ctx)
	if err != nil {
		return fmt.Errorf("sweep aborted, failed to load ignored users: %w", err)
	}
	ignoredSet := make(map[string]struct{}, len(ignoredUsers))
	for _, u := range ignoredUsers {
		ignoredSet[u] = struct{}{}
	}

	chats, err := e.store.GetAllGroupChats(ctx)
	if err != nil {
		return fmt.Errorf("sweep aborted, failed to list group chats: %w", err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location)

	var advertisers []Advertiser
	for _, chat := range chats {
		message, err := e.store.GetLastChatMessageSince(ctx, chat.ChatID, midnight)
		if err != nil {
			e.logger.WarnContext(ctx, "Failed to read last message, skipping chat",
				"chat_id", chat.ChatID, "error", err)
			continue
		}
		if message == nil {
			continue
		}

		if !e.shouldEscalate(message, now, moderatorSet, ignoredSet) {
			continue
		}

		advertisers = append(advertisers, Advertiser{
			ChatID:   message.ChatID,
			Username: message.Username,
			Name:     message.Name,
		})

		// Marking failure is not fatal; worst case the same message is
		// escalated again on the next tick.
		if err := e.store.MarkMessageNotified(ctx, message.ChatID, message.CreatedAt); err != nil {
			e.logger.WarnContext(ctx, "Failed to mark message as notified",
				"chat_id", message.ChatID, "error", err)
		}
	}

	if len(advertisers) == 0 {
		e.logger.DebugContext(ctx, "No advertisers found this tick")
		return nil
	}

	text := FormatNotification(advertisers)

	adminsChat, err := e.store.GetChatByName(ctx, e.adminsChatName)
	if err != nil {
		return fmt.Errorf("sweep found %d advertisers but failed to resolve admins chat: %w", len(advertisers), err)
	}
	if adminsChat == nil {
		e.logger.ErrorContext(ctx, "Admins group chat not found, dropping notification",
			"admins_chat_name", e.adminsChatName, "advertisers", len(advertisers))
		return nil
	}

	e.logger.InfoContext(ctx, "Escalating unanswered messages",
		"advertisers", len(advertisers), "admins_chat_id", adminsChat.ChatID)

	if err := e.notifier.Send(ctx, adminsChat.ChatID, text); err != nil {
		// Delivery failures never fail the tick.
		e.logger.ErrorContext(ctx, "Failed to deliver notification", "error", err)
	}

	return nil
}

// shouldEscalate applies the unanswered-message policy to a chat's most
// recent message of the day.
func (e *Engine) shouldEscalate(message *database.Message, now time.Time, moderators, ignored map[string]struct{}) bool {
	if message.IsNotified {
		return false
	}

	// Only messages stale by at least the threshold count as unanswered.
	if !message.CreatedAt.Before(now.Add(-staleAfter)) {
		return false
	}

	if _, ok := moderators[message.Username]; ok {
		return false
	}

	firstName := strings.ToLower(message.FirstName)
	lastName := strings.ToLower(message.LastName)
	if strings.Contains(firstName, "stark") || lastName == "stark" {
		return false
	}

	if _, ok := ignoredPhrases[strings.ToLower(strings.TrimSpace(message.Message))]; ok {
		return false
	}

	if _, ok := ignored[message.Username]; ok {
		return false
	}

	return true
}

// FormatNotification builds the moderator notification text for the given
// advertisers, one line per advertiser in collection order.
func FormatNotification(advertisers []Advertiser) string {
	lines := make([]string, 0, len(advertisers)+1)
	lines = append(lines, notificationHeader)
	for _, adv := range advertisers {
		lines = append(lines, fmt.Sprintf("- %s - @%s", adv.Name, adv.Username))
	}
	return strings.Join(lines, "\n")
}
