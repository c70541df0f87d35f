// Package notify delivers sweep notifications to the moderator channel
// through the Telegram API, with a single bounded retry on transient
// delivery failures.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MessageSender is the part of the Telegram client used for delivery.
// *bot.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Dispatcher sends notification messages with one retry on timeout-class errors.
type Dispatcher struct {
	sender MessageSender
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher around the given sender.
func NewDispatcher(sender MessageSender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		sender: sender,
		logger: logger.With("component", "notify"),
	}
}

// Send delivers text to chatID. A timeout-class failure is retried exactly
// once with an identical payload; any other failure is returned immediately.
// The retry gives no idempotency guarantee: a send that succeeded but timed
// out on acknowledgement may be duplicated.
func (d *Dispatcher) Send(ctx context.Context, chatID int64, text string) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	_, err := d.sender.SendMessage(ctx, params)
	if err == nil {
		return nil
	}

	if !isTimeout(err) {
		d.logger.ErrorContext(ctx, "Notification delivery failed, giving up",
			"chat_id", chatID, "error", err)
		return fmt.Errorf("failed to send notification to chat %d: %w", chatID, err)
	}

	d.logger.WarnContext(ctx, "Notification delivery timed out, retrying once",
		"chat_id", chatID, "error", err)

	if _, err := d.sender.SendMessage(ctx, params); err != nil {
		d.logger.ErrorContext(ctx, "Notification retry failed",
			"chat_id", chatID, "error", err)
		return fmt.Errorf("notification retry to chat %d failed: %w", chatID, err)
	}

	return nil
}

// isTimeout reports whether err is a timeout-class transient delivery error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
