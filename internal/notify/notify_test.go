package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/HAtherlolz/tg-bot-notification/internal/notify"
)

// timeoutError mimics a transient network timeout from the Telegram client.
type timeoutError struct{}

func (timeoutError) Error() string   { return "request timed out" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// stubSender returns queued errors in order, then succeeds.
type stubSender struct {
	errs     []error
	attempts int
	lastText string
}

func (s *stubSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	s.attempts++
	s.lastText = params.Text

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.Message{}, nil
}

func TestSendSucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	dispatcher := notify.NewDispatcher(sender, nil)

	if err := dispatcher.Send(context.Background(), -999, "hello"); err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if sender.attempts != 1 {
		t.Errorf("expected 1 delivery attempt, got %d", sender.attempts)
	}
}

func TestSendRetriesOnceOnTimeout(t *testing.T) {
	t.Parallel()

	sender := &stubSender{errs: []error{timeoutError{}}}
	dispatcher := notify.NewDispatcher(sender, nil)

	if err := dispatcher.Send(context.Background(), -999, "hello"); err != nil {
		t.Fatalf("Send() returned error after successful retry: %v", err)
	}
	if sender.attempts != 2 {
		t.Errorf("expected exactly 2 delivery attempts, got %d", sender.attempts)
	}
	if sender.lastText != "hello" {
		t.Errorf("retry payload = %q, want identical %q", sender.lastText, "hello")
	}
}

func TestSendGivesUpAfterSecondTimeout(t *testing.T) {
	t.Parallel()

	sender := &stubSender{errs: []error{timeoutError{}, timeoutError{}}}
	dispatcher := notify.NewDispatcher(sender, nil)

	if err := dispatcher.Send(context.Background(), -999, "hello"); err == nil {
		t.Fatal("Send() = nil, want error after two timeouts")
	}
	if sender.attempts != 2 {
		t.Errorf("expected exactly 2 delivery attempts, got %d", sender.attempts)
	}
}

func TestSendRetriesOnContextDeadline(t *testing.T) {
	t.Parallel()

	sender := &stubSender{errs: []error{context.DeadlineExceeded}}
	dispatcher := notify.NewDispatcher(sender, nil)

	if err := dispatcher.Send(context.Background(), -999, "hello"); err != nil {
		t.Fatalf("Send() returned error after successful retry: %v", err)
	}
	if sender.attempts != 2 {
		t.Errorf("expected exactly 2 delivery attempts, got %d", sender.attempts)
	}
}

func TestSendDoesNotRetryOtherErrors(t *testing.T) {
	t.Parallel()

	sender := &stubSender{errs: []error{errors.New("chat not found")}}
	dispatcher := notify.NewDispatcher(sender, nil)

	if err := dispatcher.Send(context.Background(), -999, "hello"); err == nil {
		t.Fatal("Send() = nil, want error for non-transient failure")
	}
	if sender.attempts != 1 {
		t.Errorf("expected exactly 1 delivery attempt, got %d", sender.attempts)
	}
}
