package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/HAtherlolz/tg-bot-notification/internal/config"
	"github.com/HAtherlolz/tg-bot-notification/internal/database"
	"github.com/HAtherlolz/tg-bot-notification/internal/sweep"
)

// recordingStore captures chat and message writes for ingestion tests.
type recordingStore struct {
	database.Store

	chats    []database.Chat
	messages []database.Message
}

func (s *recordingStore) CreateChat(_ context.Context, chat *database.Chat) (bool, error) {
	s.chats = append(s.chats, *chat)
	return true, nil
}

func (s *recordingStore) CreateMessage(_ context.Context, message *database.Message) error {
	s.messages = append(s.messages, *message)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestIngestHandler(store database.Store, now time.Time, monitored []string) ingestHandler {
	cfg := &config.Config{}
	cfg.Bot.AdminsGroupChatName = "Admins"
	cfg.Bot.MonitoredGroups = monitored

	return ingestHandler{
		deps: HandlerDeps{Store: store, Config: cfg, Logger: discardLogger()},
		now:  func() time.Time { return now },
	}
}

func textUpdate(chatID int64, chatName, text, username string, date int) *models.Update {
	return &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: chatID, Title: chatName},
			From: &models.User{Username: username, FirstName: "First", LastName: "Last"},
			Text: text,
			Date: date,
		},
	}
}

func TestIngestRecordsGroupMessage(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	now := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)
	h := newTestIngestHandler(store, now, nil)

	sentAt := int(time.Date(2025, time.March, 10, 19, 30, 0, 0, time.UTC).Unix())
	h.Handle(context.Background(), nil, textUpdate(-100, "Group One", "hello there", "adv1", sentAt))

	if len(store.chats) != 1 {
		t.Fatalf("expected 1 chat write, got %d", len(store.chats))
	}
	if len(store.messages) != 1 {
		t.Fatalf("expected 1 message write, got %d", len(store.messages))
	}

	message := store.messages[0]
	if message.ChatID != -100 || message.Username != "adv1" || message.Message != "hello there" {
		t.Errorf("unexpected message record: %+v", message)
	}
	if message.IsNotified {
		t.Error("new message must not be marked as notified")
	}

	// 19:30 UTC is 22:30 at the fixed offset.
	wantCreated := time.Date(2025, time.March, 10, 22, 30, 0, 0, sweep.Location)
	if !message.CreatedAt.Equal(wantCreated) {
		t.Errorf("created_at = %v, want %v", message.CreatedAt, wantCreated)
	}
}

func TestIngestSubstitutesMissingTimestamp(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	now := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)
	h := newTestIngestHandler(store, now, nil)

	h.Handle(context.Background(), nil, textUpdate(-100, "Group One", "no timestamp", "adv1", 0))

	if len(store.messages) != 1 {
		t.Fatalf("expected 1 message write, got %d", len(store.messages))
	}
	if !store.messages[0].CreatedAt.Equal(now.In(sweep.Location)) {
		t.Errorf("created_at = %v, want handler time %v", store.messages[0].CreatedAt, now.In(sweep.Location))
	}
}

func TestIngestSkipsAdminGroupContent(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	h := newTestIngestHandler(store, time.Now(), nil)

	h.Handle(context.Background(), nil, textUpdate(-100, "Admins", "internal chatter", "mod1", 0))

	if len(store.chats) != 1 {
		t.Errorf("admin chat itself should still be recorded, got %d chat writes", len(store.chats))
	}
	if len(store.messages) != 0 {
		t.Errorf("admin group traffic must not be logged, got %d message writes", len(store.messages))
	}
}

func TestIngestSkipsCommands(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	h := newTestIngestHandler(store, time.Now(), nil)

	h.Handle(context.Background(), nil, textUpdate(-100, "Group One", "/unknown_command", "adv1", 0))

	if len(store.chats) != 0 || len(store.messages) != 0 {
		t.Errorf("commands must not be ingested, got %d chats and %d messages", len(store.chats), len(store.messages))
	}
}

func TestIngestReaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reactor     models.User
		chatName    string
		monitored   []string
		wantRecords int
	}{
		{
			name:        "Reactor named stark is recorded",
			reactor:     models.User{Username: "tony", FirstName: "Tony", LastName: "Stark"},
			chatName:    "Group One",
			wantRecords: 1,
		},
		{
			name:        "First name containing stark is recorded",
			reactor:     models.User{Username: "tony", FirstName: "starkadmin"},
			chatName:    "Group One",
			wantRecords: 1,
		},
		{
			name:        "Other reactors are not recorded",
			reactor:     models.User{Username: "bob", FirstName: "Bob", LastName: "Smith"},
			chatName:    "Group One",
			wantRecords: 0,
		},
		{
			name:        "Unmonitored group is skipped",
			reactor:     models.User{Username: "tony", FirstName: "Tony", LastName: "Stark"},
			chatName:    "Group Two",
			monitored:   []string{"Group One"},
			wantRecords: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &recordingStore{}
			h := newTestIngestHandler(store, time.Now(), tt.monitored)

			reactor := tt.reactor
			h.Handle(context.Background(), nil, &models.Update{
				MessageReaction: &models.MessageReactionUpdated{
					Chat: models.Chat{ID: -100, Title: tt.chatName},
					User: &reactor,
					Date: int(time.Now().Unix()),
				},
			})

			if len(store.messages) != tt.wantRecords {
				t.Fatalf("expected %d message writes, got %d", tt.wantRecords, len(store.messages))
			}
			if tt.wantRecords == 1 && store.messages[0].Message != reactionText {
				t.Errorf("message text = %q, want %q", store.messages[0].Message, reactionText)
			}
		})
	}
}

func TestIngestAnimation(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	h := newTestIngestHandler(store, time.Now(), nil)

	h.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			Chat:      models.Chat{ID: -100, Title: "Group One"},
			From:      &models.User{Username: "adv1"},
			Animation: &models.Animation{FileName: "funny.gif"},
			Date:      int(time.Now().Unix()),
		},
	})

	if len(store.messages) != 1 {
		t.Fatalf("expected 1 message write, got %d", len(store.messages))
	}
	if store.messages[0].Message != animationText {
		t.Errorf("message text = %q, want %q", store.messages[0].Message, animationText)
	}
}
