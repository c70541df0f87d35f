package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// CreateChat inserts a chat record if it is a group chat (negative ID)
	// and not already present. Returns true if a record was inserted.
	CreateChat(ctx context.Context, chat *Chat) (bool, error)

	// GetAllGroupChats retrieves all persisted group chats in a stable
	// listing order (oldest first).
	GetAllGroupChats(ctx context.Context) ([]Chat, error)

	// GetChatByName retrieves a chat by its name. Returns nil, nil if not found.
	GetChatByName(ctx context.Context, name string) (*Chat, error)

	// CreateMessage inserts a new message record.
	CreateMessage(ctx context.Context, message *Message) error

	// GetLastChatMessageSince retrieves the most recent message in a chat
	// created at or after the given time. Equal timestamps are broken by
	// insertion order so repeated reads return the same row.
	// Returns nil, nil if the chat has no message in the window.
	GetLastChatMessageSince(ctx context.Context, chatID int64, since time.Time) (*Message, error)

	// MarkMessageNotified sets is_notified on the message identified by
	// (chat_id, created_at).
	MarkMessageNotified(ctx context.Context, chatID int64, createdAt time.Time) error

	// CreateUser inserts a user record. The first registration for a username
	// wins; returns false if the username is already registered.
	CreateUser(ctx context.Context, user *User) (bool, error)

	// GetAllModerators retrieves all users registered as moderators.
	GetAllModerators(ctx context.Context) ([]User, error)

	// AddIgnoredUser adds a username to the ignore list. Returns false if the
	// username is already ignored.
	AddIgnoredUser(ctx context.Context, username string) (bool, error)

	// GetIgnoredUsernames retrieves all ignored usernames.
	GetIgnoredUsernames(ctx context.Context) ([]string, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateChat inserts a chat record if it is a group chat and not already present.
func (s *sqlxStore) CreateChat(ctx context.Context, chat *Chat) (bool, error) {
	if chat == nil {
		return false, fmt.Errorf("cannot save nil chat")
	}

	// Group chats have negative IDs; anything else is never persisted.
	if chat.ChatID >= 0 {
		return false, nil
	}

	query := `
        INSERT INTO chats (chat_id, name, created_at)
        VALUES (:chat_id, :name, :created_at)
        ON CONFLICT (chat_id) DO NOTHING;
    `

	result, err := s.db.NamedExecContext(ctx, query, chat)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving chat", "chat_id", chat.ChatID, "error", err)
		return false, fmt.Errorf("failed to save chat %d: %w", chat.ChatID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for chat %d: %w", chat.ChatID, err)
	}
	if affected == 0 {
		s.logger.DebugContext(ctx, "Chat already exists, skipping insert", "chat_id", chat.ChatID)
		return false, nil
	}

	s.logger.DebugContext(ctx, "Chat saved successfully", "chat_id", chat.ChatID, "name", chat.Name)
	return true, nil
}

// GetAllGroupChats retrieves all persisted group chats in listing order.
func (s *sqlxStore) GetAllGroupChats(ctx context.Context) ([]Chat, error) {
	var chats []Chat
	query := `
        SELECT chat_id, name, created_at
        FROM chats
        WHERE chat_id < 0
        ORDER BY created_at ASC, chat_id ASC;
    `

	if err := s.db.SelectContext(ctx, &chats, query); err != nil {
		s.logger.ErrorContext(ctx, "Error getting group chats", "error", err)
		return nil, fmt.Errorf("failed to get group chats: %w", err)
	}

	return chats, nil
}

// GetChatByName retrieves a chat by its name. Returns nil, nil if not found.
func (s *sqlxStore) GetChatByName(ctx context.Context, name string) (*Chat, error) {
	var chat Chat
	query := `SELECT chat_id, name, created_at FROM chats WHERE name = ? LIMIT 1;`

	err := s.db.GetContext(ctx, &chat, query, name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No chat found with name", "name", name)
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting chat by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get chat %q: %w", name, err)
	}

	return &chat, nil
}

// CreateMessage inserts a new message record.
func (s *sqlxStore) CreateMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.CreatedAt.IsZero() {
		return fmt.Errorf("message must have a non-zero created_at")
	}

	query := `
        INSERT INTO messages (chat_id, name, first_name, last_name, message, username, created_at, is_notified)
        VALUES (:chat_id, :name, :first_name, :last_name, :message, :username, :created_at, :is_notified);
    `

	result, err := s.db.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message",
			"chat_id", message.ChatID, "username", message.Username, "error", err)
		return fmt.Errorf("failed to save message (chat %d): %w", message.ChatID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		message.ID = uint(id)
	}

	s.logger.DebugContext(ctx, "Message saved successfully",
		"chat_id", message.ChatID, "username", message.Username, "message_id", message.ID)
	return nil
}

// GetLastChatMessageSince retrieves the most recent message in a chat created
// at or after the given time. Returns nil, nil if none exists.
func (s *sqlxStore) GetLastChatMessageSince(ctx context.Context, chatID int64, since time.Time) (*Message, error) {
	var message Message
	query := `
        SELECT id, chat_id, name, first_name, last_name, message, username, created_at, is_notified
        FROM messages
        WHERE chat_id = ? AND created_at >= ?
        ORDER BY created_at DESC, id DESC
        LIMIT 1;
    `

	err := s.db.GetContext(ctx, &message, query, chatID, since)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting last chat message", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get last message for chat %d: %w", chatID, err)
	}

	return &message, nil
}

// MarkMessageNotified sets is_notified on the message identified by (chat_id, created_at).
func (s *sqlxStore) MarkMessageNotified(ctx context.Context, chatID int64, createdAt time.Time) error {
	query := `UPDATE messages SET is_notified = 1 WHERE chat_id = ? AND created_at = ?;`

	if _, err := s.db.ExecContext(ctx, query, chatID, createdAt); err != nil {
		s.logger.ErrorContext(ctx, "Error marking message as notified", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to mark message as notified (chat %d): %w", chatID, err)
	}

	return nil
}

// CreateUser inserts a user record; the first registration for a username wins.
func (s *sqlxStore) CreateUser(ctx context.Context, user *User) (bool, error) {
	if user == nil {
		return false, fmt.Errorf("cannot save nil user")
	}
	if user.Username == "" {
		return false, fmt.Errorf("user must have a non-empty username")
	}

	query := `
        INSERT INTO users (username, chat_id, is_moderator, receive_notifications)
        VALUES (:username, :chat_id, :is_moderator, :receive_notifications)
        ON CONFLICT (username) DO NOTHING;
    `

	result, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving user", "username", user.Username, "error", err)
		return false, fmt.Errorf("failed to save user %q: %w", user.Username, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for user %q: %w", user.Username, err)
	}
	if affected == 0 {
		s.logger.DebugContext(ctx, "User already registered, skipping insert", "username", user.Username)
		return false, nil
	}

	return true, nil
}

// GetAllModerators retrieves all users registered as moderators.
func (s *sqlxStore) GetAllModerators(ctx context.Context) ([]User, error) {
	var users []User
	query := `
        SELECT username, chat_id, is_moderator, receive_notifications
        FROM users
        WHERE is_moderator = 1;
    `

	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		s.logger.ErrorContext(ctx, "Error getting moderators", "error", err)
		return nil, fmt.Errorf("failed to get moderators: %w", err)
	}

	return users, nil
}

// AddIgnoredUser adds a username to the ignore list with set semantics.
func (s *sqlxStore) AddIgnoredUser(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, fmt.Errorf("ignored username cannot be empty")
	}

	query := `INSERT INTO ignored_users (username) VALUES (?) ON CONFLICT (username) DO NOTHING;`

	result, err := s.db.ExecContext(ctx, query, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error adding ignored user", "username", username, "error", err)
		return false, fmt.Errorf("failed to add ignored user %q: %w", username, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for ignored user %q: %w", username, err)
	}

	return affected > 0, nil
}

// GetIgnoredUsernames retrieves all ignored usernames.
func (s *sqlxStore) GetIgnoredUsernames(ctx context.Context) ([]string, error) {
	var usernames []string
	query := `SELECT username FROM ignored_users;`

	if err := s.db.SelectContext(ctx, &usernames, query); err != nil {
		s.logger.ErrorContext(ctx, "Error getting ignored users", "error", err)
		return nil, fmt.Errorf("failed to get ignored users: %w", err)
	}

	return usernames, nil
}
