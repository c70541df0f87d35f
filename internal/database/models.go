package database

import (
	"time"
)

// Chat represents a Telegram chat the bot has seen a message from.
// Only group chats (negative chat IDs) are persisted.
type Chat struct {
	ChatID    int64     `db:"chat_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Message represents a message observed in a monitored group chat.
// Name is the title of the chat the message was sent in. IsNotified marks
// messages that have already been escalated to the moderator channel.
type Message struct {
	ID         uint      `db:"id"`
	ChatID     int64     `db:"chat_id"`
	Name       string    `db:"name"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Message    string    `db:"message"`
	Username   string    `db:"username"`
	CreatedAt  time.Time `db:"created_at"`
	IsNotified bool      `db:"is_notified"`
}

// User represents a self-registered moderator. The first registration for a
// username wins; duplicates are rejected.
type User struct {
	Username             string `db:"username"`
	ChatID               int64  `db:"chat_id"`
	IsModerator          bool   `db:"is_moderator"`
	ReceiveNotifications bool   `db:"receive_notifications"`
}

// IgnoredUser represents a username excluded from escalation.
type IgnoredUser struct {
	Username string `db:"username"`
}
