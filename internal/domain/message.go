// internal/domain/message.go
package domain

import "time"

// Message represents a single message between two users.
// A message is immutable once created except for ReadAt.
type Message struct {
	ID           int64      `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	FromUsername string     `db:"from_username" json:"from_username"` // Foreign key to users.username
	ToUsername   string     `db:"to_username" json:"to_username"`     // Foreign key to users.username
	Body         string     `db:"body" json:"body"`                   // Free text
	SentAt       time.Time  `db:"sent_at" json:"sent_at"`             // Set at creation
	ReadAt       *time.Time `db:"read_at" json:"read_at"`             // NULL until the recipient marks it read
}

// NewMessage creates a new Message instance.
func NewMessage(fromUsername, toUsername, body string) *Message {
	return &Message{
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
}

// SentMessage is a message joined with the recipient's profile,
// as returned by the messages-from query.
type SentMessage struct {
	ID     int64      `json:"id"`
	ToUser UserRef    `json:"to_user"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
}

// ReceivedMessage is a message joined with the sender's profile,
// as returned by the messages-to query.
type ReceivedMessage struct {
	ID       int64      `json:"id"`
	FromUser UserRef    `json:"from_user"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
}

// MessageDetail is a single message joined with both profiles.
type MessageDetail struct {
	ID       int64      `json:"id"`
	FromUser UserRef    `json:"from_user"`
	ToUser   UserRef    `json:"to_user"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
}
