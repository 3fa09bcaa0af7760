// internal/repository/message_repo.go
package repository

import (
	"context"
	"time"

	"messagely/internal/domain"
)

// MessageRepository defines the interface for message data operations.
type MessageRepository interface {
	// CreateMessage inserts a new message and fills in its store-assigned
	// ID and sent_at using the provided DBExecutor.
	CreateMessage(ctx context.Context, q DBExecutor, message *domain.Message) error
	// GetMessageByID retrieves a message joined with both user profiles.
	// Returns util.ErrMessageNotFound if absent.
	GetMessageByID(ctx context.Context, q DBExecutor, id int64) (*domain.MessageDetail, error)
	// ListSentByUser returns all messages sent by the user, each joined with
	// the recipient's profile, ordered by sent_at then id. An unknown
	// username yields an empty slice, not an error.
	ListSentByUser(ctx context.Context, q DBExecutor, username string) ([]domain.SentMessage, error)
	// ListReceivedByUser returns all messages received by the user, each
	// joined with the sender's profile, ordered by sent_at then id. An
	// unknown username yields an empty slice, not an error.
	ListReceivedByUser(ctx context.Context, q DBExecutor, username string) ([]domain.ReceivedMessage, error)
	// MarkMessageRead sets read_at to the current time and returns it.
	// Returns util.ErrMessageNotFound if the message does not exist.
	MarkMessageRead(ctx context.Context, q DBExecutor, id int64) (*time.Time, error)
}
