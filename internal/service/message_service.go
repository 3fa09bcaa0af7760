// internal/service/message_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain"
	"messagely/internal/repository"
	"messagely/internal/util"
	"messagely/pkg/db"
)

// MessageService defines the interface for message-related business logic.
type MessageService interface {
	// Send creates a message from one user to another. The recipient must
	// exist; otherwise util.ErrUserNotFound is returned.
	Send(ctx context.Context, fromUsername, toUsername, body string) (*domain.Message, error)
	// MessagesFrom returns all messages sent by the user joined with the
	// recipient's profile. An unknown username silently yields an empty
	// slice; existence is deliberately not checked.
	MessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error)
	// MessagesTo returns all messages received by the user joined with the
	// sender's profile. Unknown usernames silently yield an empty slice.
	MessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error)
	// Get returns a single message. Only the sender or the recipient may
	// read it; anyone else gets util.ErrForbidden.
	Get(ctx context.Context, id int64, requester string) (*domain.MessageDetail, error)
	// MarkRead marks a message as read. Only the recipient may do so.
	MarkRead(ctx context.Context, id int64, requester string) (*time.Time, error)
}

// messageService implements the MessageService interface.
type messageService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	beginTx     db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx    db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx  db.RollbackTxFunc // Injected dependency for rolling back transactions
}

// NewMessageService creates a new instance of MessageService.
func NewMessageService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) MessageService {
	return &messageService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// Send creates a message after verifying the recipient exists. Both the
// existence check and the insert run in one transaction so a concurrent
// user deletion cannot slip between them.
func (s *messageService) Send(ctx context.Context, fromUsername, toUsername, body string) (*domain.Message, error) {
	if body == "" || toUsername == "" {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("send: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("send: transaction controller does not implement DBExecutor")
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, txExecutor, toUsername); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("send: failed to look up recipient '%s': %w", toUsername, err)
	}

	message := domain.NewMessage(fromUsername, toUsername, body)
	if err := s.messageRepo.CreateMessage(ctx, txExecutor, message); err != nil {
		return nil, fmt.Errorf("send: failed to create message: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("send: failed to commit transaction: %w", err)
	}

	return message, nil
}

// MessagesFrom returns all messages sent by the user.
func (s *messageService) MessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error) {
	messages, err := s.messageRepo.ListSentByUser(ctx, s.dbExecutor, username)
	if err != nil {
		return nil, fmt.Errorf("messages from: failed to list messages: %w", err)
	}
	return messages, nil
}

// MessagesTo returns all messages received by the user.
func (s *messageService) MessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error) {
	messages, err := s.messageRepo.ListReceivedByUser(ctx, s.dbExecutor, username)
	if err != nil {
		return nil, fmt.Errorf("messages to: failed to list messages: %w", err)
	}
	return messages, nil
}

// Get returns a single message, visible only to its sender or recipient.
func (s *messageService) Get(ctx context.Context, id int64, requester string) (*domain.MessageDetail, error) {
	message, err := s.messageRepo.GetMessageByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrMessageNotFound) {
			return nil, util.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get message: failed to get message %d: %w", id, err)
	}

	if message.FromUser.Username != requester && message.ToUser.Username != requester {
		return nil, util.ErrForbidden
	}

	return message, nil
}

// MarkRead marks a message as read; only the recipient may do so.
func (s *messageService) MarkRead(ctx context.Context, id int64, requester string) (*time.Time, error) {
	message, err := s.messageRepo.GetMessageByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrMessageNotFound) {
			return nil, util.ErrMessageNotFound
		}
		return nil, fmt.Errorf("mark read: failed to get message %d: %w", id, err)
	}

	if message.ToUser.Username != requester {
		return nil, util.ErrForbidden
	}

	readAt, err := s.messageRepo.MarkMessageRead(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("mark read: failed to mark message %d read: %w", id, err)
	}

	return readAt, nil
}
