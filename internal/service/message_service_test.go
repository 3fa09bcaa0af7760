// internal/service/message_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messagely/internal/domain"
	"messagely/internal/util"
	"messagely/pkg/db"
)

func newTestMessageService(
	userRepo *MockUserRepository,
	messageRepo *MockMessageRepository,
	executor *MockDBExecutor,
	txController *MockTxController,
) MessageService {
	beginTx := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return txController, nil
	}
	commitTx := func(tx db.TxController) error {
		return tx.Commit()
	}
	rollbackTx := func(tx db.TxController) {
		_ = tx.Rollback()
	}
	return NewMessageService(nil, executor, userRepo, messageRepo, beginTx, commitTx, rollbackTx)
}

func TestSendSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	recipient := &domain.User{Username: "bob"}
	userRepo.On("GetUserByUsername", mock.Anything, txController, "bob").Return(recipient, nil).Once()
	messageRepo.On("CreateMessage", mock.Anything, txController, mock.AnythingOfType("*domain.Message")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Message).ID = 1
		}).
		Return(nil).Once()
	txController.On("Commit").Return(nil).Once()
	txController.On("Rollback").Return(nil)

	message, err := svc.Send(context.Background(), "alice", "bob", "hi")
	require.NoError(t, err)
	assert.Equal(t, int64(1), message.ID)
	assert.Equal(t, "alice", message.FromUsername)
	assert.Equal(t, "bob", message.ToUsername)
	assert.Equal(t, "hi", message.Body)

	userRepo.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
	txController.AssertExpectations(t)
}

func TestSendUnknownRecipient(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	userRepo.On("GetUserByUsername", mock.Anything, txController, "ghost").
		Return(nil, util.ErrNotFound).Once()
	txController.On("Rollback").Return(nil)

	_, err := svc.Send(context.Background(), "alice", "ghost", "hi")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	messageRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything)
	txController.AssertNotCalled(t, "Commit")
}

func TestSendEmptyBody(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	_, err := svc.Send(context.Background(), "alice", "bob", "")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestMessagesFromEmpty(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	// Unknown usernames silently yield an empty slice; no existence check runs.
	messageRepo.On("ListSentByUser", mock.Anything, executor, "ghost").
		Return([]domain.SentMessage{}, nil).Once()

	messages, err := svc.MessagesFrom(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, messages)

	userRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
}

func TestMessagesToEmpty(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	messageRepo.On("ListReceivedByUser", mock.Anything, executor, "ghost").
		Return([]domain.ReceivedMessage{}, nil).Once()

	messages, err := svc.MessagesTo(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func aliceToBobDetail() *domain.MessageDetail {
	return &domain.MessageDetail{
		ID:       1,
		FromUser: domain.UserRef{Username: "alice"},
		ToUser:   domain.UserRef{Username: "bob"},
		Body:     "hi",
		SentAt:   time.Now().UTC(),
	}
}

func TestGetVisibleToParticipantsOnly(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	messageRepo.On("GetMessageByID", mock.Anything, executor, int64(1)).Return(aliceToBobDetail(), nil)

	_, err := svc.Get(context.Background(), 1, "alice")
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), 1, "bob")
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), 1, "carol")
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestGetUnknownMessage(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	messageRepo.On("GetMessageByID", mock.Anything, executor, int64(42)).
		Return(nil, util.ErrMessageNotFound).Once()

	_, err := svc.Get(context.Background(), 42, "alice")
	assert.ErrorIs(t, err, util.ErrMessageNotFound)
}

func TestMarkReadRecipientOnly(t *testing.T) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	executor := new(MockDBExecutor)
	txController := new(MockTxController)
	svc := newTestMessageService(userRepo, messageRepo, executor, txController)

	messageRepo.On("GetMessageByID", mock.Anything, executor, int64(1)).Return(aliceToBobDetail(), nil)

	// The sender may not mark their own message read.
	_, err := svc.MarkRead(context.Background(), 1, "alice")
	assert.ErrorIs(t, err, util.ErrForbidden)
	messageRepo.AssertNotCalled(t, "MarkMessageRead", mock.Anything, mock.Anything, mock.Anything)

	readAt := time.Now().UTC()
	messageRepo.On("MarkMessageRead", mock.Anything, executor, int64(1)).Return(&readAt, nil).Once()

	got, err := svc.MarkRead(context.Background(), 1, "bob")
	require.NoError(t, err)
	assert.Equal(t, &readAt, got)
}
