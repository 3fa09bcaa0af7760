// internal/repository/postgres/message_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain"
	"messagely/internal/repository"
	"messagely/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pqForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pqForeignKeyViolation = "23503"

// MessageRepository implements repository.MessageRepository for PostgreSQL.
type MessageRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &MessageRepository{}
}

// messageRow is the flat scan target for message queries joined with a
// counterpart user profile.
type messageRow struct {
	ID        int64      `db:"id"`
	Body      string     `db:"body"`
	SentAt    time.Time  `db:"sent_at"`
	ReadAt    *time.Time `db:"read_at"`
	Username  string     `db:"username"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Phone     string     `db:"phone"`
}

// CreateMessage inserts a new message and fills in its store-assigned ID and sent_at.
func (r *MessageRepository) CreateMessage(ctx context.Context, q repository.DBExecutor, message *domain.Message) error {
	query := `INSERT INTO messages (from_username, to_username, body, sent_at)
              VALUES ($1, $2, $3, $4) RETURNING id, sent_at`
	err := q.QueryRowContext(ctx, query,
		message.FromUsername, message.ToUsername, message.Body, message.SentAt,
	).Scan(&message.ID, &message.SentAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetMessageByID retrieves a message joined with both user profiles.
func (r *MessageRepository) GetMessageByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.MessageDetail, error) {
	var row struct {
		ID            int64      `db:"id"`
		Body          string     `db:"body"`
		SentAt        time.Time  `db:"sent_at"`
		ReadAt        *time.Time `db:"read_at"`
		FromUsername  string     `db:"from_username"`
		FromFirstName string     `db:"from_first_name"`
		FromLastName  string     `db:"from_last_name"`
		FromPhone     string     `db:"from_phone"`
		ToUsername    string     `db:"to_username"`
		ToFirstName   string     `db:"to_first_name"`
		ToLastName    string     `db:"to_last_name"`
		ToPhone       string     `db:"to_phone"`
	}
	query := `SELECT
                m.id, m.body, m.sent_at, m.read_at,
                f.username AS from_username,
                f.first_name AS from_first_name,
                f.last_name AS from_last_name,
                f.phone AS from_phone,
                t.username AS to_username,
                t.first_name AS to_first_name,
                t.last_name AS to_last_name,
                t.phone AS to_phone
              FROM messages AS m
              JOIN users AS f ON m.from_username = f.username
              JOIN users AS t ON m.to_username = t.username
              WHERE m.id = $1`
	err := q.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message %d: %w", id, err)
	}

	return &domain.MessageDetail{
		ID: row.ID,
		FromUser: domain.UserRef{
			Username:  row.FromUsername,
			FirstName: row.FromFirstName,
			LastName:  row.FromLastName,
			Phone:     row.FromPhone,
		},
		ToUser: domain.UserRef{
			Username:  row.ToUsername,
			FirstName: row.ToFirstName,
			LastName:  row.ToLastName,
			Phone:     row.ToPhone,
		},
		Body:   row.Body,
		SentAt: row.SentAt,
		ReadAt: row.ReadAt,
	}, nil
}

// ListSentByUser returns all messages sent by the user, each joined with the
// recipient's profile, ordered by sent_at then id.
func (r *MessageRepository) ListSentByUser(ctx context.Context, q repository.DBExecutor, username string) ([]domain.SentMessage, error) {
	rows := []messageRow{}
	query := `SELECT
                m.id, m.body, m.sent_at, m.read_at,
                u.username, u.first_name, u.last_name, u.phone
              FROM messages AS m
              JOIN users AS u ON m.to_username = u.username
              WHERE m.from_username = $1
              ORDER BY m.sent_at, m.id`
	if err := q.SelectContext(ctx, &rows, query, username); err != nil {
		return nil, fmt.Errorf("failed to list messages from '%s': %w", username, err)
	}

	messages := make([]domain.SentMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, domain.SentMessage{
			ID: row.ID,
			ToUser: domain.UserRef{
				Username:  row.Username,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Phone:     row.Phone,
			},
			Body:   row.Body,
			SentAt: row.SentAt,
			ReadAt: row.ReadAt,
		})
	}
	return messages, nil
}

// ListReceivedByUser returns all messages received by the user, each joined
// with the sender's profile, ordered by sent_at then id.
func (r *MessageRepository) ListReceivedByUser(ctx context.Context, q repository.DBExecutor, username string) ([]domain.ReceivedMessage, error) {
	rows := []messageRow{}
	query := `SELECT
                m.id, m.body, m.sent_at, m.read_at,
                u.username, u.first_name, u.last_name, u.phone
              FROM messages AS m
              JOIN users AS u ON m.from_username = u.username
              WHERE m.to_username = $1
              ORDER BY m.sent_at, m.id`
	if err := q.SelectContext(ctx, &rows, query, username); err != nil {
		return nil, fmt.Errorf("failed to list messages to '%s': %w", username, err)
	}

	messages := make([]domain.ReceivedMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, domain.ReceivedMessage{
			ID: row.ID,
			FromUser: domain.UserRef{
				Username:  row.Username,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Phone:     row.Phone,
			},
			Body:   row.Body,
			SentAt: row.SentAt,
			ReadAt: row.ReadAt,
		})
	}
	return messages, nil
}

// MarkMessageRead sets read_at to the current time and returns it.
func (r *MessageRepository) MarkMessageRead(ctx context.Context, q repository.DBExecutor, id int64) (*time.Time, error) {
	var readAt time.Time
	query := `UPDATE messages SET read_at = now() WHERE id = $1 RETURNING read_at`
	err := q.QueryRowContext(ctx, query, id).Scan(&readAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to mark message %d read: %w", id, err)
	}
	return &readAt, nil
}

// compile-time interface check
var _ repository.MessageRepository = (*MessageRepository)(nil)
