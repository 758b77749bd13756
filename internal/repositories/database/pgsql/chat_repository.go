package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	"github.com/workhive/workhive_backend/internal/models"
	"github.com/workhive/workhive_backend/internal/utils/mapping"
)

type PgxChatRepository struct {
	db *pgxpool.Pool
}

func newPgxChatRepository(db *pgxpool.Pool) *PgxChatRepository {
	return &PgxChatRepository{db: db}
}

// Ensure PgxChatRepository implements both chat repository interfaces
var (
	_ portsrepo.ConversationRepository = (*PgxChatRepository)(nil)
	_ portsrepo.MessageRepository      = (*PgxChatRepository)(nil)
)

func (r *PgxChatRepository) SaveConversation(ctx context.Context, conv domain.Conversation) error {
	m := mapping.ToModelConversation(conv)
	query := `
        INSERT INTO conversations (conversation_id, order_id, client_id, freelancer_id, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query, m.ConversationID, m.OrderID, m.ClientID, m.FreelancerID, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("conversation for order %s: %w", conv.OrderID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

func (r *PgxChatRepository) FindConversationByID(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	query := `
		SELECT conversation_id, order_id, client_id, freelancer_id, created_at
		FROM conversations
		WHERE conversation_id = $1;
	`
	return r.scanConversation(ctx, query, conversationID)
}

func (r *PgxChatRepository) FindConversationByOrder(ctx context.Context, orderID string) (*domain.Conversation, error) {
	query := `
		SELECT conversation_id, order_id, client_id, freelancer_id, created_at
		FROM conversations
		WHERE order_id = $1;
	`
	return r.scanConversation(ctx, query, orderID)
}

func (r *PgxChatRepository) scanConversation(ctx context.Context, query, arg string) (*domain.Conversation, error) {
	var m models.Conversation
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&m.ConversationID,
		&m.OrderID,
		&m.ClientID,
		&m.FreelancerID,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	conv := mapping.ToDomainConversation(m)
	return &conv, nil
}

func (r *PgxChatRepository) SaveMessage(ctx context.Context, msg domain.Message) error {
	m := mapping.ToModelMessage(msg)
	query := `
        INSERT INTO messages (message_id, conversation_id, sender_id, body, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query, m.MessageID, m.ConversationID, m.SenderID, m.Body, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (r *PgxChatRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	query := `
		SELECT message_id, conversation_id, sender_id, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for conversation %s: %w", conversationID, err)
	}
	defer rows.Close()
	return collectMessages(rows)
}

// ListRecentMessages returns the newest limit messages in chronological order.
func (r *PgxChatRepository) ListRecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT message_id, conversation_id, sender_id, body, created_at
		FROM (
			SELECT message_id, conversation_id, sender_id, body, created_at
			FROM messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages for conversation %s: %w", conversationID, err)
	}
	defer rows.Close()
	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]domain.Message, error) {
	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.MessageID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return mapping.ToDomainMessageSlice(msgs), nil
}
