package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhive/workhive_backend/internal/apperrors"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	"github.com/workhive/workhive_backend/internal/models"
)

// PgxIntentStore persists simulated gateway payment intents so in-flight
// intents survive restarts and are shared across instances.
type PgxIntentStore struct {
	db *pgxpool.Pool
}

func NewPgxIntentStore(db *pgxpool.Pool) *PgxIntentStore {
	return &PgxIntentStore{db: db}
}

// Ensure PgxIntentStore implements portsgw.IntentStore
var _ portsgw.IntentStore = (*PgxIntentStore)(nil)

func (s *PgxIntentStore) PutIntent(ctx context.Context, intent portsgw.PaymentIntent) error {
	query := `
        INSERT INTO payment_intents (intent_id, amount, currency, status, refunded, created_at)
        VALUES ($1, $2, $3, $4, FALSE, $5)
        ON CONFLICT (intent_id) DO UPDATE SET
            amount = EXCLUDED.amount,
            currency = EXCLUDED.currency,
            status = EXCLUDED.status;
    `
	_, err := s.db.Exec(ctx, query,
		intent.IntentID,
		intent.Amount,
		intent.Currency,
		string(intent.Status),
		intent.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to put payment intent %s: %w", intent.IntentID, err)
	}
	return nil
}

func (s *PgxIntentStore) GetIntent(ctx context.Context, intentID string) (*portsgw.PaymentIntent, error) {
	query := `
		SELECT intent_id, amount, currency, status, refunded, created_at
		FROM payment_intents
		WHERE intent_id = $1;
	`
	var model models.PaymentIntent
	err := s.db.QueryRow(ctx, query, intentID).Scan(
		&model.IntentID,
		&model.Amount,
		&model.Currency,
		&model.Status,
		&model.Refunded,
		&model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment intent %s: %w", intentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment intent %s: %w", intentID, err)
	}
	intent := portsgw.PaymentIntent{
		IntentID: model.IntentID,
		Amount:   model.Amount,
		Currency: model.Currency,
		Status:   portsgw.IntentStatus(model.Status),
		Created:  model.CreatedAt,
	}
	return &intent, nil
}

func (s *PgxIntentStore) SetStatus(ctx context.Context, intentID string, status portsgw.IntentStatus) error {
	query := `UPDATE payment_intents SET status = $2 WHERE intent_id = $1;`
	cmdTag, err := s.db.Exec(ctx, query, intentID, string(status))
	if err != nil {
		return fmt.Errorf("failed to set payment intent %s status: %w", intentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment intent %s: %w", intentID, apperrors.ErrNotFound)
	}
	return nil
}

// MarkRefunded flips the refunded flag with a compare-and-swap so exactly one
// refund attempt per intent wins.
func (s *PgxIntentStore) MarkRefunded(ctx context.Context, intentID string) error {
	query := `UPDATE payment_intents SET refunded = TRUE WHERE intent_id = $1 AND refunded = FALSE;`
	cmdTag, err := s.db.Exec(ctx, query, intentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment intent %s refunded: %w", intentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT TRUE FROM payment_intents WHERE intent_id = $1;`, intentID).Scan(&exists); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("payment intent %s: %w", intentID, apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to inspect payment intent %s: %w", intentID, err)
		}
		return fmt.Errorf("intent %s: %w", intentID, apperrors.ErrAlreadyRefunded)
	}
	return nil
}
