package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	"github.com/workhive/workhive_backend/internal/models"
	"github.com/workhive/workhive_backend/internal/utils/mapping"
)

const transactionColumns = `transaction_id, order_id, client_id, freelancer_id, amount, type, status, escrow_status, payment_intent_id, charge_id, payment_method, escrow_release_date, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
        INSERT INTO transactions (` + transactionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `
	_, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.OrderID,
		m.ClientID,
		m.FreelancerID,
		m.Amount,
		m.Type,
		m.Status,
		m.EscrowStatus,
		m.PaymentIntentID,
		m.ChargeID,
		m.PaymentMethod,
		m.EscrowReleaseDate,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// MarkTransactionFailed records a failed capture attempt on the placeholder
// transaction. The guard keeps it from clobbering a concurrently funded escrow.
func (r *PgxTransactionRepository) MarkTransactionFailed(ctx context.Context, transactionID, reason, updatedBy string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND escrow_status = $6;
	`
	_, err := r.db.Exec(ctx, query,
		transactionID,
		string(domain.TransactionFailed),
		reason,
		now,
		updatedBy,
		string(domain.EscrowPending),
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s failed: %w", transactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByOrder(ctx context.Context, orderID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE order_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for order %s: %w", orderID, err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE client_id = $1 OR freelancer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OrderID,
		&m.ClientID,
		&m.FreelancerID,
		&m.Amount,
		&m.Type,
		&m.Status,
		&m.EscrowStatus,
		&m.PaymentIntentID,
		&m.ChargeID,
		&m.PaymentMethod,
		&m.EscrowReleaseDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
