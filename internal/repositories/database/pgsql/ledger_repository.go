package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	"github.com/workhive/workhive_backend/internal/utils/mapping"
)

// PgxLedgerRepository performs the financial mutation sequences.
//
// Each sequence is a series of single-statement commits, never one wrapping
// database transaction. The ordering invariant is fixed: transaction row
// first, user balance rows second, order row last. The transaction row's
// escrow sub-state is the arbiter under concurrency, so every sequence opens
// with a compare-and-swap on it; once that statement commits, the money
// outcome is decided and later failures leave only order state to repair.
type PgxLedgerRepository struct {
	db *pgxpool.Pool
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{db: db}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) RecordPayment(ctx context.Context, order domain.Order, txn domain.Transaction) error {
	now := time.Now().UTC()
	m := mapping.ToModelTransaction(txn)

	// Step 1: transaction row. Guarded so a concurrent duplicate payment
	// cannot double-fund the escrow.
	escrowQuery := `
		UPDATE transactions
		SET status = $2, escrow_status = $3, payment_intent_id = $4, charge_id = $5,
		    payment_method = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1 AND escrow_status NOT IN ($3, $10, $11);
	`
	cmdTag, err := r.db.Exec(ctx, escrowQuery,
		m.TransactionID,
		string(domain.TransactionEscrowed),
		string(domain.EscrowHeld),
		m.PaymentIntentID,
		m.ChargeID,
		m.PaymentMethod,
		m.Description,
		now,
		txn.LastUpdatedBy,
		string(domain.EscrowReleased),
		string(domain.EscrowRefunded),
	)
	if err != nil {
		return fmt.Errorf("failed to record escrow hold for transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.transactionExists(ctx, m.TransactionID); err != nil {
			return err
		}
		return fmt.Errorf("transaction %s is already funded: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}

	// No balances move on payment; the funds sit in escrow.

	// Step 2: order row last. The link is unconditional, the status advance
	// only applies while the order is still PENDING.
	linkQuery := `UPDATE orders SET transaction_id = $2, last_updated_at = $3, last_updated_by = $4 WHERE order_id = $1;`
	if _, err := r.db.Exec(ctx, linkQuery, order.OrderID, m.TransactionID, now, txn.LastUpdatedBy); err != nil {
		return fmt.Errorf("%w: escrow held for transaction %s but linking order %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, order.OrderID, err)
	}
	statusQuery := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1 AND status = $5;
	`
	_, err = r.db.Exec(ctx, statusQuery,
		order.OrderID,
		string(domain.OrderInProgress),
		now,
		txn.LastUpdatedBy,
		string(domain.OrderPending),
	)
	if err != nil {
		return fmt.Errorf("%w: escrow held for transaction %s but advancing order %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, order.OrderID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) RecordRelease(ctx context.Context, txn domain.Transaction, releasedBy string) error {
	now := time.Now().UTC()

	// Step 1: transaction row, HELD -> RELEASED. The compare-and-swap makes
	// concurrent releases race for a single winner.
	releaseQuery := `
		UPDATE transactions
		SET status = $2, escrow_status = $3, escrow_release_date = $4, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND escrow_status = $6;
	`
	cmdTag, err := r.db.Exec(ctx, releaseQuery,
		txn.TransactionID,
		string(domain.TransactionReleased),
		string(domain.EscrowReleased),
		now,
		releasedBy,
		string(domain.EscrowHeld),
	)
	if err != nil {
		return fmt.Errorf("failed to release escrow for transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		current, err := r.transactionExists(ctx, txn.TransactionID)
		if err != nil {
			return err
		}
		return fmt.Errorf("transaction %s escrow is %s, not HELD: %w", txn.TransactionID, current, apperrors.ErrNotInEscrow)
	}

	// Step 2: user balance rows. Atomic in-database increments, no
	// read-modify-write.
	creditQuery := `
		UPDATE users
		SET earnings = earnings + $2, balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	if _, err := r.db.Exec(ctx, creditQuery, txn.FreelancerID, txn.Amount, now, releasedBy); err != nil {
		return fmt.Errorf("%w: escrow released for transaction %s but crediting freelancer %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.FreelancerID, err)
	}
	spendQuery := `
		UPDATE users
		SET spending = spending + $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	if _, err := r.db.Exec(ctx, spendQuery, txn.ClientID, txn.Amount, now, releasedBy); err != nil {
		return fmt.Errorf("%w: escrow released for transaction %s but recording client %s spending failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.ClientID, err)
	}

	// Step 3: order row last.
	if err := r.setOrderStatus(ctx, txn.OrderID, domain.OrderClosed, releasedBy, now); err != nil {
		return fmt.Errorf("%w: escrow released for transaction %s but closing order %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.OrderID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) RecordRefund(ctx context.Context, txn domain.Transaction, toStatus domain.OrderStatus, refundedBy string) error {
	now := time.Now().UTC()

	// Step 1: transaction row, HELD -> REFUNDED.
	refundQuery := `
		UPDATE transactions
		SET status = $2, escrow_status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND escrow_status = $6;
	`
	cmdTag, err := r.db.Exec(ctx, refundQuery,
		txn.TransactionID,
		string(domain.TransactionRefunded),
		string(domain.EscrowRefunded),
		now,
		refundedBy,
		string(domain.EscrowHeld),
	)
	if err != nil {
		return fmt.Errorf("failed to refund escrow for transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		current, err := r.transactionExists(ctx, txn.TransactionID)
		if err != nil {
			return err
		}
		return fmt.Errorf("transaction %s escrow is %s, not HELD: %w", txn.TransactionID, current, apperrors.ErrNotInEscrow)
	}

	// No balance rows: held funds were never credited, so a refund moves no
	// user totals.

	// Step 2: order row last.
	if err := r.setOrderStatus(ctx, txn.OrderID, toStatus, refundedBy, now); err != nil {
		return fmt.Errorf("%w: escrow refunded for transaction %s but updating order %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.OrderID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) RecordReversal(ctx context.Context, txn domain.Transaction, toStatus domain.OrderStatus, requestedBy string) (*domain.Transaction, error) {
	now := time.Now().UTC()

	// Step 1a: transaction row, COMPLETED -> REFUNDED. The guard keeps a
	// second reversal of the same payment from running the balance reversals
	// twice.
	reverseQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	cmdTag, err := r.db.Exec(ctx, reverseQuery,
		txn.TransactionID,
		string(domain.TransactionRefunded),
		now,
		requestedBy,
		string(domain.TransactionCompleted),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark transaction %s refunded: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.transactionExists(ctx, txn.TransactionID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("transaction %s was already reversed: %w", txn.TransactionID, apperrors.ErrAlreadyRefunded)
	}

	// Step 1b: companion REFUND transaction for audit history.
	companion := domain.Transaction{
		TransactionID: uuid.NewString(),
		OrderID:       txn.OrderID,
		ClientID:      txn.ClientID,
		FreelancerID:  txn.FreelancerID,
		Amount:        txn.Amount,
		Type:          domain.TransactionRefund,
		Status:        domain.TransactionCompleted,
		EscrowStatus:  domain.EscrowPending,
		Description:   fmt.Sprintf("Reversal of transaction %s", txn.TransactionID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: requestedBy,
		},
	}
	cm := mapping.ToModelTransaction(companion)
	companionQuery := `
        INSERT INTO transactions (` + transactionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `
	_, err = r.db.Exec(ctx, companionQuery,
		cm.TransactionID, cm.OrderID, cm.ClientID, cm.FreelancerID, cm.Amount,
		cm.Type, cm.Status, cm.EscrowStatus, cm.PaymentIntentID, cm.ChargeID,
		cm.PaymentMethod, cm.EscrowReleaseDate, cm.Description,
		cm.CreatedAt, cm.CreatedBy, cm.LastUpdatedAt, cm.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction %s reversed but writing companion refund failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, err)
	}

	// Step 2: user balance rows, floor-clamped so a reversal can never push
	// a total negative.
	debitQuery := `
		UPDATE users
		SET earnings = GREATEST(earnings - $2, 0), balance = GREATEST(balance - $2, 0),
		    last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	if _, err := r.db.Exec(ctx, debitQuery, txn.FreelancerID, txn.Amount, now, requestedBy); err != nil {
		return nil, fmt.Errorf("%w: transaction %s reversed but debiting freelancer %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.FreelancerID, err)
	}
	unspendQuery := `
		UPDATE users
		SET spending = GREATEST(spending - $2, 0), last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	if _, err := r.db.Exec(ctx, unspendQuery, txn.ClientID, txn.Amount, now, requestedBy); err != nil {
		return nil, fmt.Errorf("%w: transaction %s reversed but reducing client %s spending failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.ClientID, err)
	}

	// Step 3: order row last.
	if err := r.setOrderStatus(ctx, txn.OrderID, toStatus, requestedBy, now); err != nil {
		return nil, fmt.Errorf("%w: transaction %s reversed but updating order %s failed: %v",
			apperrors.ErrInconsistentState, txn.TransactionID, txn.OrderID, err)
	}
	return &companion, nil
}

func (r *PgxLedgerRepository) setOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, orderID, string(status), now, updatedBy)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// transactionExists returns the current escrow sub-state, or ErrNotFound.
func (r *PgxLedgerRepository) transactionExists(ctx context.Context, transactionID string) (string, error) {
	var escrowStatus string
	err := r.db.QueryRow(ctx, `SELECT escrow_status FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&escrowStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to inspect transaction %s: %w", transactionID, err)
	}
	return escrowStatus, nil
}
