package repositories

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// LedgerRepository is the single mutation path for the combined
// order/transaction/user-balance state.
//
// Every sequence commits the transaction row first, user balance rows second
// and the order row last, each as its own statement. A failure after the
// transaction write is surfaced to the caller but the committed transaction
// status is retained: money state is the source of truth and order state is
// repaired by reconciliation, never the other way around.
type LedgerRepository interface {
	// RecordPayment marks the order's transaction ESCROWED/HELD with the
	// gateway identifiers, links it to the order and advances the order to
	// IN_PROGRESS. The escrow write is conditional on the sub-state not
	// already being HELD; a concurrent duplicate surfaces ErrDuplicate.
	RecordPayment(ctx context.Context, order domain.Order, txn domain.Transaction) error

	// RecordRelease transitions the transaction HELD -> RELEASED, credits the
	// freelancer's earnings and balance and the client's spending by the
	// transaction amount, then closes the order. Fails with ErrNotInEscrow if
	// the escrow sub-state is not HELD at commit time (compare-and-swap).
	RecordRelease(ctx context.Context, txn domain.Transaction, releasedBy string) error

	// RecordRefund transitions the transaction HELD -> REFUNDED and moves the
	// order to toStatus (CANCELLED or DECLINED). No balances change: the
	// release never happened. Fails with ErrNotInEscrow if the escrow
	// sub-state is not HELD at commit time.
	RecordRefund(ctx context.Context, txn domain.Transaction, toStatus domain.OrderStatus, refundedBy string) error

	// RecordReversal reverses a previously COMPLETED non-escrow payment: it
	// writes a companion REFUND transaction for audit history, marks the
	// original REFUNDED, and reverses earnings/balance/spending floor-clamped
	// at zero. Returns the companion transaction.
	RecordReversal(ctx context.Context, txn domain.Transaction, toStatus domain.OrderStatus, requestedBy string) (*domain.Transaction, error)
}
