package repositories

import (
	"context"
	"time"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByOrder retrieves all transactions for an order, newest first.
	ListTransactionsByOrder(ctx context.Context, orderID string) ([]domain.Transaction, error)

	// ListTransactionsByUser retrieves transactions where the user is client or freelancer, newest first.
	ListTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data outside
// the ledger mutation sequences (placeholder creation at order time).
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkTransactionFailed records a failed capture attempt. Held escrow is
	// never overwritten.
	MarkTransactionFailed(ctx context.Context, transactionID, reason, updatedBy string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
