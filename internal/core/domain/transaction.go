package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the financial movement a transaction records.
type TransactionType string

const (
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionRefund     TransactionType = "REFUND"
	TransactionCommission TransactionType = "COMMISSION"
)

// TransactionStatus is the processing state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionRefunded  TransactionStatus = "REFUNDED"
	TransactionEscrowed  TransactionStatus = "ESCROWED"
	TransactionReleased  TransactionStatus = "RELEASED"
)

// EscrowStatus is the escrow sub-state of a transaction.
// HELD may move to RELEASED or REFUNDED; both are terminal.
type EscrowStatus string

const (
	EscrowPending  EscrowStatus = "PENDING"
	EscrowHeld     EscrowStatus = "HELD"
	EscrowReleased EscrowStatus = "RELEASED"
	EscrowRefunded EscrowStatus = "REFUNDED"
)

// Transaction records a financial movement tied to an order.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	OrderID           string            `json:"orderID"`
	ClientID          string            `json:"clientID"`
	FreelancerID      string            `json:"freelancerID"`
	Amount            decimal.Decimal   `json:"amount"` // equals order price for PAYMENT/REFUND
	Type              TransactionType   `json:"type"`
	Status            TransactionStatus `json:"status"`
	EscrowStatus      EscrowStatus      `json:"escrowStatus"`
	PaymentIntentID   string            `json:"paymentIntentID,omitempty"`
	ChargeID          string            `json:"chargeID,omitempty"`
	PaymentMethod     string            `json:"paymentMethod,omitempty"`
	EscrowReleaseDate *time.Time        `json:"escrowReleaseDate,omitempty"`
	Description       string            `json:"description"`
	AuditFields
}

// Consistent reports whether status and escrow sub-state agree.
// Used when detecting ledger divergence after partial failures.
func (t *Transaction) Consistent() bool {
	switch t.EscrowStatus {
	case EscrowHeld:
		return t.Status == TransactionEscrowed
	case EscrowReleased:
		return t.Status == TransactionReleased
	case EscrowRefunded:
		return t.Status == TransactionRefunded
	case EscrowPending:
		return t.Status == TransactionPending || t.Status == TransactionCompleted || t.Status == TransactionFailed
	}
	return false
}
