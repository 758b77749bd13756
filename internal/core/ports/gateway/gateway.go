package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// IntentStatus is the provider-side state of a payment intent.
type IntentStatus string

const (
	IntentRequiresMethod IntentStatus = "requires_payment_method"
	IntentSucceeded      IntentStatus = "succeeded"
)

// PaymentIntent is an authorization created at the provider before capture.
type PaymentIntent struct {
	IntentID string
	Amount   decimal.Decimal
	Currency string
	Status   IntentStatus
	Created  time.Time
}

// Charge is the result of capturing a payment intent.
type Charge struct {
	ChargeID string
	IntentID string
	Amount   decimal.Decimal
	Status   string
}

// Transfer is the result of releasing captured funds to the payee.
type Transfer struct {
	TransferID string
	Amount     decimal.Decimal
	Status     string
}

// RefundReceipt is the result of refunding captured funds to the payer.
type RefundReceipt struct {
	RefundID string
	Amount   decimal.Decimal
	Status   string
}

// PaymentMethod carries the payer's instrument. Card numbers are validated
// by the gateway and are never echoed back to callers.
type PaymentMethod struct {
	Type        string
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	CVC         string
}

// Metadata is opaque provider-side context attached to an intent.
type Metadata map[string]string

// PaymentGateway is the external payment provider contract.
//
// Calls block until a terminal result or error; callers must bound them with
// a context deadline. A timeout before Capture returns means the transition
// failed before any ledger write and is safe to retry after re-querying.
type PaymentGateway interface {
	// Authorize creates a payment intent for the given amount. It has no side
	// effects beyond intent creation and fails with ErrGatewayUnavailable if
	// the provider cannot be reached.
	Authorize(ctx context.Context, amount decimal.Decimal, currency string, meta Metadata) (*PaymentIntent, error)

	// Capture validates the payment method and marks the intent succeeded.
	// Fails with ErrPaymentMethodInvalid on malformed fields or a failed
	// checksum, and ErrNotFound for an unknown intent.
	Capture(ctx context.Context, intentID string, method PaymentMethod) (*Charge, error)

	// Release transfers captured funds to the payee. The intent must be in
	// succeeded state; otherwise fails with ErrInvalidTransition.
	Release(ctx context.Context, intentID string) (*Transfer, error)

	// Refund returns captured funds to the payer, defaulting to the full
	// amount when amount is nil. Repeated refunds of the same intent fail
	// with ErrAlreadyRefunded rather than double-refunding.
	Refund(ctx context.Context, intentID string, amount *decimal.Decimal) (*RefundReceipt, error)
}

// IntentStore is the backing store for in-flight payment intents, injected
// into the gateway so restarts and horizontal scaling do not lose state.
type IntentStore interface {
	// PutIntent creates or replaces an intent record.
	PutIntent(ctx context.Context, intent PaymentIntent) error

	// GetIntent retrieves an intent, or ErrNotFound.
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)

	// SetStatus updates the intent status.
	SetStatus(ctx context.Context, intentID string, status IntentStatus) error

	// MarkRefunded flips the refunded flag; returns ErrAlreadyRefunded if it
	// was already set (atomic check-and-set).
	MarkRefunded(ctx context.Context, intentID string) error
}
