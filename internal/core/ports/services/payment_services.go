package services

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/ports/gateway"
	"github.com/workhive/workhive_backend/internal/dto"
)

// PaymentSvcFacade owns the payment-bearing order transitions. All methods
// serialize per order: concurrent calls on the same order resolve to exactly
// one winner.
type PaymentSvcFacade interface {
	// InitiatePayment authorizes and captures the order price into escrow and
	// advances PENDING -> IN_PROGRESS. Client only.
	InitiatePayment(ctx context.Context, orderID string, method gateway.PaymentMethod, actorID string) (*dto.PaymentResult, error)

	// ReleaseEscrow transfers held funds to the freelancer and closes a
	// COMPLETED order. Client only.
	ReleaseEscrow(ctx context.Context, orderID, actorID string) (*dto.PaymentResult, error)

	// RefundEscrow returns held funds to the client and cancels the order.
	// Either party may call it.
	RefundEscrow(ctx context.Context, orderID, actorID string) (*dto.PaymentResult, error)
}
