package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// InitiatePaymentRequest carries the payer's instrument. Card data is passed
// through to the gateway for validation and never echoed back.
type InitiatePaymentRequest struct {
	Type        string `json:"type" binding:"required,oneof=card wallet"`
	CardNumber  string `json:"cardNumber,omitempty"`
	ExpiryMonth int    `json:"expiryMonth,omitempty" binding:"omitempty,min=1,max=12"`
	ExpiryYear  int    `json:"expiryYear,omitempty"`
	CVC         string `json:"cvc,omitempty"`
}

// TransactionResponse is the externally visible transaction shape.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	OrderID           string          `json:"orderID"`
	ClientID          string          `json:"clientID"`
	FreelancerID      string          `json:"freelancerID"`
	Amount            decimal.Decimal `json:"amount"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	EscrowStatus      string          `json:"escrowStatus"`
	EscrowReleaseDate *time.Time      `json:"escrowReleaseDate,omitempty"`
	Description       string          `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
// Gateway identifiers and payment method details are deliberately omitted.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		OrderID:           t.OrderID,
		ClientID:          t.ClientID,
		FreelancerID:      t.FreelancerID,
		Amount:            t.Amount,
		Type:              string(t.Type),
		Status:            string(t.Status),
		EscrowStatus:      string(t.EscrowStatus),
		EscrowReleaseDate: t.EscrowReleaseDate,
		Description:       t.Description,
		CreatedAt:         t.CreatedAt,
	}
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	resp := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(txns))}
	for i := range txns {
		resp.Transactions[i] = ToTransactionResponse(&txns[i])
	}
	return resp
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// PaymentResult is the outcome of a payment-bearing transition. Message is
// suitable for display; on capture failure it carries the gateway's
// validation message so the payer can correct and resubmit.
type PaymentResult struct {
	Success         bool                 `json:"success"`
	Message         string               `json:"message"`
	Transaction     *TransactionResponse `json:"transaction,omitempty"`
	Order           *OrderResponse       `json:"order,omitempty"`
	PaymentIntentID string               `json:"paymentIntentID,omitempty"`
}
