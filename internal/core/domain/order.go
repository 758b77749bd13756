package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderClosed     OrderStatus = "CLOSED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderDeclined   OrderStatus = "DECLINED"
)

// legalTransitions is the order state machine.
// CLOSED, CANCELLED and DECLINED are terminal.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderInProgress, OrderCancelled, OrderDeclined},
	OrderInProgress: {OrderCompleted, OrderCancelled, OrderDeclined},
	OrderCompleted:  {OrderClosed},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderClosed, OrderCancelled, OrderDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0 && ValidOrderStatus(s)
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents a client commission of a freelancer service.
// Reference fields hold opaque identifiers only; resolved views are built in DTOs.
// An empty TransactionID means payment was never initiated for the order.
type Order struct {
	OrderID            string          `json:"orderID"`
	ServiceID          string          `json:"serviceID"`
	ClientID           string          `json:"clientID"`
	FreelancerID       string          `json:"freelancerID"`
	Price              decimal.Decimal `json:"price"` // immutable after creation
	Deadline           time.Time       `json:"deadline"`
	Description        string          `json:"description"`
	Status             OrderStatus     `json:"status"`
	TransactionID      string          `json:"transactionID,omitempty"`
	ConversationID     string          `json:"conversationID,omitempty"`
	ClientReviewID     string          `json:"clientReviewID,omitempty"`
	FreelancerReviewID string          `json:"freelancerReviewID,omitempty"`
	DisputeRisk        float64         `json:"disputeRisk"`
	FlaggedForReview   bool            `json:"flaggedForReview"`
	AuditFields
}

// IsParticipant reports whether userID is the order's client or freelancer.
func (o *Order) IsParticipant(userID string) bool {
	return userID == o.ClientID || userID == o.FreelancerID
}
