package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// CreateOrderRequest defines the data required to commission a service.
// The freelancer is derived from the service listing owner, never supplied.
type CreateOrderRequest struct {
	ServiceID   string          `json:"serviceID" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Deadline    time.Time       `json:"deadline" binding:"required"`
	Description string          `json:"description"`
}

// UpdateOrderStatusRequest carries the requested target status.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,orderstatus"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Role   string `form:"role" binding:"omitempty,oneof=client freelancer"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// OrderResponse is the externally visible order shape. Reference fields are
// opaque identifiers; empty strings are omitted rather than ambiguous.
type OrderResponse struct {
	OrderID          string          `json:"orderID"`
	ServiceID        string          `json:"serviceID"`
	ClientID         string          `json:"clientID"`
	FreelancerID     string          `json:"freelancerID"`
	Price            decimal.Decimal `json:"price"`
	Deadline         time.Time       `json:"deadline"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	TransactionID    string          `json:"transactionID,omitempty"`
	ConversationID   string          `json:"conversationID,omitempty"`
	DisputeRisk      float64         `json:"disputeRisk"`
	FlaggedForReview bool            `json:"flaggedForReview"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToOrderResponse converts a domain.Order to its response DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:          o.OrderID,
		ServiceID:        o.ServiceID,
		ClientID:         o.ClientID,
		FreelancerID:     o.FreelancerID,
		Price:            o.Price,
		Deadline:         o.Deadline,
		Description:      o.Description,
		Status:           string(o.Status),
		TransactionID:    o.TransactionID,
		ConversationID:   o.ConversationID,
		DisputeRisk:      o.DisputeRisk,
		FlaggedForReview: o.FlaggedForReview,
		CreatedAt:        o.CreatedAt,
	}
}

// ListOrdersResponse wraps the list of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// ToListOrdersResponse converts a slice of domain orders.
func ToListOrdersResponse(orders []domain.Order) ListOrdersResponse {
	resp := ListOrdersResponse{Orders: make([]OrderResponse, len(orders))}
	for i := range orders {
		resp.Orders[i] = ToOrderResponse(&orders[i])
	}
	return resp
}
