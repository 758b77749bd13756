package services

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/dto"
)

// OrderReaderSvc defines actor-authorized read operations for orders.
// Every method fails with ErrUnauthorized unless actorID is a participant.
type OrderReaderSvc interface {
	// GetOrderByID retrieves an order visible to the actor.
	GetOrderByID(ctx context.Context, orderID, actorID string) (*domain.Order, error)

	// ListOrdersAsClient retrieves the actor's commissioned orders, newest first.
	ListOrdersAsClient(ctx context.Context, actorID string, limit, offset int) ([]domain.Order, error)

	// ListOrdersAsFreelancer retrieves the actor's assigned orders, newest first.
	ListOrdersAsFreelancer(ctx context.Context, actorID string, limit, offset int) ([]domain.Order, error)

	// ListOrderTransactions retrieves the order's transactions, newest first.
	ListOrderTransactions(ctx context.Context, orderID, actorID string) ([]domain.Transaction, error)

	// ListUserTransactions retrieves transactions the actor participates in, newest first.
	ListUserTransactions(ctx context.Context, actorID string, limit, offset int) ([]domain.Transaction, error)
}

// OrderWriterSvc defines the state-machine entry points.
type OrderWriterSvc interface {
	// CreateOrder creates a PENDING order with its placeholder transaction
	// and conversation. The actor becomes the order's client; the freelancer
	// is derived from the service listing owner.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Order, error)

	// UpdateOrderStatus is the transition entry point for the non-payment
	// transitions (COMPLETED, CANCELLED, DECLINED) subject to the guard table.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, actorID string) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces.
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
