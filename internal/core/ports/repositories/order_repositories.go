package repositories

import (
	"context"
	"time"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// OrderReader defines read operations for order data.
type OrderReader interface {
	// FindOrderByID retrieves a specific order by its ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByClient retrieves orders commissioned by the given client, newest first.
	ListOrdersByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.Order, error)

	// ListOrdersByFreelancer retrieves orders assigned to the given freelancer, newest first.
	ListOrdersByFreelancer(ctx context.Context, freelancerID string, limit, offset int) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data.
// Status changes flow through the ledger repository when they carry a
// financial effect; UpdateOrderStatus is for the non-financial transitions.
type OrderWriter interface {
	// SaveOrder persists a new order.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderStatus sets the order status.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string, now time.Time) error

	// LinkConversation attaches the conversation created for the order.
	LinkConversation(ctx context.Context, orderID, conversationID string) error

	// LinkTransaction attaches the order's payment transaction.
	LinkTransaction(ctx context.Context, orderID, transactionID string) error

	// UpdateDisputeRisk stores the dispute risk score and review flag.
	UpdateDisputeRisk(ctx context.Context, orderID string, risk float64, flagged bool) error
}

// OrderRepositoryFacade combines all order-related repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
