package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
	"github.com/workhive/workhive_backend/internal/utils/locking"
)

type orderService struct {
	BaseService
	orderRepo   portsrepo.OrderRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepository
	listingRepo portsrepo.ServiceListingRepository
	convRepo    portsrepo.ConversationRepository
	gateway     portsgw.PaymentGateway
	locks       *locking.KeyedMutex
	notifier    portssvc.NotifierSvc
}

// NewOrderService creates the order lifecycle service. locks must be the
// same instance the payment service uses so transitions on one order
// serialize across both.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepository,
	listingRepo portsrepo.ServiceListingRepository,
	convRepo portsrepo.ConversationRepository,
	gw portsgw.PaymentGateway,
	locks *locking.KeyedMutex,
	notifier portssvc.NotifierSvc,
) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:   orderRepo,
		txnRepo:     txnRepo,
		ledgerRepo:  ledgerRepo,
		listingRepo: listingRepo,
		convRepo:    convRepo,
		gateway:     gw,
		locks:       locks,
		notifier:    notifier,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder creates a PENDING order together with its placeholder payment
// transaction and conversation. The transaction and conversation rows are
// written before the order row so the order's references are valid on insert.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*domain.Order, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, fmt.Errorf("%w: service listing %s is not active", apperrors.ErrValidation, req.ServiceID)
	}
	if listing.FreelancerID == actorID {
		return nil, fmt.Errorf("%w: cannot commission your own service", apperrors.ErrValidation)
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	if !req.Deadline.After(now) {
		return nil, fmt.Errorf("%w: deadline must be in the future", apperrors.ErrValidation)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
	order := domain.Order{
		OrderID:      uuid.NewString(),
		ServiceID:    listing.ServiceID,
		ClientID:     actorID,
		FreelancerID: listing.FreelancerID,
		Price:        req.Price,
		Deadline:     req.Deadline,
		Description:  req.Description,
		Status:       domain.OrderPending,
		AuditFields:  audit,
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OrderID:       order.OrderID,
		ClientID:      order.ClientID,
		FreelancerID:  order.FreelancerID,
		Amount:        order.Price,
		Type:          domain.TransactionPayment,
		Status:        domain.TransactionPending,
		EscrowStatus:  domain.EscrowPending,
		Description:   fmt.Sprintf("Payment for order %s", order.OrderID),
		AuditFields:   audit,
	}
	conv := domain.Conversation{
		ConversationID: uuid.NewString(),
		OrderID:        order.OrderID,
		ClientID:       order.ClientID,
		FreelancerID:   order.FreelancerID,
		CreatedAt:      now,
	}
	order.TransactionID = txn.TransactionID
	order.ConversationID = conv.ConversationID

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save placeholder transaction", slog.String("order_id", order.OrderID))
		return nil, err
	}
	if err := s.convRepo.SaveConversation(ctx, conv); err != nil {
		s.LogError(ctx, err, "failed to save conversation", slog.String("order_id", order.OrderID))
		return nil, err
	}
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "failed to save order", slog.String("order_id", order.OrderID))
		return nil, err
	}

	s.notifier.NotifyOrderEvent(ctx, &order, order.FreelancerID,
		fmt.Sprintf("New order for %q awaiting your response", listing.Title))
	s.LogInfo(ctx, "order created",
		slog.String("order_id", order.OrderID),
		slog.String("client_id", order.ClientID),
		slog.String("freelancer_id", order.FreelancerID))
	return &order, nil
}

// UpdateOrderStatus is the transition entry point for the non-payment target
// states. IN_PROGRESS and CLOSED are reachable only through the payment
// operations.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, actorID string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of order %s", apperrors.ErrUnauthorized, orderID)
	}

	switch status {
	case domain.OrderCompleted, domain.OrderDeclined:
		if actorID != order.FreelancerID {
			return nil, fmt.Errorf("%w: only the freelancer may mark an order %s", apperrors.ErrUnauthorized, status)
		}
	case domain.OrderCancelled:
		// Either participant may cancel.
	default:
		return nil, fmt.Errorf("%w: status %s is set by payment operations, not directly", apperrors.ErrValidation, status)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, status)
	}

	switch status {
	case domain.OrderCompleted:
		now := time.Now().UTC()
		if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status, actorID, now); err != nil {
			return nil, err
		}
	case domain.OrderCancelled, domain.OrderDeclined:
		if err := s.unwindPayment(ctx, order, status, actorID); err != nil {
			return nil, err
		}
	}

	order.Status = status
	recipient := order.FreelancerID
	if actorID == order.FreelancerID {
		recipient = order.ClientID
	}
	s.notifier.NotifyOrderEvent(ctx, order, recipient, transitionContent(status))
	s.LogInfo(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("status", string(status)),
		slog.String("actor_id", actorID))
	return order, nil
}

// unwindPayment applies the financial side effect of a cancel or decline.
// Held escrow is refunded through the gateway and the ledger; an already
// settled non-escrow payment is reversed with a companion refund; an unfunded
// order needs only the status write.
func (s *orderService) unwindPayment(ctx context.Context, order *domain.Order, toStatus domain.OrderStatus, actorID string) error {
	now := time.Now().UTC()
	if order.TransactionID == "" {
		return s.orderRepo.UpdateOrderStatus(ctx, order.OrderID, toStatus, actorID, now)
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, order.TransactionID)
	if err != nil {
		return err
	}

	switch {
	case txn.EscrowStatus == domain.EscrowHeld:
		if txn.PaymentIntentID != "" {
			if _, err := s.gateway.Refund(ctx, txn.PaymentIntentID, nil); err != nil {
				// An already refunded intent means a previous attempt got as
				// far as the gateway; the ledger write below settles it.
				if !errors.Is(err, apperrors.ErrAlreadyRefunded) {
					return err
				}
			}
		}
		return s.ledgerRepo.RecordRefund(ctx, *txn, toStatus, actorID)
	case txn.Status == domain.TransactionCompleted:
		_, err := s.ledgerRepo.RecordReversal(ctx, *txn, toStatus, actorID)
		return err
	default:
		return s.orderRepo.UpdateOrderStatus(ctx, order.OrderID, toStatus, actorID, now)
	}
}

func transitionContent(status domain.OrderStatus) string {
	switch status {
	case domain.OrderCompleted:
		return "The freelancer marked your order as completed. Review the work and release payment."
	case domain.OrderCancelled:
		return "The order was cancelled. Any funds held in escrow have been refunded."
	case domain.OrderDeclined:
		return "The freelancer declined the order. Any funds held in escrow have been refunded."
	default:
		return fmt.Sprintf("Order status changed to %s", status)
	}
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID, actorID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of order %s", apperrors.ErrUnauthorized, orderID)
	}
	return order, nil
}

func (s *orderService) ListOrdersAsClient(ctx context.Context, actorID string, limit, offset int) ([]domain.Order, error) {
	return s.orderRepo.ListOrdersByClient(ctx, actorID, limit, offset)
}

func (s *orderService) ListOrdersAsFreelancer(ctx context.Context, actorID string, limit, offset int) ([]domain.Order, error) {
	return s.orderRepo.ListOrdersByFreelancer(ctx, actorID, limit, offset)
}

func (s *orderService) ListOrderTransactions(ctx context.Context, orderID, actorID string) ([]domain.Transaction, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of order %s", apperrors.ErrUnauthorized, orderID)
	}
	return s.txnRepo.ListTransactionsByOrder(ctx, orderID)
}

func (s *orderService) ListUserTransactions(ctx context.Context, actorID string, limit, offset int) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByUser(ctx, actorID, limit, offset)
}
