package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
	"github.com/workhive/workhive_backend/internal/utils/locking"
)

// gatewayCallTimeout bounds each provider round trip so a hung gateway cannot
// pin an order's lock indefinitely.
const gatewayCallTimeout = 15 * time.Second

type paymentService struct {
	BaseService
	orderRepo  portsrepo.OrderRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
	ledgerRepo portsrepo.LedgerRepository
	gateway    portsgw.PaymentGateway
	locks      *locking.KeyedMutex
	notifier   portssvc.NotifierSvc
}

// NewPaymentService creates the payment-bearing transition service. locks
// must be shared with the order service.
func NewPaymentService(
	orderRepo portsrepo.OrderRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepository,
	gw portsgw.PaymentGateway,
	locks *locking.KeyedMutex,
	notifier portssvc.NotifierSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		orderRepo:  orderRepo,
		txnRepo:    txnRepo,
		ledgerRepo: ledgerRepo,
		gateway:    gw,
		locks:      locks,
		notifier:   notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// InitiatePayment authorizes and captures the order price into escrow and
// advances the order PENDING -> IN_PROGRESS. The gateway is called before any
// ledger write, so a gateway failure or timeout leaves no financial state to
// repair.
func (s *paymentService) InitiatePayment(ctx context.Context, orderID string, method portsgw.PaymentMethod, actorID string) (*dto.PaymentResult, error) {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, txn, err := s.loadOrderAndTransaction(ctx, orderID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != order.ClientID {
		return nil, fmt.Errorf("%w: only the client may pay for order %s", apperrors.ErrUnauthorized, orderID)
	}
	if order.Status != domain.OrderPending {
		if txn != nil && txn.EscrowStatus == domain.EscrowHeld {
			return nil, fmt.Errorf("order %s is already funded: %w", orderID, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("%w: order %s is %s, payment requires PENDING", apperrors.ErrInvalidTransition, orderID, order.Status)
	}
	if txn == nil {
		return nil, fmt.Errorf("order %s has no payment transaction: %w", orderID, apperrors.ErrInconsistentState)
	}
	if txn.EscrowStatus == domain.EscrowHeld {
		return nil, fmt.Errorf("transaction %s is already funded: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	intent, err := s.gateway.Authorize(gctx, order.Price, "USD", portsgw.Metadata{"order_id": orderID})
	if err != nil {
		s.LogError(ctx, err, "payment authorization failed", slog.String("order_id", orderID))
		return nil, err
	}
	charge, err := s.gateway.Capture(gctx, intent.IntentID, method)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentMethodInvalid) {
			// A declined instrument is an outcome, not a server fault. The
			// placeholder is marked FAILED and the payer can resubmit.
			now := time.Now().UTC()
			if markErr := s.txnRepo.MarkTransactionFailed(ctx, txn.TransactionID, err.Error(), actorID, now); markErr != nil {
				s.LogError(ctx, markErr, "failed to record capture failure", slog.String("transaction_id", txn.TransactionID))
			}
			return &dto.PaymentResult{
				Success:         false,
				Message:         err.Error(),
				PaymentIntentID: intent.IntentID,
			}, nil
		}
		s.LogError(ctx, err, "payment capture failed", slog.String("order_id", orderID))
		return nil, err
	}

	txn.Status = domain.TransactionEscrowed
	txn.EscrowStatus = domain.EscrowHeld
	txn.PaymentIntentID = intent.IntentID
	txn.ChargeID = charge.ChargeID
	txn.PaymentMethod = method.Type
	txn.LastUpdatedBy = actorID
	if err := s.ledgerRepo.RecordPayment(ctx, *order, *txn); err != nil {
		s.LogError(ctx, err, "failed to record payment", slog.String("order_id", orderID))
		return nil, err
	}

	order.Status = domain.OrderInProgress
	order.TransactionID = txn.TransactionID
	s.notifier.NotifyOrderEvent(ctx, order, order.FreelancerID,
		"Payment received and held in escrow. Work can begin.")
	s.LogInfo(ctx, "payment captured into escrow",
		slog.String("order_id", orderID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("payment_intent_id", intent.IntentID))
	return s.result(order, txn, "Payment held in escrow", intent.IntentID), nil
}

// ReleaseEscrow transfers held funds to the freelancer and closes a
// COMPLETED order. The ledger compare-and-swap decides the winner under
// concurrency; this method also rechecks under the order lock so the loser
// usually fails before touching the gateway.
func (s *paymentService) ReleaseEscrow(ctx context.Context, orderID, actorID string) (*dto.PaymentResult, error) {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, txn, err := s.loadOrderAndTransaction(ctx, orderID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != order.ClientID {
		return nil, fmt.Errorf("%w: only the client may release escrow for order %s", apperrors.ErrUnauthorized, orderID)
	}
	if order.Status != domain.OrderCompleted {
		return nil, fmt.Errorf("%w: order %s is %s, release requires COMPLETED", apperrors.ErrInvalidTransition, orderID, order.Status)
	}
	if txn == nil || txn.EscrowStatus != domain.EscrowHeld {
		return nil, fmt.Errorf("order %s has no held escrow: %w", orderID, apperrors.ErrNotInEscrow)
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()
	if _, err := s.gateway.Release(gctx, txn.PaymentIntentID); err != nil {
		s.LogError(ctx, err, "gateway release failed", slog.String("order_id", orderID))
		return nil, err
	}

	if err := s.ledgerRepo.RecordRelease(ctx, *txn, actorID); err != nil {
		s.LogError(ctx, err, "failed to record release", slog.String("order_id", orderID))
		return nil, err
	}

	now := time.Now().UTC()
	txn.Status = domain.TransactionReleased
	txn.EscrowStatus = domain.EscrowReleased
	txn.EscrowReleaseDate = &now
	order.Status = domain.OrderClosed
	s.notifier.NotifyOrderEvent(ctx, order, order.FreelancerID,
		"Escrow released. The payment has been added to your balance.")
	s.LogInfo(ctx, "escrow released",
		slog.String("order_id", orderID),
		slog.String("transaction_id", txn.TransactionID))
	return s.result(order, txn, "Escrow released to freelancer", txn.PaymentIntentID), nil
}

// RefundEscrow returns held funds to the client and cancels the order.
// Either participant may trigger it.
func (s *paymentService) RefundEscrow(ctx context.Context, orderID, actorID string) (*dto.PaymentResult, error) {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, txn, err := s.loadOrderAndTransaction(ctx, orderID, actorID)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.EscrowStatus != domain.EscrowHeld {
		return nil, fmt.Errorf("order %s has no held escrow: %w", orderID, apperrors.ErrNotInEscrow)
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()
	if _, err := s.gateway.Refund(gctx, txn.PaymentIntentID, nil); err != nil && !errors.Is(err, apperrors.ErrAlreadyRefunded) {
		s.LogError(ctx, err, "gateway refund failed", slog.String("order_id", orderID))
		return nil, err
	}

	if err := s.ledgerRepo.RecordRefund(ctx, *txn, domain.OrderCancelled, actorID); err != nil {
		s.LogError(ctx, err, "failed to record refund", slog.String("order_id", orderID))
		return nil, err
	}

	txn.Status = domain.TransactionRefunded
	txn.EscrowStatus = domain.EscrowRefunded
	order.Status = domain.OrderCancelled
	recipient := order.FreelancerID
	if actorID == order.FreelancerID {
		recipient = order.ClientID
	}
	s.notifier.NotifyOrderEvent(ctx, order, recipient,
		"The escrow was refunded and the order cancelled.")
	s.LogInfo(ctx, "escrow refunded",
		slog.String("order_id", orderID),
		slog.String("transaction_id", txn.TransactionID))
	return s.result(order, txn, "Escrow refunded to client", txn.PaymentIntentID), nil
}

// loadOrderAndTransaction fetches the order, enforces participation and
// fetches the linked transaction when one exists.
func (s *paymentService) loadOrderAndTransaction(ctx context.Context, orderID, actorID string) (*domain.Order, *domain.Transaction, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !order.IsParticipant(actorID) {
		return nil, nil, fmt.Errorf("%w: not a participant of order %s", apperrors.ErrUnauthorized, orderID)
	}
	if order.TransactionID == "" {
		return order, nil, nil
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, order.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	return order, txn, nil
}

func (s *paymentService) result(order *domain.Order, txn *domain.Transaction, msg, intentID string) *dto.PaymentResult {
	txnResp := dto.ToTransactionResponse(txn)
	orderResp := dto.ToOrderResponse(order)
	return &dto.PaymentResult{
		Success:         true,
		Message:         msg,
		Transaction:     &txnResp,
		Order:           &orderResp,
		PaymentIntentID: intentID,
	}
}
