package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/core/services"
	"github.com/workhive/workhive_backend/internal/gateway"
	"github.com/workhive/workhive_backend/internal/utils/locking"
)

// Luhn-valid and Luhn-invalid card numbers.
const (
	validCardNumber    = "4242424242424242"
	declinedCardNumber = "4242424242424241"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockOrderRepo  *MockOrderRepository
	mockTxnRepo    *MockTransactionRepository
	mockLedgerRepo *MockLedgerRepository
	mockNotifier   *MockNotifier
	intentStore    *gateway.MemoryIntentStore
	service        portssvc.PaymentSvcFacade

	clientID     string
	freelancerID string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.intentStore = gateway.NewMemoryIntentStore()
	suite.clientID = uuid.NewString()
	suite.freelancerID = uuid.NewString()

	gw := gateway.NewSimulatedGateway(suite.intentStore, 0)
	suite.service = services.NewPaymentService(
		suite.mockOrderRepo,
		suite.mockTxnRepo,
		suite.mockLedgerRepo,
		gw,
		locking.NewKeyedMutex(),
		suite.mockNotifier,
	)
}

func (suite *PaymentServiceTestSuite) newFundableOrder() (*domain.Order, *domain.Transaction) {
	order := &domain.Order{
		OrderID:       uuid.NewString(),
		ServiceID:     uuid.NewString(),
		ClientID:      suite.clientID,
		FreelancerID:  suite.freelancerID,
		Price:         decimal.NewFromInt(500),
		Deadline:      time.Now().UTC().Add(48 * time.Hour),
		Status:        domain.OrderPending,
		TransactionID: uuid.NewString(),
	}
	txn := &domain.Transaction{
		TransactionID: order.TransactionID,
		OrderID:       order.OrderID,
		ClientID:      order.ClientID,
		FreelancerID:  order.FreelancerID,
		Amount:        order.Price,
		Type:          domain.TransactionPayment,
		Status:        domain.TransactionPending,
		EscrowStatus:  domain.EscrowPending,
	}
	return order, txn
}

// heldOrder returns an order whose escrow is funded, with the intent seeded
// into the store so gateway calls against it succeed.
func (suite *PaymentServiceTestSuite) heldOrder(status domain.OrderStatus) (*domain.Order, *domain.Transaction) {
	order, txn := suite.newFundableOrder()
	order.Status = status
	txn.Status = domain.TransactionEscrowed
	txn.EscrowStatus = domain.EscrowHeld
	txn.PaymentIntentID = "pi_" + uuid.NewString()
	txn.ChargeID = "ch_" + uuid.NewString()

	err := suite.intentStore.PutIntent(context.Background(), portsgw.PaymentIntent{
		IntentID: txn.PaymentIntentID,
		Amount:   txn.Amount,
		Currency: "USD",
		Status:   portsgw.IntentSucceeded,
		Created:  time.Now().UTC(),
	})
	suite.Require().NoError(err)
	return order, txn
}

func cardMethod(number string) portsgw.PaymentMethod {
	return portsgw.PaymentMethod{
		Type:        "card",
		CardNumber:  number,
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().UTC().Year() + 2,
		CVC:         "123",
	}
}

// --- InitiatePayment ---

func (suite *PaymentServiceTestSuite) TestInitiatePayment_Success() {
	ctx := context.Background()
	order, txn := suite.newFundableOrder()

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockLedgerRepo.On("RecordPayment", mock.Anything, mock.AnythingOfType("domain.Order"),
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.EscrowStatus == domain.EscrowHeld &&
				t.Status == domain.TransactionEscrowed &&
				t.PaymentIntentID != "" &&
				t.ChargeID != ""
		})).Return(nil).Once()
	suite.mockNotifier.On("NotifyOrderEvent", mock.Anything, mock.AnythingOfType("*domain.Order"), suite.freelancerID, mock.AnythingOfType("string")).Once()

	result, err := suite.service.InitiatePayment(ctx, order.OrderID, cardMethod(validCardNumber), suite.clientID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Success)
	suite.NotEmpty(result.PaymentIntentID)
	suite.Require().NotNil(result.Order)
	suite.Equal(string(domain.OrderInProgress), result.Order.Status)
	suite.Require().NotNil(result.Transaction)
	suite.Equal(string(domain.EscrowHeld), result.Transaction.EscrowStatus)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestInitiatePayment_DeclinedCard() {
	ctx := context.Background()
	order, txn := suite.newFundableOrder()

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("MarkTransactionFailed", mock.Anything, txn.TransactionID, mock.AnythingOfType("string"), suite.clientID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.InitiatePayment(ctx, order.OrderID, cardMethod(declinedCardNumber), suite.clientID)

	// A declined card is an outcome, not an error.
	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.False(result.Success)
	suite.NotEmpty(result.Message)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyOrderEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestInitiatePayment_FreelancerCannotPay() {
	ctx := context.Background()
	order, txn := suite.newFundableOrder()

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	result, err := suite.service.InitiatePayment(ctx, order.OrderID, cardMethod(validCardNumber), suite.freelancerID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *PaymentServiceTestSuite) TestInitiatePayment_AlreadyFunded() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderInProgress)

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	result, err := suite.service.InitiatePayment(ctx, order.OrderID, cardMethod(validCardNumber), suite.clientID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

// --- ReleaseEscrow ---

func (suite *PaymentServiceTestSuite) TestReleaseEscrow_Success() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderCompleted)

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockLedgerRepo.On("RecordRelease", mock.Anything, mock.AnythingOfType("domain.Transaction"), suite.clientID).Return(nil).Once()
	suite.mockNotifier.On("NotifyOrderEvent", mock.Anything, mock.AnythingOfType("*domain.Order"), suite.freelancerID, mock.AnythingOfType("string")).Once()

	result, err := suite.service.ReleaseEscrow(ctx, order.OrderID, suite.clientID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Success)
	suite.Equal(string(domain.OrderClosed), result.Order.Status)
	suite.Equal(string(domain.EscrowReleased), result.Transaction.EscrowStatus)
	suite.NotNil(result.Transaction.EscrowReleaseDate)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReleaseEscrow_FreelancerCannotRelease() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderCompleted)

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	result, err := suite.service.ReleaseEscrow(ctx, order.OrderID, suite.freelancerID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *PaymentServiceTestSuite) TestReleaseEscrow_RequiresCompletedOrder() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderInProgress)

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	result, err := suite.service.ReleaseEscrow(ctx, order.OrderID, suite.clientID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *PaymentServiceTestSuite) TestReleaseEscrow_NoHeldEscrow() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderCompleted)
	txn.Status = domain.TransactionReleased
	txn.EscrowStatus = domain.EscrowReleased

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	result, err := suite.service.ReleaseEscrow(ctx, order.OrderID, suite.clientID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotInEscrow)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordRelease", mock.Anything, mock.Anything, mock.Anything)
}

// Two concurrent releases of the same order resolve to exactly one winner.
// The loser observes the released escrow under the order lock and fails
// before touching the gateway or the ledger.
func (suite *PaymentServiceTestSuite) TestReleaseEscrow_ConcurrentSingleWinner() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderCompleted)

	releasedTxn := *txn
	releasedTxn.Status = domain.TransactionReleased
	releasedTxn.EscrowStatus = domain.EscrowReleased

	firstOrder := *order
	secondOrder := *order
	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(&firstOrder, nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(&secondOrder, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(&releasedTxn, nil).Once()
	suite.mockLedgerRepo.On("RecordRelease", mock.Anything, mock.AnythingOfType("domain.Transaction"), suite.clientID).Return(nil).Once()
	suite.mockNotifier.On("NotifyOrderEvent", mock.Anything, mock.AnythingOfType("*domain.Order"), suite.freelancerID, mock.AnythingOfType("string")).Once()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.ReleaseEscrow(ctx, order.OrderID, suite.clientID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, notInEscrow int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			suite.ErrorIs(err, apperrors.ErrNotInEscrow)
			notInEscrow++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, notInEscrow)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- RefundEscrow ---

func (suite *PaymentServiceTestSuite) TestRefundEscrow_FreelancerCanRefund() {
	ctx := context.Background()
	order, txn := suite.heldOrder(domain.OrderInProgress)

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockLedgerRepo.On("RecordRefund", mock.Anything, mock.AnythingOfType("domain.Transaction"), domain.OrderCancelled, suite.freelancerID).Return(nil).Once()
	suite.mockNotifier.On("NotifyOrderEvent", mock.Anything, mock.AnythingOfType("*domain.Order"), suite.clientID, mock.AnythingOfType("string")).Once()

	result, err := suite.service.RefundEscrow(ctx, order.OrderID, suite.freelancerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Success)
	suite.Equal(string(domain.OrderCancelled), result.Order.Status)
	suite.Equal(string(domain.EscrowRefunded), result.Transaction.EscrowStatus)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRefundEscrow_NothingHeld() {
	ctx := context.Background()
	order, txn := suite.newFundableOrder()

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, order.OrderID).Return(order, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	result, err := suite.service.RefundEscrow(ctx, order.OrderID, suite.clientID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotInEscrow)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
