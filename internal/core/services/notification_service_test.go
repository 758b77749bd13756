package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/core/services"
	"github.com/workhive/workhive_backend/internal/dispatcher"
)

// MockNotificationRepository is a mock type for the NotificationRepositoryFacade interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListNotificationsByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, now time.Time) error {
	args := m.Called(ctx, notificationID, now)
	return args.Error(0)
}

type NotificationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockNotificationRepository
	bus      *dispatcher.Dispatcher
	service  portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNotificationRepository)
	suite.bus = dispatcher.New(nil)
	suite.service = services.NewNotificationService(suite.mockRepo, suite.bus)
}

func (suite *NotificationServiceTestSuite) TearDownTest() {
	suite.bus.Close()
}

// waitEvent reads one event from ch or fails the test after a short timeout.
func (suite *NotificationServiceTestSuite) waitEvent(ch <-chan portssvc.Event) portssvc.Event {
	select {
	case evt := <-ch:
		return evt
	case <-time.After(time.Second):
		suite.FailNow("timed out waiting for event")
		return portssvc.Event{}
	}
}

func (suite *NotificationServiceTestSuite) TestMarkNotificationRead_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    actorID,
		Content:        "Order status changed",
	}

	suite.mockRepo.On("FindNotificationByID", ctx, n.NotificationID).Return(n, nil).Once()
	suite.mockRepo.On("MarkNotificationRead", ctx, n.NotificationID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.MarkNotificationRead(ctx, n.NotificationID, actorID)

	suite.Require().NoError(err)
	suite.True(updated.Read)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestMarkNotificationRead_WrongRecipient() {
	ctx := context.Background()
	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    uuid.NewString(),
	}
	suite.mockRepo.On("FindNotificationByID", ctx, n.NotificationID).Return(n, nil).Once()

	updated, err := suite.service.MarkNotificationRead(ctx, n.NotificationID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkNotificationRead", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestNotifyOrderEvent_PublishesToRecipient() {
	ctx := context.Background()
	recipientID := uuid.NewString()
	order := &domain.Order{OrderID: uuid.NewString(), ClientID: uuid.NewString(), FreelancerID: recipientID}

	ch, cancel := suite.bus.SubscribeUser(recipientID)
	defer cancel()

	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	suite.service.NotifyOrderEvent(ctx, order, recipientID, "Work can begin")

	kinds := map[portssvc.EventKind]bool{}
	kinds[suite.waitEvent(ch).Kind] = true
	kinds[suite.waitEvent(ch).Kind] = true
	suite.True(kinds[portssvc.EventOrderUpdated])
	suite.True(kinds[portssvc.EventNotification])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotifyOrderEvent_PersistFailureStillPublishes() {
	ctx := context.Background()
	recipientID := uuid.NewString()
	order := &domain.Order{OrderID: uuid.NewString(), FreelancerID: recipientID}

	ch, cancel := suite.bus.SubscribeUser(recipientID)
	defer cancel()

	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(assert.AnError).Once()

	// Must not panic or propagate; live subscribers still hear about the change.
	suite.service.NotifyOrderEvent(ctx, order, recipientID, "Escrow released")

	evt := suite.waitEvent(ch)
	suite.Equal(order.OrderID, evt.OrderID)
}

func (suite *NotificationServiceTestSuite) TestNotifyMessage_PublishesOnOrderChannel() {
	ctx := context.Background()
	recipientID := uuid.NewString()
	order := &domain.Order{OrderID: uuid.NewString(), ClientID: recipientID}
	msg := &domain.Message{MessageID: uuid.NewString(), ConversationID: uuid.NewString(), Body: "hello"}

	ch, cancel := suite.bus.SubscribeOrder(order.OrderID)
	defer cancel()

	suite.mockRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.RecipientID == recipientID && n.MessageID == msg.MessageID
	})).Return(nil).Once()

	suite.service.NotifyMessage(ctx, order, msg, recipientID, "New message on your order")

	evt := suite.waitEvent(ch)
	suite.Equal(portssvc.EventMessageSent, evt.Kind)
	suite.Equal(order.OrderID, evt.OrderID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestListNotifications() {
	ctx := context.Background()
	actorID := uuid.NewString()
	expected := []domain.Notification{{NotificationID: uuid.NewString(), RecipientID: actorID}}
	suite.mockRepo.On("ListNotificationsByRecipient", ctx, actorID, 20, 0).Return(expected, nil).Once()

	got, err := suite.service.ListNotifications(ctx, actorID, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
