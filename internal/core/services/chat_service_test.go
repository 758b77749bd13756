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
	"github.com/workhive/workhive_backend/internal/dto"
)

// MockMessageRepository is a mock type for the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) SaveMessage(ctx context.Context, msg domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) ListRecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

type ChatServiceTestSuite struct {
	suite.Suite
	mockConvRepo  *MockConversationRepository
	mockMsgRepo   *MockMessageRepository
	mockOrderRepo *MockOrderRepository
	mockNotifier  *MockNotifier
	service       portssvc.ChatSvcFacade

	clientID     string
	freelancerID string
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.mockConvRepo = new(MockConversationRepository)
	suite.mockMsgRepo = new(MockMessageRepository)
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.clientID = uuid.NewString()
	suite.freelancerID = uuid.NewString()

	suite.service = services.NewChatService(
		suite.mockConvRepo,
		suite.mockMsgRepo,
		suite.mockOrderRepo,
		suite.mockNotifier,
		services.NewKeywordRiskAnalyzer(),
	)
}

func (suite *ChatServiceTestSuite) newConversation() (*domain.Conversation, *domain.Order) {
	order := &domain.Order{
		OrderID:      uuid.NewString(),
		ClientID:     suite.clientID,
		FreelancerID: suite.freelancerID,
		Status:       domain.OrderInProgress,
	}
	conv := &domain.Conversation{
		ConversationID: uuid.NewString(),
		OrderID:        order.OrderID,
		ClientID:       suite.clientID,
		FreelancerID:   suite.freelancerID,
		CreatedAt:      time.Now().UTC(),
	}
	order.ConversationID = conv.ConversationID
	return conv, order
}

func (suite *ChatServiceTestSuite) TestGetConversationByOrder_Success() {
	ctx := context.Background()
	conv, _ := suite.newConversation()
	msgs := []domain.Message{
		{MessageID: uuid.NewString(), ConversationID: conv.ConversationID, SenderID: suite.clientID, Body: "hi"},
	}

	suite.mockConvRepo.On("FindConversationByOrder", ctx, conv.OrderID).Return(conv, nil).Once()
	suite.mockMsgRepo.On("ListMessages", ctx, conv.ConversationID).Return(msgs, nil).Once()

	gotConv, gotMsgs, err := suite.service.GetConversationByOrder(ctx, conv.OrderID, suite.clientID)

	suite.Require().NoError(err)
	suite.Equal(conv, gotConv)
	suite.Len(gotMsgs, 1)
}

func (suite *ChatServiceTestSuite) TestGetConversationByOrder_NonParticipant() {
	ctx := context.Background()
	conv, _ := suite.newConversation()
	suite.mockConvRepo.On("FindConversationByOrder", ctx, conv.OrderID).Return(conv, nil).Once()

	_, _, err := suite.service.GetConversationByOrder(ctx, conv.OrderID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockMsgRepo.AssertNotCalled(suite.T(), "ListMessages", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestSendMessage_Success() {
	ctx := context.Background()
	conv, order := suite.newConversation()

	suite.mockConvRepo.On("FindConversationByID", ctx, conv.ConversationID).Return(conv, nil).Once()
	suite.mockMsgRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.Message")).Return(nil).Once()
	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockNotifier.On("NotifyMessage", ctx, order, mock.AnythingOfType("*domain.Message"), suite.freelancerID, mock.AnythingOfType("string")).Once()

	msg, err := suite.service.SendMessage(ctx, dto.SendMessageRequest{
		ConversationID: conv.ConversationID,
		Body:           "When can I expect the first draft?",
	}, suite.clientID)

	suite.Require().NoError(err)
	suite.Require().NotNil(msg)
	suite.Equal(suite.clientID, msg.SenderID)
	suite.Equal(conv.ConversationID, msg.ConversationID)
	suite.NotEmpty(msg.MessageID)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestSendMessage_NonParticipant() {
	ctx := context.Background()
	conv, _ := suite.newConversation()
	suite.mockConvRepo.On("FindConversationByID", ctx, conv.ConversationID).Return(conv, nil).Once()

	msg, err := suite.service.SendMessage(ctx, dto.SendMessageRequest{
		ConversationID: conv.ConversationID,
		Body:           "let me in",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(msg)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockMsgRepo.AssertNotCalled(suite.T(), "SaveMessage", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestAskDisputeAssistant_FlagsHighRisk() {
	ctx := context.Background()
	conv, order := suite.newConversation()
	transcript := []domain.Message{
		{MessageID: uuid.NewString(), ConversationID: conv.ConversationID, SenderID: suite.clientID, Body: "You are ignoring me and I want a refund"},
		{MessageID: uuid.NewString(), ConversationID: conv.ConversationID, SenderID: suite.clientID, Body: "This is a scam, I will get a lawyer"},
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockConvRepo.On("FindConversationByOrder", ctx, order.OrderID).Return(conv, nil).Once()
	suite.mockMsgRepo.On("ListRecentMessages", ctx, conv.ConversationID, 50).Return(transcript, nil).Once()
	suite.mockOrderRepo.On("UpdateDisputeRisk", ctx, order.OrderID,
		mock.MatchedBy(func(risk float64) bool { return risk > 0.7 }), true).Return(nil).Once()
	var assistantMsg domain.Message
	suite.mockMsgRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.Message")).
		Run(func(args mock.Arguments) { assistantMsg = args.Get(1).(domain.Message) }).
		Return(nil).Once()
	suite.mockNotifier.On("NotifyMessage", ctx, order, mock.AnythingOfType("*domain.Message"), suite.freelancerID, mock.AnythingOfType("string")).Once()

	msg, err := suite.service.AskDisputeAssistant(ctx, order.OrderID, "What should I do?", suite.clientID)

	suite.Require().NoError(err)
	suite.Require().NotNil(msg)
	suite.Equal(services.AssistantSenderID, msg.SenderID)
	suite.Equal(services.AssistantSenderID, assistantMsg.SenderID)
	suite.True(order.FlaggedForReview)
	suite.Greater(order.DisputeRisk, 0.7)

	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestAskDisputeAssistant_CalmConversation() {
	ctx := context.Background()
	conv, order := suite.newConversation()
	transcript := []domain.Message{
		{MessageID: uuid.NewString(), ConversationID: conv.ConversationID, SenderID: suite.freelancerID, Body: "First draft attached, happy to revise"},
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockConvRepo.On("FindConversationByOrder", ctx, order.OrderID).Return(conv, nil).Once()
	suite.mockMsgRepo.On("ListRecentMessages", ctx, conv.ConversationID, 50).Return(transcript, nil).Once()
	suite.mockOrderRepo.On("UpdateDisputeRisk", ctx, order.OrderID,
		mock.MatchedBy(func(risk float64) bool { return risk < 0.3 }), false).Return(nil).Once()
	suite.mockMsgRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.Message")).Return(nil).Once()
	suite.mockNotifier.On("NotifyMessage", ctx, order, mock.AnythingOfType("*domain.Message"), suite.clientID, mock.AnythingOfType("string")).Once()

	msg, err := suite.service.AskDisputeAssistant(ctx, order.OrderID, "Everything looks fine so far", suite.freelancerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(msg)
	suite.False(order.FlaggedForReview)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestAskDisputeAssistant_NonParticipant() {
	ctx := context.Background()
	_, order := suite.newConversation()
	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	msg, err := suite.service.AskDisputeAssistant(ctx, order.OrderID, "anything", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(msg)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}

// The keyword engine is deterministic; scores depend only on which tiers match.
func TestKeywordRiskAnalyzer_Tiers(t *testing.T) {
	analyzer := services.NewKeywordRiskAnalyzer()
	ctx := context.Background()

	cases := []struct {
		name       string
		transcript string
		question   string
		wantRisk   float64
	}{
		{"calm", "draft delivered\nlooks good", "any concerns?", 0.2},
		{"medium only", "the delivery is late again", "what now?", 0.35},
		{"high only", "I will sue you", "help", 0.6},
		{"high and medium", "this is a scam", "I want my refund", 0.75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply, risk, err := analyzer.Analyze(ctx, tc.transcript, tc.question)
			assert.NoError(t, err)
			assert.NotEmpty(t, reply)
			assert.InDelta(t, tc.wantRisk, risk, 0.001)
		})
	}
}
