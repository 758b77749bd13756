package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

// chatHandler handles HTTP requests for per-order conversations.
type chatHandler struct {
	chatService portssvc.ChatSvcFacade
}

func newChatHandler(cs portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{chatService: cs}
}

// registerChatRoutes registers conversation and dispute assistant routes.
func registerChatRoutes(rg *gin.RouterGroup, chatService portssvc.ChatSvcFacade) {
	h := newChatHandler(chatService)

	rg.GET("/orders/:orderID/conversation", h.getConversation)
	rg.POST("/orders/:orderID/assistant", h.askAssistant)
	rg.POST("/messages", h.sendMessage)
}

// getConversation godoc
// @Summary Get an order's conversation
// @Description Returns the conversation and its messages. Participants only.
// @Tags chat
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.ConversationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/conversation [get]
func (h *chatHandler) getConversation(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	conv, msgs, err := h.chatService.GetConversationByOrder(c.Request.Context(), c.Param("orderID"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToConversationResponse(conv, msgs))
}

// sendMessage godoc
// @Summary Send a chat message
// @Description Posts a message into a conversation the authenticated user participates in.
// @Tags chat
// @Accept json
// @Produce json
// @Param message body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /messages [post]
func (h *chatHandler) sendMessage(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	msg, err := h.chatService.SendMessage(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageResponse(msg))
}

// askAssistant godoc
// @Summary Ask the dispute assistant
// @Description Runs the dispute risk analysis over the order's conversation and posts the assistant's reply.
// @Tags chat
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param question body dto.AskAssistantRequest true "Question"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/assistant [post]
func (h *chatHandler) askAssistant(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.AskAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	msg, err := h.chatService.AskDisputeAssistant(c.Request.Context(), c.Param("orderID"), req.Question, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMessageResponse(msg))
}
