package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
)

// streamHandler serves live event streams over SSE.
type streamHandler struct {
	orderService portssvc.OrderSvcFacade
	events       portssvc.EventBus
}

func newStreamHandler(os portssvc.OrderSvcFacade, events portssvc.EventBus) *streamHandler {
	return &streamHandler{orderService: os, events: events}
}

// registerStreamRoutes registers the SSE endpoints.
func registerStreamRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, events portssvc.EventBus) {
	h := newStreamHandler(orderService, events)

	rg.GET("/orders/:orderID/events", h.streamOrderEvents)
	rg.GET("/notifications/stream", h.streamNotifications)
}

func setSSEHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
}

// streamOrderEvents godoc
// @Summary Stream order events
// @Description Streams order updates and messages for one order over server-sent events. Participants only. Delivery is best-effort; reconnect and re-query on gaps.
// @Tags streams
// @Produce text/event-stream
// @Param orderID path string true "Order ID"
// @Success 200 {string} string "SSE stream"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/events [get]
func (h *streamHandler) streamOrderEvents(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("orderID")

	// Participation check before subscribing; the stream itself carries no
	// further authorization.
	if _, err := h.orderService.GetOrderByID(c.Request.Context(), orderID, actorID); err != nil {
		respondError(c, err)
		return
	}

	ch, cancel := h.events.SubscribeOrder(orderID)
	defer cancel()

	setSSEHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case evt, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent(string(evt.Kind), evt)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// streamNotifications godoc
// @Summary Stream own notifications
// @Description Streams notifications addressed to the authenticated user over server-sent events.
// @Tags streams
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Security BearerAuth
// @Router /notifications/stream [get]
func (h *streamHandler) streamNotifications(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	ch, cancel := h.events.SubscribeUser(actorID)
	defer cancel()

	setSSEHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case evt, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent(string(evt.Kind), evt)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
