package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/workhive_backend/internal/core/ports/gateway"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

// paymentHandler handles the payment-bearing order transitions.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers payment routes under the order resource.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	orders := rg.Group("/orders")
	{
		orders.POST("/:orderID/payment", h.initiatePayment)
		orders.POST("/:orderID/release", h.releaseEscrow)
		orders.POST("/:orderID/refund", h.refundEscrow)
	}
}

// initiatePayment godoc
// @Summary Pay for an order
// @Description Captures the order price into escrow and advances the order to IN_PROGRESS. Client only.
// @Tags payments
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param payment body dto.InitiatePaymentRequest true "Payment method"
// @Success 200 {object} dto.PaymentResult
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} dto.PaymentResult "Payment method declined"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order already funded or not PENDING"
// @Failure 502 {object} ErrorResponse "Gateway unavailable"
// @Security BearerAuth
// @Router /orders/{orderID}/payment [post]
func (h *paymentHandler) initiatePayment(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	method := gateway.PaymentMethod{
		Type:        req.Type,
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVC:         req.CVC,
	}
	result, err := h.paymentService.InitiatePayment(c.Request.Context(), c.Param("orderID"), method, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !result.Success {
		// Declined instrument: an outcome, not an error. 402 carries the
		// gateway's message so the payer can correct and resubmit.
		c.JSON(http.StatusPaymentRequired, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// releaseEscrow godoc
// @Summary Release escrow
// @Description Transfers held funds to the freelancer and closes a COMPLETED order. Client only.
// @Tags payments
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.PaymentResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No held escrow or order not COMPLETED"
// @Security BearerAuth
// @Router /orders/{orderID}/release [post]
func (h *paymentHandler) releaseEscrow(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	result, err := h.paymentService.ReleaseEscrow(c.Request.Context(), c.Param("orderID"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// refundEscrow godoc
// @Summary Refund escrow
// @Description Returns held funds to the client and cancels the order. Either participant may call it.
// @Tags payments
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.PaymentResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No held escrow"
// @Security BearerAuth
// @Router /orders/{orderID}/refund [post]
func (h *paymentHandler) refundEscrow(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	result, err := h.paymentService.RefundEscrow(c.Request.Context(), c.Param("orderID"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
