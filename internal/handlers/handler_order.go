package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhive/workhive_backend/internal/core/domain"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

// orderHandler handles HTTP requests for the order lifecycle.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers order lifecycle and transaction query routes.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PATCH("/:orderID/status", h.updateOrderStatus)
		orders.GET("/:orderID/transactions", h.listOrderTransactions)
	}
	rg.GET("/transactions", h.listUserTransactions)
}

// createOrder godoc
// @Summary Commission a service
// @Description Creates a PENDING order for a service listing. The authenticated user becomes the client.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Service listing not found"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List own orders
// @Description Lists the authenticated user's orders, as client by default or as freelancer with role=freelancer.
// @Tags orders
// @Produce json
// @Param role query string false "client or freelancer" default(client)
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListOrdersResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		orders []domain.Order
		err    error
	)
	if params.Role == "freelancer" {
		orders, err = h.orderService.ListOrdersAsFreelancer(c.Request.Context(), actorID, params.Limit, params.Offset)
	} else {
		orders, err = h.orderService.ListOrdersAsClient(c.Request.Context(), actorID, params.Limit, params.Offset)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// getOrder godoc
// @Summary Get an order
// @Description Returns an order visible to the authenticated participant.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("orderID"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrderStatus godoc
// @Summary Transition an order
// @Description Applies a lifecycle transition (COMPLETED, CANCELLED, DECLINED). Cancelling or declining a funded order refunds the escrow.
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param status body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Illegal transition"
// @Security BearerAuth
// @Router /orders/{orderID}/status [patch]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("orderID"), req.Status, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrderTransactions godoc
// @Summary List an order's transactions
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/transactions [get]
func (h *orderHandler) listOrderTransactions(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	txns, err := h.orderService.ListOrderTransactions(c.Request.Context(), c.Param("orderID"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// listUserTransactions godoc
// @Summary List own transactions
// @Description Lists transactions where the authenticated user is client or freelancer.
// @Tags orders
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *orderHandler) listUserTransactions(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	txns, err := h.orderService.ListUserTransactions(c.Request.Context(), actorID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}
