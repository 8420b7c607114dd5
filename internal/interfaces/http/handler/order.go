package handler

import (
	orderingapp "github.com/foodhub/backend/internal/application/ordering"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles customer order placement and history
type OrderHandler struct {
	BaseHandler
	orders *orderingapp.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create godoc
// @Summary      Place an order
// @Description  Create a pending order from a checkout payload. Supports Idempotency-Key.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body orderingapp.CreateOrderRequest true "Request body"
// @Success      201 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req orderingapp.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), customerOf(p), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Order created successfully", order)
}

// ListMine godoc
// @Summary      List my orders
// @Description  List the caller's orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]orderingapp.OrderResponse}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListMyOrders(c.Request.Context(), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
