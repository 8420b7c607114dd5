package handler

import (
	cartapp "github.com/foodhub/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler exposes the caller's session cart
type CartHandler struct {
	BaseHandler
	carts *cartapp.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cartapp.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// View godoc
// @Summary      View cart
// @Description  Return the caller's session cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) View(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	h.Success(c, h.carts.View(sessionOf(p)))
}

// AddItem godoc
// @Summary      Add cart item
// @Description  Add a menu item to the session cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddItemRequest true "Request body"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req cartapp.AddItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), sessionOf(p), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem godoc
// @Summary      Update cart item
// @Description  Set the quantity of a cart line; zero removes it
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        itemId path string true "Menu item ID"
// @Param        request body cartapp.UpdateQuantityRequest true "Request body"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req cartapp.UpdateQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Success(c, h.carts.UpdateQuantity(sessionOf(p), c.Param("itemId"), req.Quantity))
}

// RemoveItem godoc
// @Summary      Remove cart item
// @Description  Remove a line from the session cart
// @Tags         cart
// @Produce      json
// @Param        itemId path string true "Menu item ID"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	h.Success(c, h.carts.RemoveItem(sessionOf(p), c.Param("itemId")))
}

// Clear godoc
// @Summary      Clear cart
// @Description  Empty the session cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	h.Success(c, h.carts.Clear(sessionOf(p)))
}

// Checkout godoc
// @Summary      Check out cart
// @Description  Place an order from the session cart and empty it. Supports Idempotency-Key.
// @Tags         cart
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Success      201 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	order, err := h.carts.Checkout(c.Request.Context(), sessionOf(p), customerOf(p))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Order created successfully", order)
}
