package handler

import (
	catalogapp "github.com/foodhub/backend/internal/application/catalog"
	orderingapp "github.com/foodhub/backend/internal/application/ordering"
	reviewapp "github.com/foodhub/backend/internal/application/review"
	statsapp "github.com/foodhub/backend/internal/application/stats"
	"github.com/foodhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// MerchantHandler serves the merchant dashboard: the caller's restaurant,
// its menu, orders, reviews and statistics
type MerchantHandler struct {
	BaseHandler
	restaurants *catalogapp.RestaurantService
	menu        *catalogapp.MenuService
	orders      *orderingapp.OrderService
	reviews     *reviewapp.ReviewService
	stats       *statsapp.StatsService
}

// MerchantServices groups the services behind the merchant routes
type MerchantServices struct {
	Restaurants *catalogapp.RestaurantService
	Menu        *catalogapp.MenuService
	Orders      *orderingapp.OrderService
	Reviews     *reviewapp.ReviewService
	Stats       *statsapp.StatsService
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(s MerchantServices) *MerchantHandler {
	return &MerchantHandler{
		restaurants: s.Restaurants,
		menu:        s.Menu,
		orders:      s.Orders,
		reviews:     s.Reviews,
		stats:       s.Stats,
	}
}

type merchantOrdersQuery struct {
	Status string `form:"status" binding:"omitempty,orderstatus"`
}

// GetRestaurant godoc
// @Summary      Get my restaurant
// @Description  Return the restaurant owned by the caller
// @Tags         merchant
// @Produce      json
// @Success      200 {object} dto.Response{data=catalogapp.RestaurantResponse}
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/restaurant [get]
func (h *MerchantHandler) GetRestaurant(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurants.GetMyRestaurant(c.Request.Context(), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, restaurant)
}

// CreateRestaurant godoc
// @Summary      Create my restaurant
// @Description  Create the caller's restaurant; a merchant owns at most one
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateRestaurantRequest true "Request body"
// @Success      201 {object} dto.Response{data=catalogapp.RestaurantResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/restaurant [post]
func (h *MerchantHandler) CreateRestaurant(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req catalogapp.CreateRestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	restaurant, err := h.restaurants.CreateMyRestaurant(c.Request.Context(), p.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Restaurant created successfully", restaurant)
}

// UpdateRestaurant godoc
// @Summary      Update my restaurant
// @Description  Update the caller's restaurant details
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.UpdateRestaurantRequest true "Request body"
// @Success      200 {object} dto.Response{data=catalogapp.RestaurantResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/restaurant [put]
func (h *MerchantHandler) UpdateRestaurant(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateRestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	restaurant, err := h.restaurants.UpdateMyRestaurant(c.Request.Context(), p.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Restaurant info updated successfully", restaurant)
}

// ListMenu godoc
// @Summary      List my menu
// @Description  List every menu item of the caller's restaurant
// @Tags         merchant
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.MenuItemResponse}
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/menu [get]
func (h *MerchantHandler) ListMenu(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	items, err := h.menu.ListMyMenu(c.Request.Context(), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateMenuItem godoc
// @Summary      Add menu item
// @Description  Add a menu item to the caller's restaurant
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateMenuItemRequest true "Request body"
// @Success      201 {object} dto.Response{data=catalogapp.MenuItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/menu [post]
func (h *MerchantHandler) CreateMenuItem(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req catalogapp.CreateMenuItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.menu.CreateMenuItem(c.Request.Context(), p.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Menu item added successfully", item)
}

// UpdateMenuItem godoc
// @Summary      Update menu item
// @Description  Update a menu item of the caller's restaurant
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        itemId path string true "Menu item ID"
// @Param        request body catalogapp.UpdateMenuItemRequest true "Request body"
// @Success      200 {object} dto.Response{data=catalogapp.MenuItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/menu/{itemId} [put]
func (h *MerchantHandler) UpdateMenuItem(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateMenuItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.menu.UpdateMenuItem(c.Request.Context(), p.UserID, c.Param("itemId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Menu item updated successfully", item)
}

// DeleteMenuItem godoc
// @Summary      Delete menu item
// @Description  Delete a menu item of the caller's restaurant
// @Tags         merchant
// @Produce      json
// @Param        itemId path string true "Menu item ID"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/menu/{itemId} [delete]
func (h *MerchantHandler) DeleteMenuItem(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	if err := h.menu.DeleteMenuItem(c.Request.Context(), p.UserID, c.Param("itemId")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Menu item deleted successfully", nil)
}

// ListOrders godoc
// @Summary      List restaurant orders
// @Description  List the orders of the caller's restaurant, newest first
// @Tags         merchant
// @Produce      json
// @Param        status query string false "Filter by order status"
// @Success      200 {object} dto.Response{data=[]orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/orders [get]
func (h *MerchantHandler) ListOrders(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var q merchantOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orders, err := h.orders.ListMerchantOrders(c.Request.Context(), p.UserID, q.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// UpdateOrderStatus godoc
// @Summary      Update order status
// @Description  Move an order of the caller's restaurant to a new status. Ownership is checked before the status value.
// @Tags         merchant
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body orderingapp.UpdateStatusRequest true "Request body"
// @Success      200 {object} dto.Response{data=orderingapp.StatusUpdateResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/orders/{orderId}/status [put]
func (h *MerchantHandler) UpdateOrderStatus(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req orderingapp.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.orders.UpdateOrderStatus(c.Request.Context(), p.UserID, c.Param("orderId"), req.StatusToken())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Order status updated successfully", result)
}

// ListReviews godoc
// @Summary      List restaurant reviews
// @Description  List the reviews of the caller's restaurant, newest first
// @Tags         merchant
// @Produce      json
// @Success      200 {object} dto.Response{data=[]reviewapp.ReviewResponse}
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/reviews [get]
func (h *MerchantHandler) ListReviews(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListMerchantReviews(c.Request.Context(), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// Stats godoc
// @Summary      Restaurant statistics
// @Description  Order, revenue, menu and rating figures for the caller's restaurant
// @Tags         merchant
// @Produce      json
// @Success      200 {object} dto.Response{data=statsapp.StatisticsResponse}
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /merchant/stats [get]
func (h *MerchantHandler) Stats(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	stats, err := h.stats.GetStatistics(c.Request.Context(), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
