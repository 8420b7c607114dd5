package handler

import (
	catalogapp "github.com/foodhub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves the public restaurant catalog
type RestaurantHandler struct {
	BaseHandler
	restaurants *catalogapp.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurants *catalogapp.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

// List godoc
// @Summary      List restaurants
// @Description  List active restaurants
// @Tags         restaurants
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.RestaurantResponse}
// @Failure      500 {object} dto.Response
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	restaurants, err := h.restaurants.ListRestaurants(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, restaurants)
}

// Get godoc
// @Summary      Get restaurant
// @Description  Get an active restaurant by ID
// @Tags         restaurants
// @Produce      json
// @Param        restaurantId path string true "Restaurant ID"
// @Success      200 {object} dto.Response{data=catalogapp.RestaurantResponse}
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /restaurants/{restaurantId} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, err := h.restaurants.GetRestaurant(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, restaurant)
}

// Menu godoc
// @Summary      Get restaurant menu
// @Description  List the available menu items of an active restaurant
// @Tags         restaurants
// @Produce      json
// @Param        restaurantId path string true "Restaurant ID"
// @Success      200 {object} dto.Response{data=[]catalogapp.MenuItemResponse}
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /restaurants/{restaurantId}/menu [get]
func (h *RestaurantHandler) Menu(c *gin.Context) {
	items, err := h.restaurants.GetMenu(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
