package cart

import "github.com/foodhub/backend/internal/domain/cart"

// AddItemRequest selects a menu item into the cart
type AddItemRequest struct {
	MenuItemID string `json:"menuItemId" binding:"required,max=64"`
}

// UpdateQuantityRequest sets the quantity of a cart line. Zero or less removes it.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line
type CartItemResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	RestaurantID   string  `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	Image          string  `json:"image,omitempty"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	Items        []CartItemResponse `json:"items"`
	Total        float64            `json:"total"`
	ItemsCount   int                `json:"itemsCount"`
	RestaurantID string             `json:"restaurantId,omitempty"`
}

// ToCartResponse converts a cart to its response
func ToCartResponse(c *cart.Cart) CartResponse {
	items := c.Items()
	out := make([]CartItemResponse, len(items))
	for i, item := range items {
		out[i] = CartItemResponse{
			ID:             item.ID,
			Name:           item.Name,
			Price:          item.Price.InexactFloat64(),
			Quantity:       item.Quantity,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			Image:          item.Image,
		}
	}
	return CartResponse{
		Items:        out,
		Total:        c.Total().Round(2).InexactFloat64(),
		ItemsCount:   c.ItemsCount(),
		RestaurantID: c.RestaurantID(),
	}
}
