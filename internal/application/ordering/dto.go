package ordering

import (
	"encoding/json"
	"time"

	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one cart line submitted at checkout
type OrderItemRequest struct {
	ID             string          `json:"id" binding:"required,max=64"`
	Name           string          `json:"name" binding:"required,max=200"`
	Price          decimal.Decimal `json:"price" swaggertype:"number"`
	Quantity       int             `json:"quantity" binding:"gte=1"`
	RestaurantID   string          `json:"restaurantId" binding:"max=64"`
	RestaurantName string          `json:"restaurantName" binding:"max=200"`
	Image          string          `json:"image" binding:"max=500"`
}

// CreateOrderRequest is the checkout payload
type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items" binding:"dive"`
	Total        decimal.Decimal    `json:"total" swaggertype:"number"`
	RestaurantID string             `json:"restaurantId"`
}

// UpdateStatusRequest carries the target status. Status stays raw so that a
// value of the wrong JSON type reaches the service, which checks ownership
// before presence and token.
type UpdateStatusRequest struct {
	Status json.RawMessage `json:"status" swaggertype:"string" example:"confirmed"`
}

// StatusToken returns the status string. A non-string value comes back as
// its JSON text, which is never a valid status.
func (r UpdateStatusRequest) StatusToken() string {
	if len(r.Status) == 0 {
		return ""
	}
	var token string
	if err := json.Unmarshal(r.Status, &token); err == nil {
		return token
	}
	return string(r.Status)
}

// OrderItemResponse is one line of an order snapshot
type OrderItemResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	RestaurantID   string  `json:"restaurantId,omitempty"`
	RestaurantName string  `json:"restaurantName,omitempty"`
	Image          string  `json:"image,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userId"`
	CustomerName   string              `json:"customerName"`
	CustomerPhone  string              `json:"customerPhone"`
	RestaurantID   string              `json:"restaurantId"`
	RestaurantName string              `json:"restaurantName,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	Total          float64             `json:"total"`
	Status         string              `json:"status"`
	IsReviewed     bool                `json:"isReviewed"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// StatusUpdateResponse is the result of a status change
type StatusUpdateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ToOrderItems converts request lines to the domain snapshot
func ToOrderItems(items []OrderItemRequest) []ordering.OrderItem {
	out := make([]ordering.OrderItem, len(items))
	for i, item := range items {
		out[i] = ordering.OrderItem{
			MenuItemID:     item.ID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			Image:          item.Image,
		}
	}
	return out
}

// ToOrderResponse converts a domain order to its response
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:             item.MenuItemID,
			Name:           item.Name,
			Price:          item.Price.InexactFloat64(),
			Quantity:       item.Quantity,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			Image:          item.Image,
		}
	}
	return OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		RestaurantID:   o.RestaurantID,
		RestaurantName: o.RestaurantName,
		Items:          items,
		Total:          o.Total.Round(2).InexactFloat64(),
		Status:         o.Status.String(),
		IsReviewed:     o.IsReviewed,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ToOrderResponses converts a list of orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
