package ordering

import (
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is raised when a checkout is persisted
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID      string          `json:"order_id"`
	UserID       string          `json:"user_id"`
	RestaurantID string          `json:"restaurant_id"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		RestaurantID:    order.RestaurantID,
		Total:           order.Total,
		ItemCount:       len(order.Items),
	}
}

// OrderStatusChangedEvent is raised on every merchant status update
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID      string      `json:"order_id"`
	RestaurantID string      `json:"restaurant_id"`
	UserID       string      `json:"user_id"`
	FromStatus   OrderStatus `json:"from_status"`
	ToStatus     OrderStatus `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		RestaurantID:    order.RestaurantID,
		UserID:          order.UserID,
		FromStatus:      from,
		ToStatus:        order.Status,
	}
}
