package ordering

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderFilter narrows a restaurant order listing
type OrderFilter struct {
	RestaurantID string
	// Status is optional; empty means every status
	Status OrderStatus
}

// StatusSummary aggregates the orders of one restaurant in one status
type StatusSummary struct {
	Status  OrderStatus
	Count   int64
	Revenue decimal.Decimal
}

// OrderRepository defines the interface for order persistence.
// Listings are sorted by creation time, newest first.
type OrderRepository interface {
	// FindByID returns shared.ErrNotFound when the order does not exist
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByUser lists the orders placed by a customer
	FindByUser(ctx context.Context, userID string) ([]Order, error)

	// FindByRestaurant lists the orders of a restaurant
	FindByRestaurant(ctx context.Context, filter OrderFilter) ([]Order, error)

	// Create inserts a new order together with its item snapshot
	Create(ctx context.Context, order *Order) error

	// UpdateStatus writes status and updated_at only
	UpdateStatus(ctx context.Context, order *Order) error

	// MarkReviewed sets is_reviewed on the order
	MarkReviewed(ctx context.Context, orderID string) error

	// SummarizeByStatus returns per-status counts and revenue for a restaurant
	SummarizeByStatus(ctx context.Context, restaurantID string) ([]StatusSummary, error)
}
