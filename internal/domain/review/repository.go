package review

import "context"

// RatingSummary aggregates the reviews of one restaurant
type RatingSummary struct {
	Average float64
	Count   int64
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error

	// FindByRestaurant lists reviews newest first
	FindByRestaurant(ctx context.Context, restaurantID string) ([]Review, error)

	// FindByOrder lists every review attached to an order
	FindByOrder(ctx context.Context, orderID string) ([]Review, error)

	// Summarize returns the average rating and review count of a restaurant
	Summarize(ctx context.Context, restaurantID string) (RatingSummary, error)

	// FindUnflaggedOrderIDs returns up to limit order IDs that have a review
	// while the order is still marked unreviewed
	FindUnflaggedOrderIDs(ctx context.Context, limit int) ([]string, error)
}
