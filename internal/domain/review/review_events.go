package review

import "github.com/foodhub/backend/internal/domain/shared"

// Aggregate type constant
const AggregateTypeReview = "Review"

// EventTypeReviewSubmitted is raised when a review is persisted
const EventTypeReviewSubmitted = "ReviewSubmitted"

// ReviewSubmittedEvent is raised when a customer reviews an order
type ReviewSubmittedEvent struct {
	shared.BaseDomainEvent
	ReviewID     string `json:"review_id"`
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	UserID       string `json:"user_id"`
	Rating       int    `json:"rating"`
}

// NewReviewSubmittedEvent creates a new ReviewSubmittedEvent
func NewReviewSubmittedEvent(r *Review) *ReviewSubmittedEvent {
	return &ReviewSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewSubmitted, AggregateTypeReview, r.ID),
		ReviewID:        r.ID,
		OrderID:         r.OrderID,
		RestaurantID:    r.RestaurantID,
		UserID:          r.UserID,
		Rating:          r.Rating,
	}
}
