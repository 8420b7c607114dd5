package review

import (
	"time"

	"github.com/foodhub/backend/internal/domain/review"
)

// SubmitReviewRequest is the review payload. Presence of the required fields
// is checked by the service so the error message stays stable.
type SubmitReviewRequest struct {
	OrderID      string `json:"orderId" binding:"max=64"`
	RestaurantID string `json:"restaurantId" binding:"max=64"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment" binding:"max=2000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"orderId"`
	RestaurantID string    `json:"restaurantId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Reply        *string   `json:"reply"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToReviewResponse converts a domain review to its response
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		RestaurantID: r.RestaurantID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		Reply:        r.Reply,
		CreatedAt:    r.CreatedAt,
	}
}

// ToReviewResponses converts a list of reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out
}
