package review

import (
	"strings"

	"github.com/foodhub/backend/internal/domain/shared"
)

const (
	MinRating = 1
	MaxRating = 5

	// DefaultUserName is used when the reviewer has no display name
	DefaultUserName = "Anonymous"
)

// Author is the identity submitting a review
type Author struct {
	ID          string
	DisplayName string
}

// Review is a customer's rating of an order
type Review struct {
	shared.BaseAggregateRoot
	OrderID      string
	RestaurantID string
	UserID       string
	UserName     string
	Rating       int
	Comment      string
	// Reply is the merchant answer; nil until one is written
	Reply *string
}

// NewReview creates a review for an order. A zero rating counts as missing.
func NewReview(author Author, orderID, restaurantID string, rating int, comment string) (*Review, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(restaurantID) == "" || rating == 0 {
		return nil, shared.NewValidationError("Missing required fields")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewValidationError("Rating must be between 1 and 5")
	}
	if author.ID == "" {
		return nil, shared.NewAuthenticationError("Reviewer identity is required")
	}

	userName := strings.TrimSpace(author.DisplayName)
	if userName == "" {
		userName = DefaultUserName
	}

	r := &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		RestaurantID:      restaurantID,
		UserID:            author.ID,
		UserName:          userName,
		Rating:            rating,
		Comment:           strings.TrimSpace(comment),
		Reply:             nil,
	}

	r.AddDomainEvent(NewReviewSubmittedEvent(r))

	return r, nil
}
