// Package review attaches customer reviews to orders.
package review

import (
	"context"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReviewService records reviews and flags the reviewed orders
type ReviewService struct {
	reviewRepo     review.ReviewRepository
	orderRepo      ordering.OrderRepository
	restaurantRepo catalog.RestaurantRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.ReviewRepository,
	orderRepo ordering.OrderRepository,
	restaurantRepo catalog.RestaurantRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the publisher for review events
func (s *ReviewService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SubmitReview stores a review and then marks its order reviewed. The two
// writes are separate: when the flag update fails the stored review stays,
// the caller gets the persistence error and the reconcile job sets the flag
// later. Reviewing an order twice is allowed.
func (s *ReviewService) SubmitReview(ctx context.Context, author review.Author, req SubmitReviewRequest) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "submit",
		telemetry.SpanAttrOrderID, req.OrderID,
		telemetry.SpanAttrRating, req.Rating,
	)
	defer span.End()

	r, err := review.NewReview(author, req.OrderID, req.RestaurantID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, r.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != author.ID {
		return nil, shared.NewAuthorizationError("You can only review your own orders")
	}
	if order.RestaurantID != r.RestaurantID {
		return nil, shared.NewValidationError("Restaurant does not match order")
	}

	if err := s.reviewRepo.Create(ctx, r); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.orderRepo.MarkReviewed(ctx, order.ID); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Failed to flag order as reviewed",
			zap.String("order_id", order.ID),
			zap.String("review_id", r.ID),
			zap.Error(err),
		)
		s.publishEvents(ctx, r)
		if _, ok := shared.AsDomainError(err); ok {
			return nil, err
		}
		return nil, shared.NewPersistenceError("mark order reviewed", err)
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", r.ID),
		zap.String("order_id", r.OrderID),
		zap.Int("rating", r.Rating),
	)

	s.publishEvents(ctx, r)

	response := ToReviewResponse(r)
	return &response, nil
}

// ListMerchantReviews lists the reviews of the caller's restaurant, newest first
func (s *ReviewService) ListMerchantReviews(ctx context.Context, merchantID string) ([]ReviewResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

func (s *ReviewService) publishEvents(ctx context.Context, r *review.Review) {
	defer r.ClearDomainEvents()
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, r.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish review events", zap.String("review_id", r.ID), zap.Error(err))
	}
}
