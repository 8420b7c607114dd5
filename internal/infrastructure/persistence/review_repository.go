package persistence

import (
	"context"
	"database/sql"

	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a review
func (r *GormReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &models.ReviewModel{}
	model.FromDomain(rv)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return notFoundOr(err, "Review", "create review")
	}
	return nil
}

// FindByRestaurant lists a restaurant's reviews, newest first
func (r *GormReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]review.Review, error) {
	return r.find(ctx, "restaurant_id = ?", restaurantID)
}

// FindByOrder lists the reviews attached to an order, newest first
func (r *GormReviewRepository) FindByOrder(ctx context.Context, orderID string) ([]review.Review, error) {
	return r.find(ctx, "order_id = ?", orderID)
}

func (r *GormReviewRepository) find(ctx context.Context, cond string, arg string) ([]review.Review, error) {
	var rows []models.ReviewModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, notFoundOr(err, "Review", "list reviews")
	}
	out := make([]review.Review, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

type ratingRow struct {
	Average sql.NullFloat64
	Count   int64
}

// Summarize returns the average rating and count for a restaurant
func (r *GormReviewRepository) Summarize(ctx context.Context, restaurantID string) (review.RatingSummary, error) {
	var row ratingRow
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Scan(&row).Error; err != nil {
		return review.RatingSummary{}, notFoundOr(err, "Review", "summarize reviews")
	}
	return review.RatingSummary{Average: row.Average.Float64, Count: row.Count}, nil
}

// FindUnflaggedOrderIDs returns orders that have a review but are not yet
// marked reviewed
func (r *GormReviewRepository) FindUnflaggedOrderIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Table("reviews").
		Distinct("reviews.order_id").
		Joins("JOIN orders ON orders.id = reviews.order_id").
		Where("orders.is_reviewed = ?", false).
		Limit(limit).
		Pluck("reviews.order_id", &ids).Error; err != nil {
		return nil, notFoundOr(err, "Review", "find unflagged orders")
	}
	return ids, nil
}

var _ review.ReviewRepository = (*GormReviewRepository)(nil)
