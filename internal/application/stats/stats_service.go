// Package stats computes the merchant dashboard figures.
package stats

import (
	"context"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CacheNamespace prefixes cached statistics keys
const CacheNamespace = "stats"

// StatisticsResponse is the merchant dashboard summary
type StatisticsResponse struct {
	TotalOrders     int64            `json:"totalOrders"`
	PendingOrders   int64            `json:"pendingOrders"`
	CompletedOrders int64            `json:"completedOrders"`
	TotalRevenue    float64          `json:"totalRevenue"`
	MenuItems       int64            `json:"menuItems"`
	OrdersByStatus  map[string]int64 `json:"ordersByStatus"`
	AverageRating   float64          `json:"averageRating"`
	ReviewCount     int64            `json:"reviewCount"`
}

// StatsService aggregates orders, menu and reviews of a restaurant
type StatsService struct {
	restaurantRepo catalog.RestaurantRepository
	menuRepo       catalog.MenuItemRepository
	orderRepo      ordering.OrderRepository
	reviewRepo     review.ReviewRepository
	cache          *cache.JSONCache
	logger         *zap.Logger
}

// NewStatsService creates a new StatsService. A nil cache computes the
// figures on every call.
func NewStatsService(
	restaurantRepo catalog.RestaurantRepository,
	menuRepo catalog.MenuItemRepository,
	orderRepo ordering.OrderRepository,
	reviewRepo review.ReviewRepository,
	statsCache *cache.JSONCache,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		orderRepo:      orderRepo,
		reviewRepo:     reviewRepo,
		cache:          statsCache,
		logger:         logger,
	}
}

// GetStatistics returns the figures of the merchant's restaurant
func (s *StatsService) GetStatistics(ctx context.Context, merchantID string) (*StatisticsResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached StatisticsResponse
		hit, err := s.cache.Get(ctx, restaurant.ID, &cached)
		if err != nil {
			s.logger.Warn("Statistics cache read failed", zap.String("restaurant_id", restaurant.ID), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	stats, err := s.compute(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, restaurant.ID, stats); err != nil {
			s.logger.Warn("Statistics cache write failed", zap.String("restaurant_id", restaurant.ID), zap.Error(err))
		}
	}
	return stats, nil
}

// Invalidate drops the cached figures of a restaurant
func (s *StatsService) Invalidate(ctx context.Context, restaurantID string) error {
	if s.cache == nil || restaurantID == "" {
		return nil
	}
	return s.cache.Invalidate(ctx, restaurantID)
}

func (s *StatsService) compute(ctx context.Context, restaurant *catalog.Restaurant) (*StatisticsResponse, error) {
	menuItems, err := s.menuRepo.CountByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.orderRepo.SummarizeByStatus(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	rating, err := s.reviewRepo.Summarize(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	stats := &StatisticsResponse{
		MenuItems:      menuItems,
		OrdersByStatus: make(map[string]int64, len(summaries)),
	}
	revenue := decimal.Zero
	for _, sum := range summaries {
		stats.TotalOrders += sum.Count
		stats.OrdersByStatus[sum.Status.String()] += sum.Count
		revenue = revenue.Add(sum.Revenue)
		if sum.Status == ordering.OrderStatusPending {
			stats.PendingOrders += sum.Count
		}
		if sum.Status.IsFulfilled() {
			stats.CompletedOrders += sum.Count
		}
	}
	stats.TotalRevenue = revenue.Round(2).InexactFloat64()

	if rating.Count > 0 {
		stats.AverageRating = decimal.NewFromFloat(rating.Average).Round(1).InexactFloat64()
		stats.ReviewCount = rating.Count
	} else {
		stats.AverageRating = restaurant.Rating.Round(1).InexactFloat64()
		stats.ReviewCount = int64(restaurant.ReviewCount)
	}
	return stats, nil
}
