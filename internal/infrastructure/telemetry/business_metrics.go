package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics constructor gets a nil meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BusinessMetrics tracks marketplace activity: orders, status changes and reviews.
type BusinessMetrics struct {
	logger *zap.Logger

	ordersPlaced  *Counter
	orderAmount   *Histogram
	orderItems    *Counter
	statusChanges *Counter
	reviewsTotal  *Counter
	reviewRatings *Histogram
}

// NewBusinessMetrics creates the business instruments on meter.
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{logger: logger}
	var err error
	if bm.ordersPlaced, err = NewCounter(meter, "foodhub_orders_placed_total", "Total number of orders placed", "{order}"); err != nil {
		return nil, err
	}
	if bm.orderItems, err = NewCounter(meter, "foodhub_order_items_total", "Total quantity of items ordered", "{item}"); err != nil {
		return nil, err
	}
	if bm.orderAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "foodhub_order_amount",
		Description: "Order totals",
		Unit:        "{currency}",
		Boundaries:  OrderAmountBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.statusChanges, err = NewCounter(meter, "foodhub_order_status_changes_total", "Order status transitions", "{transition}"); err != nil {
		return nil, err
	}
	if bm.reviewsTotal, err = NewCounter(meter, "foodhub_reviews_total", "Total number of reviews submitted", "{review}"); err != nil {
		return nil, err
	}
	if bm.reviewRatings, err = NewHistogram(meter, HistogramOpts{
		Name:        "foodhub_review_rating",
		Description: "Distribution of review ratings",
		Unit:        "{star}",
		Boundaries:  []float64{1, 2, 3, 4, 5},
	}); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordOrderPlaced records a new order, its total and item quantity.
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, restaurantID string, total decimal.Decimal, quantity int) {
	attr := AttrRestaurantID.String(restaurantID)
	bm.ordersPlaced.Inc(ctx, attr)
	bm.orderItems.Add(ctx, int64(quantity), attr)
	bm.orderAmount.Record(ctx, total.InexactFloat64(), attr)
}

// RecordStatusChange records an order moving from one status to another.
func (bm *BusinessMetrics) RecordStatusChange(ctx context.Context, restaurantID, from, to string) {
	bm.statusChanges.Inc(ctx,
		AttrRestaurantID.String(restaurantID),
		AttrFromStatus.String(from),
		AttrOrderStatus.String(to),
	)
}

// RecordReview records a submitted review and its rating.
func (bm *BusinessMetrics) RecordReview(ctx context.Context, restaurantID string, rating int) {
	attr := AttrRestaurantID.String(restaurantID)
	bm.reviewsTotal.Inc(ctx, attr, AttrRating.Int(rating))
	bm.reviewRatings.Record(ctx, float64(rating), attr)
}
