package stats

import (
	"context"

	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/event"
	"github.com/foodhub/backend/internal/infrastructure/telemetry"
)

// trackedEvents are the events that change a restaurant's figures
var trackedEvents = []string{
	ordering.EventTypeOrderPlaced,
	ordering.EventTypeOrderStatusChanged,
	review.EventTypeReviewSubmitted,
}

// NewCacheInvalidator returns a handler that drops cached statistics of the
// restaurant an event concerns
func NewCacheInvalidator(svc *StatsService) shared.EventHandler {
	return event.NewHandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
		return svc.Invalidate(ctx, restaurantOf(e))
	}, trackedEvents...)
}

// NewMetricsRecorder returns a handler that feeds business metrics
func NewMetricsRecorder(metrics *telemetry.BusinessMetrics) shared.EventHandler {
	return event.NewHandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
		switch ev := e.(type) {
		case *ordering.OrderPlacedEvent:
			metrics.RecordOrderPlaced(ctx, ev.RestaurantID, ev.Total, ev.ItemCount)
		case *ordering.OrderStatusChangedEvent:
			metrics.RecordStatusChange(ctx, ev.RestaurantID, ev.FromStatus.String(), ev.ToStatus.String())
		case *review.ReviewSubmittedEvent:
			metrics.RecordReview(ctx, ev.RestaurantID, ev.Rating)
		}
		return nil
	}, trackedEvents...)
}

func restaurantOf(e shared.DomainEvent) string {
	switch ev := e.(type) {
	case *ordering.OrderPlacedEvent:
		return ev.RestaurantID
	case *ordering.OrderStatusChangedEvent:
		return ev.RestaurantID
	case *review.ReviewSubmittedEvent:
		return ev.RestaurantID
	}
	return ""
}
