// Package ordering implements checkout and the merchant side of the order lifecycle.
package ordering

import (
	"context"
	"errors"
	"strings"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/identity"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/foodhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService creates orders and drives their status
type OrderService struct {
	orderRepo      ordering.OrderRepository
	restaurantRepo catalog.RestaurantRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	config         config.OrderingConfig
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	restaurantRepo catalog.RestaurantRepository,
	userRepo identity.UserRepository,
	cfg config.OrderingConfig,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		config:         cfg,
		logger:         logger,
	}
}

// SetEventPublisher sets the publisher for order events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder persists a pending order from a cart snapshot. The total is
// stored as submitted unless total enforcement is configured.
func (s *OrderService) CreateOrder(ctx context.Context, customer ordering.Customer, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.SpanAttrRestaurantID, req.RestaurantID,
		telemetry.SpanAttrItemCount, len(req.Items),
	)
	defer span.End()

	order, err := ordering.NewOrder(customer, req.RestaurantID, ToOrderItems(req.Items), req.Total)
	if err != nil {
		return nil, err
	}
	if s.config.EnforceCartTotal {
		if err := order.VerifyTotal(); err != nil {
			return nil, err
		}
	}
	if s.config.EnforceSingleRestaurant {
		if err := order.VerifySingleRestaurant(); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, order.ID)

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("restaurant_id", order.RestaurantID),
		zap.String("total", order.Total.StringFixed(2)),
	)

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// ListMyOrders lists the caller's orders, newest first
func (s *OrderService) ListMyOrders(ctx context.Context, userID string) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// UpdateOrderStatus moves an order of the caller's restaurant to status.
// Ownership is checked before the status token, so a non-owner always gets
// an authorization error.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, merchantID, orderID, status string) (*StatusUpdateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrOrderStatus, status,
	)
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwner(ctx, merchantID, order.RestaurantID); err != nil {
		return nil, err
	}

	target, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := order.ChangeStatus(target, s.config.StrictTransitions); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status.String()),
		zap.String("merchant_id", merchantID),
	)

	s.publishEvents(ctx, order)

	return &StatusUpdateResponse{ID: order.ID, Status: order.Status.String()}, nil
}

// ListMerchantOrders lists the orders of the caller's restaurant, newest
// first, optionally filtered by status
func (s *OrderService) ListMerchantOrders(ctx context.Context, merchantID, status string) ([]OrderResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	filter := ordering.OrderFilter{RestaurantID: restaurant.ID}
	if strings.TrimSpace(status) != "" {
		if filter.Status, err = parseStatus(status); err != nil {
			return nil, err
		}
	}

	orders, err := s.orderRepo.FindByRestaurant(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.backfillCustomers(ctx, orders)
	return ToOrderResponses(orders), nil
}

func (s *OrderService) authorizeOwner(ctx context.Context, merchantID, restaurantID string) error {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewAuthorizationError("You do not manage this restaurant")
		}
		return err
	}
	if !restaurant.IsOwnedBy(merchantID) {
		return shared.NewAuthorizationError("You do not manage this restaurant")
	}
	return nil
}

// backfillCustomers replaces placeholder customer details with the current
// user record. Failures leave the placeholders in place.
func (s *OrderService) backfillCustomers(ctx context.Context, orders []ordering.Order) {
	var ids []string
	seen := map[string]bool{}
	for _, o := range orders {
		if needsBackfill(o) && !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	if len(ids) == 0 {
		return
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("Failed to backfill customer details", zap.Error(err))
		return
	}
	for i := range orders {
		user, ok := users[orders[i].UserID]
		if !ok {
			continue
		}
		customer := ordering.Customer{ID: user.ID, DisplayName: user.DisplayName, Email: user.Email, Phone: user.Phone}
		if orders[i].CustomerName == ordering.DefaultCustomerName || orders[i].CustomerName == "" {
			orders[i].CustomerName = customer.Name()
		}
		if orders[i].CustomerPhone == ordering.DefaultCustomerPhone || orders[i].CustomerPhone == "" {
			orders[i].CustomerPhone = customer.PhoneOrDefault()
		}
	}
}

func needsBackfill(o ordering.Order) bool {
	return o.CustomerName == "" || o.CustomerName == ordering.DefaultCustomerName ||
		o.CustomerPhone == "" || o.CustomerPhone == ordering.DefaultCustomerPhone
}

func parseStatus(status string) (ordering.OrderStatus, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", shared.NewValidationError("Status is required")
	}
	s := ordering.OrderStatus(status)
	if !s.IsValid() {
		return "", shared.NewValidationError("Invalid status")
	}
	return s, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		order.ClearDomainEvents()
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.String("order_id", order.ID), zap.Error(err))
	}
	order.ClearDomainEvents()
}
