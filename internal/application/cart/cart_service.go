package cart

import (
	"context"

	orderingapp "github.com/foodhub/backend/internal/application/ordering"
	"github.com/foodhub/backend/internal/domain/cart"
	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderCreator places an order from a cart snapshot
type OrderCreator interface {
	CreateOrder(ctx context.Context, customer ordering.Customer, req orderingapp.CreateOrderRequest) (*orderingapp.OrderResponse, error)
}

// CartService manages session carts and checks them out
type CartService struct {
	store          *SessionStore
	menuRepo       catalog.MenuItemRepository
	restaurantRepo catalog.RestaurantRepository
	orders         OrderCreator
	logger         *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	store *SessionStore,
	menuRepo catalog.MenuItemRepository,
	restaurantRepo catalog.RestaurantRepository,
	orders OrderCreator,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		store:          store,
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		orders:         orders,
		logger:         logger,
	}
}

// View returns the cart of a session
func (s *CartService) View(sessionID string) CartResponse {
	var res CartResponse
	_ = s.store.With(sessionID, func(c *cart.Cart) error {
		res = ToCartResponse(c)
		return nil
	})
	return res
}

// AddItem adds one unit of an available menu item to the cart. Price, name
// and restaurant are taken from the catalog, not from the caller.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, shared.NewValidationError("Menu item is not available")
	}
	restaurant, err := s.restaurantRepo.FindByID(ctx, item.RestaurantID)
	if err != nil {
		return nil, err
	}

	return s.mutate(sessionID, func(c *cart.Cart) {
		c.AddItem(cart.Item{
			ID:             item.ID,
			Name:           item.Name,
			Price:          item.Price,
			RestaurantID:   restaurant.ID,
			RestaurantName: restaurant.Name,
			Image:          item.Image,
		})
	}), nil
}

// UpdateQuantity sets the quantity of a cart line
func (s *CartService) UpdateQuantity(sessionID, itemID string, quantity int) *CartResponse {
	return s.mutate(sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(itemID, quantity)
	})
}

// RemoveItem deletes a cart line
func (s *CartService) RemoveItem(sessionID, itemID string) *CartResponse {
	return s.mutate(sessionID, func(c *cart.Cart) {
		c.RemoveItem(itemID)
	})
}

// Clear empties the cart
func (s *CartService) Clear(sessionID string) *CartResponse {
	return s.mutate(sessionID, func(c *cart.Cart) {
		c.Clear()
	})
}

// Checkout places an order for the cart contents against the restaurant of
// the first item, then clears the cart. A failed checkout leaves the cart
// untouched.
func (s *CartService) Checkout(ctx context.Context, sessionID string, customer ordering.Customer) (*orderingapp.OrderResponse, error) {
	var order *orderingapp.OrderResponse
	err := s.store.With(sessionID, func(c *cart.Cart) error {
		if c.IsEmpty() {
			return shared.NewValidationError("No items in order")
		}
		if c.SpansRestaurants() {
			s.logger.Warn("Checking out a cart spanning several restaurants",
				zap.String("session_id", sessionID),
				zap.String("restaurant_id", c.RestaurantID()),
			)
		}

		var err error
		order, err = s.orders.CreateOrder(ctx, customer, toCreateOrderRequest(c))
		if err != nil {
			return err
		}
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Discard drops the cart of a session
func (s *CartService) Discard(sessionID string) {
	s.store.Discard(sessionID)
}

func (s *CartService) mutate(sessionID string, fn func(c *cart.Cart)) *CartResponse {
	var res CartResponse
	_ = s.store.With(sessionID, func(c *cart.Cart) error {
		fn(c)
		res = ToCartResponse(c)
		return nil
	})
	return &res
}

func toCreateOrderRequest(c *cart.Cart) orderingapp.CreateOrderRequest {
	items := c.Items()
	lines := make([]orderingapp.OrderItemRequest, len(items))
	for i, item := range items {
		lines[i] = orderingapp.OrderItemRequest{
			ID:             item.ID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			Image:          item.Image,
		}
	}
	return orderingapp.CreateOrderRequest{
		Items:        lines,
		Total:        c.Total(),
		RestaurantID: c.RestaurantID(),
	}
}
