package catalog

import (
	"context"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MenuService lets a merchant edit the menu of their restaurant
type MenuService struct {
	restaurantRepo catalog.RestaurantRepository
	menuRepo       catalog.MenuItemRepository
	logger         *zap.Logger
}

// NewMenuService creates a new MenuService
func NewMenuService(restaurantRepo catalog.RestaurantRepository, menuRepo catalog.MenuItemRepository, logger *zap.Logger) *MenuService {
	return &MenuService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		logger:         logger,
	}
}

// ListMyMenu lists every dish of the merchant's restaurant, available or not
func (s *MenuService) ListMyMenu(ctx context.Context, merchantID string) ([]MenuItemResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	items, err := s.menuRepo.FindByRestaurant(ctx, restaurant.ID, false)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponses(items), nil
}

// CreateMenuItem adds a dish to the merchant's restaurant
func (s *MenuService) CreateMenuItem(ctx context.Context, merchantID string, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	item, err := catalog.NewMenuItem(restaurant.ID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	if err := item.Apply(catalog.MenuItemChanges{
		Category:    &req.Category,
		Description: &req.Description,
		Image:       &req.Image,
		Available:   req.Available,
	}); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Menu item created",
		zap.String("menu_item_id", item.ID),
		zap.String("restaurant_id", restaurant.ID),
	)

	response := ToMenuItemResponse(item)
	return &response, nil
}

// UpdateMenuItem changes a dish of the merchant's restaurant
func (s *MenuService) UpdateMenuItem(ctx context.Context, merchantID, itemID string, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.ownedItem(ctx, merchantID, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.Apply(req.changes()); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToMenuItemResponse(item)
	return &response, nil
}

// DeleteMenuItem removes a dish. Existing orders keep their snapshot.
func (s *MenuService) DeleteMenuItem(ctx context.Context, merchantID, itemID string) error {
	item, err := s.ownedItem(ctx, merchantID, itemID)
	if err != nil {
		return err
	}
	if err := s.menuRepo.Delete(ctx, item.ID); err != nil {
		return err
	}
	s.logger.Info("Menu item deleted",
		zap.String("menu_item_id", item.ID),
		zap.String("restaurant_id", item.RestaurantID),
	)
	return nil
}

func (s *MenuService) ownedItem(ctx context.Context, merchantID, itemID string) (*catalog.MenuItem, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(restaurant.ID) {
		return nil, shared.NewAuthorizationError("You do not manage this menu item")
	}
	return item, nil
}
