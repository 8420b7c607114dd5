// Package catalog serves restaurants and their menus.
package catalog

import (
	"context"
	"errors"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/identity"
	"github.com/foodhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RestaurantService handles public browsing and the merchant's own restaurant
type RestaurantService struct {
	restaurantRepo catalog.RestaurantRepository
	menuRepo       catalog.MenuItemRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewRestaurantService creates a new RestaurantService
func NewRestaurantService(
	restaurantRepo catalog.RestaurantRepository,
	menuRepo catalog.MenuItemRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// ListRestaurants lists active restaurants ordered by name
func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]RestaurantResponse, error) {
	restaurants, err := s.restaurantRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToRestaurantResponses(restaurants), nil
}

// GetRestaurant returns an active restaurant
func (s *RestaurantService) GetRestaurant(ctx context.Context, id string) (*RestaurantResponse, error) {
	restaurant, err := s.activeRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// GetMenu lists the available dishes of an active restaurant
func (s *RestaurantService) GetMenu(ctx context.Context, restaurantID string) ([]MenuItemResponse, error) {
	if _, err := s.activeRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.menuRepo.FindByRestaurant(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}
	return ToMenuItemResponses(items), nil
}

// GetMyRestaurant returns the restaurant owned by merchantID
func (s *RestaurantService) GetMyRestaurant(ctx context.Context, merchantID string) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// CreateMyRestaurant opens a restaurant for merchantID. A merchant owns at
// most one restaurant.
func (s *RestaurantService) CreateMyRestaurant(ctx context.Context, merchantID string, req CreateRestaurantRequest) (*RestaurantResponse, error) {
	if err := s.ensureNoRestaurant(ctx, merchantID); err != nil {
		return nil, err
	}

	restaurant, err := catalog.NewRestaurant("", merchantID, req.Name)
	if err != nil {
		return nil, err
	}
	profile := catalog.RestaurantProfile{
		Description:  &req.Description,
		CuisineType:  &req.CuisineType,
		Image:        &req.Image,
		CoverImage:   &req.CoverImage,
		Address:      &req.Address,
		Phone:        &req.Phone,
		Hours:        &req.Hours,
		DeliveryTime: &req.DeliveryTime,
		MinOrder:     req.MinOrder,
	}
	if err := restaurant.ApplyProfile(profile); err != nil {
		return nil, err
	}

	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}
	s.logger.Info("Restaurant created",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("owner_id", merchantID),
	)

	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// UpdateMyRestaurant changes the profile of the merchant's restaurant
func (s *RestaurantService) UpdateMyRestaurant(ctx context.Context, merchantID string, req UpdateRestaurantRequest) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if err := restaurant.ApplyProfile(req.profile()); err != nil {
		return nil, err
	}
	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// AssignOwner hands restaurantID to the merchant registered with email
func (s *RestaurantService) AssignOwner(ctx context.Context, restaurantID, email string) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanManageRestaurant() {
		return nil, shared.NewValidationError("User is not a merchant")
	}
	if restaurant.IsOwnedBy(user.ID) {
		response := ToRestaurantResponse(restaurant)
		return &response, nil
	}
	if err := s.ensureNoRestaurant(ctx, user.ID); err != nil {
		return nil, err
	}

	previous := restaurant.OwnerID
	restaurant.OwnerID = user.ID
	restaurant.Touch()
	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}
	s.logger.Info("Restaurant owner assigned",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("owner_id", user.ID),
		zap.String("previous_owner_id", previous),
	)

	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

func (s *RestaurantService) activeRestaurant(ctx context.Context, id string) (*catalog.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, shared.NewNotFoundError("Restaurant not found")
	}
	return restaurant, nil
}

func (s *RestaurantService) ensureNoRestaurant(ctx context.Context, merchantID string) error {
	_, err := s.restaurantRepo.FindByOwner(ctx, merchantID)
	switch {
	case err == nil:
		return shared.NewConflictError("You already manage a restaurant")
	case errors.Is(err, shared.ErrNotFound):
		return nil
	default:
		return err
	}
}
