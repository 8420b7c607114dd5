package catalog

import "context"

// RestaurantRepository defines the interface for restaurant persistence
type RestaurantRepository interface {
	// FindByID returns shared.ErrNotFound when the restaurant does not exist
	FindByID(ctx context.Context, id string) (*Restaurant, error)

	// FindByOwner returns the restaurant managed by a merchant
	FindByOwner(ctx context.Context, ownerID string) (*Restaurant, error)

	// FindActive lists active restaurants ordered by name
	FindActive(ctx context.Context) ([]Restaurant, error)

	// Save creates or updates a restaurant
	Save(ctx context.Context, restaurant *Restaurant) error
}

// MenuItemRepository defines the interface for menu persistence
type MenuItemRepository interface {
	FindByID(ctx context.Context, id string) (*MenuItem, error)

	// FindByRestaurant lists a menu ordered by category then name
	FindByRestaurant(ctx context.Context, restaurantID string, availableOnly bool) ([]MenuItem, error)

	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id string) error
	CountByRestaurant(ctx context.Context, restaurantID string) (int64, error)
}
