package persistence

import (
	"context"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements catalog.RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GormRestaurantRepository
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// FindByID finds a restaurant by ID
func (r *GormRestaurantRepository) FindByID(ctx context.Context, id string) (*catalog.Restaurant, error) {
	var model models.RestaurantModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "Restaurant", "load restaurant")
	}
	return model.ToDomain(), nil
}

// FindByOwner finds the restaurant a merchant manages. The oldest one wins
// when a merchant owns several.
func (r *GormRestaurantRepository) FindByOwner(ctx context.Context, ownerID string) (*catalog.Restaurant, error) {
	var model models.RestaurantModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, "Restaurant", "load restaurant")
	}
	return model.ToDomain(), nil
}

// FindActive lists active restaurants ordered by name
func (r *GormRestaurantRepository) FindActive(ctx context.Context) ([]catalog.Restaurant, error) {
	var rows []models.RestaurantModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, notFoundOr(err, "Restaurant", "list restaurants")
	}
	out := make([]catalog.Restaurant, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a restaurant
func (r *GormRestaurantRepository) Save(ctx context.Context, restaurant *catalog.Restaurant) error {
	model := &models.RestaurantModel{}
	model.FromDomain(restaurant)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return notFoundOr(err, "Restaurant", "save restaurant")
	}
	return nil
}

// GormMenuItemRepository implements catalog.MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id string) (*catalog.MenuItem, error) {
	var model models.MenuItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "Menu item", "load menu item")
	}
	return model.ToDomain(), nil
}

// FindByRestaurant lists a restaurant's menu by category then name
func (r *GormMenuItemRepository) FindByRestaurant(ctx context.Context, restaurantID string, availableOnly bool) ([]catalog.MenuItem, error) {
	query := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if availableOnly {
		query = query.Where("available = ?", true)
	}
	var rows []models.MenuItemModel
	if err := query.Order("category ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, notFoundOr(err, "Menu item", "list menu")
	}
	out := make([]catalog.MenuItem, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *catalog.MenuItem) error {
	model := &models.MenuItemModel{}
	model.FromDomain(item)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return notFoundOr(err, "Menu item", "save menu item")
	}
	return nil
}

// Delete removes a menu item. Past orders keep their snapshot.
func (r *GormMenuItemRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItemModel{})
	if result.Error != nil {
		return notFoundOr(result.Error, "Menu item", "delete menu item")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "Menu item", "delete menu item")
	}
	return nil
}

// CountByRestaurant counts every menu item of a restaurant
func (r *GormMenuItemRepository) CountByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MenuItemModel{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error; err != nil {
		return 0, notFoundOr(err, "Menu item", "count menu items")
	}
	return count, nil
}

var (
	_ catalog.RestaurantRepository = (*GormRestaurantRepository)(nil)
	_ catalog.MenuItemRepository   = (*GormMenuItemRepository)(nil)
)
