package catalog

import (
	"time"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateRestaurantRequest opens the caller's restaurant
type CreateRestaurantRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description" binding:"max=2000"`
	CuisineType  string           `json:"cuisineType" binding:"max=100"`
	Image        string           `json:"image" binding:"max=500"`
	CoverImage   string           `json:"coverImage" binding:"max=500"`
	Address      string           `json:"address" binding:"max=500"`
	Phone        string           `json:"phone" binding:"max=50"`
	Hours        string           `json:"hours" binding:"max=200"`
	DeliveryTime string           `json:"deliveryTime" binding:"max=50"`
	MinOrder     *decimal.Decimal `json:"minOrder" swaggertype:"number"`
}

// UpdateRestaurantRequest changes the profile. Absent fields stay as they are.
type UpdateRestaurantRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	CuisineType  *string          `json:"cuisineType" binding:"omitempty,max=100"`
	Image        *string          `json:"image" binding:"omitempty,max=500"`
	CoverImage   *string          `json:"coverImage" binding:"omitempty,max=500"`
	Address      *string          `json:"address" binding:"omitempty,max=500"`
	Phone        *string          `json:"phone" binding:"omitempty,max=50"`
	Hours        *string          `json:"hours" binding:"omitempty,max=200"`
	DeliveryTime *string          `json:"deliveryTime" binding:"omitempty,max=50"`
	MinOrder     *decimal.Decimal `json:"minOrder" swaggertype:"number"`
	IsActive     *bool            `json:"isActive"`
}

// RestaurantResponse represents a restaurant in API responses
type RestaurantResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CuisineType  string    `json:"cuisineType"`
	Image        string    `json:"image"`
	CoverImage   string    `json:"coverImage"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Hours        string    `json:"hours"`
	DeliveryTime string    `json:"deliveryTime"`
	MinOrder     float64   `json:"minOrder"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateMenuItemRequest adds a dish to the caller's menu
type CreateMenuItemRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Category    string          `json:"category" binding:"max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Image       string          `json:"image" binding:"max=500"`
	Available   *bool           `json:"available"`
}

// UpdateMenuItemRequest changes a dish. Absent fields stay as they are.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Image       *string          `json:"image" binding:"omitempty,max=500"`
	Available   *bool            `json:"available"`
}

// MenuItemResponse represents a dish in API responses
type MenuItemResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToRestaurantResponse converts a domain restaurant to its response
func ToRestaurantResponse(r *catalog.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Name:         r.Name,
		Description:  r.Description,
		CuisineType:  r.CuisineType,
		Image:        r.Image,
		CoverImage:   r.CoverImage,
		Address:      r.Address,
		Phone:        r.Phone,
		Hours:        r.Hours,
		DeliveryTime: r.DeliveryTime,
		MinOrder:     r.MinOrder.InexactFloat64(),
		Rating:       r.Rating.Round(1).InexactFloat64(),
		ReviewCount:  r.ReviewCount,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToRestaurantResponses converts a list of restaurants
func ToRestaurantResponses(restaurants []catalog.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, len(restaurants))
	for i := range restaurants {
		out[i] = ToRestaurantResponse(&restaurants[i])
	}
	return out
}

// ToMenuItemResponse converts a domain menu item to its response
func ToMenuItemResponse(m *catalog.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Category:     m.Category,
		Description:  m.Description,
		Price:        m.Price.InexactFloat64(),
		Image:        m.Image,
		Available:    m.Available,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToMenuItemResponses converts a menu
func ToMenuItemResponses(items []catalog.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, len(items))
	for i := range items {
		out[i] = ToMenuItemResponse(&items[i])
	}
	return out
}

func (r UpdateRestaurantRequest) profile() catalog.RestaurantProfile {
	return catalog.RestaurantProfile{
		Name:         r.Name,
		Description:  r.Description,
		CuisineType:  r.CuisineType,
		Image:        r.Image,
		CoverImage:   r.CoverImage,
		Address:      r.Address,
		Phone:        r.Phone,
		Hours:        r.Hours,
		DeliveryTime: r.DeliveryTime,
		MinOrder:     r.MinOrder,
		IsActive:     r.IsActive,
	}
}

func (r UpdateMenuItemRequest) changes() catalog.MenuItemChanges {
	return catalog.MenuItemChanges{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Available:   r.Available,
	}
}
