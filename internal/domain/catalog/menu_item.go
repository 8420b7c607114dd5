package catalog

import (
	"strings"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish offered by a restaurant
type MenuItem struct {
	shared.BaseEntity
	RestaurantID string
	Name         string
	Category     string
	Description  string
	Price        decimal.Decimal
	Image        string
	Available    bool
}

// MenuItemChanges holds the editable fields of a menu item. Nil fields are left unchanged.
type MenuItemChanges struct {
	Name        *string
	Category    *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Available   *bool
}

// NewMenuItem creates an available menu item
func NewMenuItem(restaurantID, name string, price decimal.Decimal) (*MenuItem, error) {
	if restaurantID == "" {
		return nil, shared.NewValidationError("Restaurant ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Menu item name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}
	return &MenuItem{
		BaseEntity:   shared.NewBaseEntity(),
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(name),
		Price:        price,
		Available:    true,
	}, nil
}

// BelongsTo reports whether the item is on restaurantID's menu
func (m *MenuItem) BelongsTo(restaurantID string) bool {
	return m.RestaurantID == restaurantID
}

// Apply updates the editable fields
func (m *MenuItem) Apply(c MenuItemChanges) error {
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return shared.NewValidationError("Menu item name is required")
		}
		m.Name = name
	}
	if c.Price != nil {
		if c.Price.IsNegative() {
			return shared.NewValidationError("Price cannot be negative")
		}
		m.Price = *c.Price
	}
	setIfPresent(&m.Category, c.Category)
	setIfPresent(&m.Description, c.Description)
	setIfPresent(&m.Image, c.Image)
	if c.Available != nil {
		m.Available = *c.Available
	}
	m.Touch()
	return nil
}
