package catalog

import (
	"strings"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Restaurant is a merchant-owned storefront
type Restaurant struct {
	shared.BaseAggregateRoot
	OwnerID      string
	Name         string
	Description  string
	CuisineType  string
	Image        string
	CoverImage   string
	Address      string
	Phone        string
	Hours        string
	DeliveryTime string
	MinOrder     decimal.Decimal
	// Rating and ReviewCount are the stored headline figures, used when no
	// reviews have been collected yet
	Rating      decimal.Decimal
	ReviewCount int
	IsActive    bool
}

// RestaurantProfile holds the merchant-editable fields. Nil fields are left unchanged.
type RestaurantProfile struct {
	Name         *string
	Description  *string
	CuisineType  *string
	Image        *string
	CoverImage   *string
	Address      *string
	Phone        *string
	Hours        *string
	DeliveryTime *string
	MinOrder     *decimal.Decimal
	IsActive     *bool
}

// NewRestaurant creates an active restaurant. An empty id gets a generated one.
func NewRestaurant(id, ownerID, name string) (*Restaurant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Restaurant name is required")
	}
	root := shared.NewBaseAggregateRoot()
	if id != "" {
		root.BaseEntity = shared.NewBaseEntityWithID(id)
	}
	return &Restaurant{
		BaseAggregateRoot: root,
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(name),
		MinOrder:          decimal.Zero,
		Rating:            decimal.Zero,
		IsActive:          true,
	}, nil
}

// IsOwnedBy reports whether userID owns the restaurant
func (r *Restaurant) IsOwnedBy(userID string) bool {
	return userID != "" && r.OwnerID == userID
}

// ApplyProfile updates the merchant-editable fields
func (r *Restaurant) ApplyProfile(p RestaurantProfile) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return shared.NewValidationError("Restaurant name is required")
		}
		r.Name = name
	}
	if p.MinOrder != nil {
		if p.MinOrder.IsNegative() {
			return shared.NewValidationError("Minimum order cannot be negative")
		}
		r.MinOrder = *p.MinOrder
	}
	setIfPresent(&r.Description, p.Description)
	setIfPresent(&r.CuisineType, p.CuisineType)
	setIfPresent(&r.Image, p.Image)
	setIfPresent(&r.CoverImage, p.CoverImage)
	setIfPresent(&r.Address, p.Address)
	setIfPresent(&r.Phone, p.Phone)
	setIfPresent(&r.Hours, p.Hours)
	setIfPresent(&r.DeliveryTime, p.DeliveryTime)
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	r.Touch()
	return nil
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
