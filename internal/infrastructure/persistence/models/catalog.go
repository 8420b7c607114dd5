package models

import (
	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// RestaurantModel is the persistence model for the Restaurant aggregate root
type RestaurantModel struct {
	BaseModel
	OwnerID      string          `gorm:"type:varchar(64);index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	CuisineType  string          `gorm:"type:varchar(100)"`
	Image        string          `gorm:"type:varchar(500)"`
	CoverImage   string          `gorm:"type:varchar(500)"`
	Address      string          `gorm:"type:varchar(500)"`
	Phone        string          `gorm:"type:varchar(50)"`
	Hours        string          `gorm:"type:varchar(200)"`
	DeliveryTime string          `gorm:"type:varchar(50)"`
	MinOrder     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Rating       decimal.Decimal `gorm:"type:decimal(3,1);not null;default:0"`
	ReviewCount  int             `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RestaurantModel) TableName() string {
	return "restaurants"
}

// ToDomain converts the persistence model to a domain Restaurant
func (m *RestaurantModel) ToDomain() *catalog.Restaurant {
	return &catalog.Restaurant{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Description:       m.Description,
		CuisineType:       m.CuisineType,
		Image:             m.Image,
		CoverImage:        m.CoverImage,
		Address:           m.Address,
		Phone:             m.Phone,
		Hours:             m.Hours,
		DeliveryTime:      m.DeliveryTime,
		MinOrder:          m.MinOrder,
		Rating:            m.Rating,
		ReviewCount:       m.ReviewCount,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Restaurant
func (m *RestaurantModel) FromDomain(r *catalog.Restaurant) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.OwnerID = r.OwnerID
	m.Name = r.Name
	m.Description = r.Description
	m.CuisineType = r.CuisineType
	m.Image = r.Image
	m.CoverImage = r.CoverImage
	m.Address = r.Address
	m.Phone = r.Phone
	m.Hours = r.Hours
	m.DeliveryTime = r.DeliveryTime
	m.MinOrder = r.MinOrder
	m.Rating = r.Rating
	m.ReviewCount = r.ReviewCount
	m.IsActive = r.IsActive
}

// MenuItemModel is the persistence model for MenuItem
type MenuItemModel struct {
	BaseModel
	RestaurantID string          `gorm:"type:varchar(64);not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Category     string          `gorm:"type:varchar(100)"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Image        string          `gorm:"type:varchar(500)"`
	Available    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the persistence model to a domain MenuItem
func (m *MenuItemModel) ToDomain() *catalog.MenuItem {
	return &catalog.MenuItem{
		BaseEntity:   m.BaseModel.ToDomain(),
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Category:     m.Category,
		Description:  m.Description,
		Price:        m.Price,
		Image:        m.Image,
		Available:    m.Available,
	}
}

// FromDomain populates the persistence model from a domain MenuItem
func (m *MenuItemModel) FromDomain(i *catalog.MenuItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.RestaurantID = i.RestaurantID
	m.Name = i.Name
	m.Category = i.Category
	m.Description = i.Description
	m.Price = i.Price
	m.Image = i.Image
	m.Available = i.Available
}
