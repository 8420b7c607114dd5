package models

import (
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	BaseModel
	UserID         string           `gorm:"type:varchar(64);not null;index"`
	CustomerName   string           `gorm:"type:varchar(200);not null"`
	CustomerPhone  string           `gorm:"type:varchar(50);not null"`
	RestaurantID   string           `gorm:"type:varchar(64);not null;index"`
	RestaurantName string           `gorm:"type:varchar(200)"`
	Total          decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Status         string           `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsReviewed     bool             `gorm:"not null;default:false"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order. Items keep the
// position they had at checkout.
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		UserID:            m.UserID,
		CustomerName:      m.CustomerName,
		CustomerPhone:     m.CustomerPhone,
		RestaurantID:      m.RestaurantID,
		RestaurantName:    m.RestaurantName,
		Total:             m.Total,
		Status:            ordering.OrderStatus(m.Status),
		IsReviewed:        m.IsReviewed,
		Items:             make([]ordering.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		order.Items[i] = m.Items[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.CustomerName = o.CustomerName
	m.CustomerPhone = o.CustomerPhone
	m.RestaurantID = o.RestaurantID
	m.RestaurantName = o.RestaurantName
	m.Total = o.Total
	m.Status = o.Status.String()
	m.IsReviewed = o.IsReviewed
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			OrderID:        o.ID,
			Position:       i,
			MenuItemID:     item.MenuItemID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			Image:          item.Image,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is one line of an order's item snapshot
type OrderItemModel struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"`
	OrderID        string          `gorm:"type:varchar(64);not null;index"`
	Position       int             `gorm:"not null"`
	MenuItemID     string          `gorm:"type:varchar(64);not null"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity       int             `gorm:"not null"`
	RestaurantID   string          `gorm:"type:varchar(64)"`
	RestaurantName string          `gorm:"type:varchar(200)"`
	Image          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() ordering.OrderItem {
	return ordering.OrderItem{
		MenuItemID:     m.MenuItemID,
		Name:           m.Name,
		Price:          m.Price,
		Quantity:       m.Quantity,
		RestaurantID:   m.RestaurantID,
		RestaurantName: m.RestaurantName,
		Image:          m.Image,
	}
}
