package models

import (
	"github.com/foodhub/backend/internal/domain/review"
)

// ReviewModel is the persistence model for the Review aggregate root
type ReviewModel struct {
	BaseModel
	OrderID      string  `gorm:"type:varchar(64);not null;index"`
	RestaurantID string  `gorm:"type:varchar(64);not null;index"`
	UserID       string  `gorm:"type:varchar(64);not null;index"`
	UserName     string  `gorm:"type:varchar(200);not null"`
	Rating       int     `gorm:"not null"`
	Comment      string  `gorm:"type:text"`
	Reply        *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		OrderID:           m.OrderID,
		RestaurantID:      m.RestaurantID,
		UserID:            m.UserID,
		UserName:          m.UserName,
		Rating:            m.Rating,
		Comment:           m.Comment,
		Reply:             m.Reply,
	}
}

// FromDomain populates the persistence model from a domain Review
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.OrderID = r.OrderID
	m.RestaurantID = r.RestaurantID
	m.UserID = r.UserID
	m.UserName = r.UserName
	m.Rating = r.Rating
	m.Comment = r.Comment
	m.Reply = r.Reply
}
