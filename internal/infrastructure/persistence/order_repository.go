package persistence

import (
	"context"

	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds an order with its item snapshot
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.withItems(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "Order", "load order")
	}
	return model.ToDomain(), nil
}

// FindByUser lists a customer's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID string) ([]ordering.Order, error) {
	var rows []models.OrderModel
	if err := r.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, notFoundOr(err, "Order", "list orders")
	}
	return toOrders(rows), nil
}

// FindByRestaurant lists a restaurant's orders, newest first
func (r *GormOrderRepository) FindByRestaurant(ctx context.Context, filter ordering.OrderFilter) ([]ordering.Order, error) {
	query := r.withItems(ctx).Where("restaurant_id = ?", filter.RestaurantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var rows []models.OrderModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, notFoundOr(err, "Order", "list restaurant orders")
	}
	return toOrders(rows), nil
}

// Create inserts the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			return tx.Create(&items).Error
		}
		return nil
	})
	if err != nil {
		return notFoundOr(err, "Order", "create order")
	}
	return nil
}

// UpdateStatus writes the status column and updated_at
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     order.Status.String(),
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return notFoundOr(result.Error, "Order", "update order status")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "Order", "update order status")
	}
	return nil
}

// MarkReviewed sets is_reviewed and leaves updated_at alone, which only
// status changes move. Marking an already reviewed order succeeds.
func (r *GormOrderRepository) MarkReviewed(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		UpdateColumn("is_reviewed", true)
	if result.Error != nil {
		return notFoundOr(result.Error, "Order", "mark order reviewed")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "Order", "mark order reviewed")
	}
	return nil
}

type statusSummaryRow struct {
	Status  string
	Count   int64
	Revenue decimal.NullDecimal
}

// SummarizeByStatus groups a restaurant's orders by status
func (r *GormOrderRepository) SummarizeByStatus(ctx context.Context, restaurantID string) ([]ordering.StatusSummary, error) {
	var rows []statusSummaryRow
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count, SUM(total) AS revenue").
		Where("restaurant_id = ?", restaurantID).
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, notFoundOr(err, "Order", "summarize orders")
	}

	out := make([]ordering.StatusSummary, len(rows))
	for i, row := range rows {
		out[i] = ordering.StatusSummary{
			Status:  ordering.OrderStatus(row.Status),
			Count:   row.Count,
			Revenue: row.Revenue.Decimal,
		}
	}
	return out, nil
}

func toOrders(rows []models.OrderModel) []ordering.Order {
	orders := make([]ordering.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
