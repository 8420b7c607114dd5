package ordering

import (
	"fmt"
	"strings"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCustomerName is used when the customer has neither a display name nor an email
	DefaultCustomerName = "Anonymous"
	// DefaultCustomerPhone is used when the customer has no phone on file
	DefaultCustomerPhone = "N/A"
)

// OrderItem is a snapshot of a cart line taken at checkout. Later menu changes
// never alter it.
type OrderItem struct {
	MenuItemID     string
	Name           string
	Price          decimal.Decimal
	Quantity       int
	RestaurantID   string
	RestaurantName string
	Image          string
}

// Amount returns price * quantity
func (i OrderItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Customer is the identity placing an order
type Customer struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string
}

// Name returns the display name, falling back to email and then Anonymous
func (c Customer) Name() string {
	if name := strings.TrimSpace(c.DisplayName); name != "" {
		return name
	}
	if c.Email != "" {
		return c.Email
	}
	return DefaultCustomerName
}

// PhoneOrDefault returns the phone number or N/A
func (c Customer) PhoneOrDefault() string {
	if c.Phone != "" {
		return c.Phone
	}
	return DefaultCustomerPhone
}

// Order is the aggregate root for a placed order
type Order struct {
	shared.BaseAggregateRoot
	UserID         string
	CustomerName   string
	CustomerPhone  string
	RestaurantID   string
	RestaurantName string
	Items          []OrderItem
	Total          decimal.Decimal
	Status         OrderStatus
	IsReviewed     bool
}

// NewOrder creates a pending order from a cart snapshot. The items are deep
// copied and the caller supplied total is stored as is.
func NewOrder(customer Customer, restaurantID string, items []OrderItem, total decimal.Decimal) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewValidationError("No items in order")
	}
	if strings.TrimSpace(restaurantID) == "" {
		return nil, shared.NewValidationError("Restaurant ID is required")
	}
	if customer.ID == "" {
		return nil, shared.NewAuthenticationError("Customer identity is required")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("Total cannot be negative")
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, shared.NewValidationError(fmt.Sprintf("Item %d quantity must be at least 1", i+1))
		}
		if item.Price.IsNegative() {
			return nil, shared.NewValidationError(fmt.Sprintf("Item %d price cannot be negative", i+1))
		}
	}

	snapshot := make([]OrderItem, len(items))
	copy(snapshot, items)

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            customer.ID,
		CustomerName:      customer.Name(),
		CustomerPhone:     customer.PhoneOrDefault(),
		RestaurantID:      restaurantID,
		RestaurantName:    snapshot[0].RestaurantName,
		Items:             snapshot,
		Total:             total,
		Status:            OrderStatusPending,
		IsReviewed:        false,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// ItemsTotal returns the sum of price * quantity over the snapshot
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// VerifyTotal checks the stored total against the item snapshot
func (o *Order) VerifyTotal() error {
	if !o.ItemsTotal().Round(2).Equal(o.Total.Round(2)) {
		return shared.NewValidationError(fmt.Sprintf("Order total %s does not match items total %s",
			o.Total.StringFixed(2), o.ItemsTotal().StringFixed(2)))
	}
	return nil
}

// VerifySingleRestaurant checks that every item belongs to the order's restaurant
func (o *Order) VerifySingleRestaurant() error {
	for _, item := range o.Items {
		if item.RestaurantID != "" && item.RestaurantID != o.RestaurantID {
			return shared.NewValidationError("All items must come from the same restaurant")
		}
	}
	return nil
}

// ChangeStatus moves the order to target. With strict set, target must be a
// legal successor of the current status; otherwise any accepted token
// overwrites the current one.
func (o *Order) ChangeStatus(target OrderStatus, strict bool) error {
	if !target.IsValid() {
		return shared.NewValidationError("Invalid status")
	}
	if strict && !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.Touch()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// MarkReviewed sets the review back-reference flag
func (o *Order) MarkReviewed() {
	o.IsReviewed = true
	o.Touch()
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// IsTerminal reports whether the order reached a terminal status
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}
