// Package cart holds the pre-checkout selection of one shopping session.
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a menu item selected into a cart
type Item struct {
	ID             string
	Name           string
	Price          decimal.Decimal
	Quantity       int
	RestaurantID   string
	RestaurantName string
	Image          string
}

// Subtotal returns price * quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart accumulates items for exactly one owner. A Cart is not safe for
// concurrent use; callers that share one across goroutines must serialize
// access themselves.
type Cart struct {
	ownerID   string
	items     []Item
	createdAt time.Time
	touchedAt time.Time
}

// New creates an empty cart owned by ownerID
func New(ownerID string) *Cart {
	now := time.Now()
	return &Cart{
		ownerID:   ownerID,
		items:     make([]Item, 0),
		createdAt: now,
		touchedAt: now,
	}
}

// OwnerID returns the session that owns the cart
func (c *Cart) OwnerID() string {
	return c.ownerID
}

// AddItem increments the quantity of an item already in the cart, or appends
// it with quantity 1. The quantity carried by item is ignored.
func (c *Cart) AddItem(item Item) {
	defer c.touch()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// RemoveItem deletes the item with the given id. Unknown ids are ignored.
func (c *Cart) RemoveItem(itemID string) {
	defer c.touch()
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an item. A quantity of zero or less
// removes the item.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	defer c.touch()
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = make([]Item, 0)
	c.touch()
}

// Total returns the sum of price * quantity over all items
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemsCount returns the sum of quantities over all items
func (c *Cart) ItemsCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Items returns a copy of the cart contents in insertion order
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// RestaurantID returns the restaurant of the first item, which is the
// restaurant a checkout is placed against. Empty for an empty cart.
func (c *Cart) RestaurantID() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[0].RestaurantID
}

// SpansRestaurants reports whether the cart holds items from more than one
// restaurant
func (c *Cart) SpansRestaurants() bool {
	for _, item := range c.items {
		if item.RestaurantID != c.RestaurantID() {
			return true
		}
	}
	return false
}

// LastTouched returns the time of the last mutation
func (c *Cart) LastTouched() time.Time {
	return c.touchedAt
}

func (c *Cart) touch() {
	c.touchedAt = time.Now()
}
