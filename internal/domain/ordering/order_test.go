package ordering

import (
	"errors"
	"testing"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testCustomer() Customer {
	return Customer{ID: "user-1", DisplayName: "Jane Doe", Email: "jane@example.com", Phone: "+1 555-0100"}
}

func testItems() []OrderItem {
	return []OrderItem{
		{MenuItemID: "a1", Name: "Salmon Nigiri", Price: decimal.RequireFromString("8.99"), Quantity: 1, RestaurantID: "fresh-fusion", RestaurantName: "Fresh Fusion"},
		{MenuItemID: "a2", Name: "California Roll", Price: decimal.RequireFromString("7.99"), Quantity: 2, RestaurantID: "fresh-fusion", RestaurantName: "Fresh Fusion"},
	}
}

func createTestOrder(t *testing.T) *Order {
	order, err := NewOrder(testCustomer(), "fresh-fusion", testItems(), decimal.RequireFromString("24.97"))
	require.NoError(t, err)
	return order
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, code, de.Code)
}

// ============================================
// OrderStatus Tests
// ============================================

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range AcceptedStatuses() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.Len(t, AcceptedStatuses(), 8)
	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("PENDING").IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From pending
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusPending, false},
		// From confirmed
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, false},
		{OrderStatusConfirmed, OrderStatusReady, false},
		// From preparing
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusDelivered, false},
		// From ready
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusReady, OrderStatusDelivering, false},
		// Terminal
		{OrderStatusDelivered, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		// Reserved tokens have no edges
		{OrderStatusDelivering, OrderStatusDelivered, false},
		{OrderStatusCompleted, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
	assert.Empty(t, OrderStatusDelivered.NextStatuses())
	assert.Equal(t, []OrderStatus{OrderStatusConfirmed, OrderStatusCancelled}, OrderStatusPending.NextStatuses())
}

// ============================================
// NewOrder Tests
// ============================================

func TestNewOrder(t *testing.T) {
	t.Run("creates pending unreviewed order", func(t *testing.T) {
		order := createTestOrder(t)

		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "user-1", order.UserID)
		assert.Equal(t, "Jane Doe", order.CustomerName)
		assert.Equal(t, "+1 555-0100", order.CustomerPhone)
		assert.Equal(t, "fresh-fusion", order.RestaurantID)
		assert.Equal(t, "Fresh Fusion", order.RestaurantName)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.False(t, order.IsReviewed)
		assert.Len(t, order.Items, 2)
		assert.True(t, decimal.RequireFromString("24.97").Equal(order.Total))
		assert.Equal(t, order.CreatedAt, order.UpdatedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("empty items", func(t *testing.T) {
		_, err := NewOrder(testCustomer(), "fresh-fusion", nil, decimal.Zero)
		assertCode(t, err, shared.CodeValidation)
		assert.Contains(t, err.Error(), "No items in order")
	})

	t.Run("missing restaurant", func(t *testing.T) {
		_, err := NewOrder(testCustomer(), "", testItems(), decimal.Zero)
		assertCode(t, err, shared.CodeValidation)
		assert.Contains(t, err.Error(), "Restaurant ID is required")
	})

	t.Run("items checked before restaurant", func(t *testing.T) {
		_, err := NewOrder(testCustomer(), "", []OrderItem{}, decimal.Zero)
		assert.Contains(t, err.Error(), "No items in order")
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := NewOrder(Customer{}, "fresh-fusion", testItems(), decimal.Zero)
		assertCode(t, err, shared.CodeAuthentication)
	})

	t.Run("bad quantity", func(t *testing.T) {
		items := testItems()
		items[1].Quantity = 0
		_, err := NewOrder(testCustomer(), "fresh-fusion", items, decimal.Zero)
		assertCode(t, err, shared.CodeValidation)
	})

	t.Run("negative total", func(t *testing.T) {
		_, err := NewOrder(testCustomer(), "fresh-fusion", testItems(), decimal.NewFromInt(-1))
		assertCode(t, err, shared.CodeValidation)
	})

	t.Run("total is not recomputed", func(t *testing.T) {
		order, err := NewOrder(testCustomer(), "fresh-fusion", testItems(), decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(order.Total))
		assert.Error(t, order.VerifyTotal())
	})
}

func TestNewOrder_CustomerFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		customer  Customer
		wantName  string
		wantPhone string
	}{
		{"display name wins", Customer{ID: "u", DisplayName: "Ann", Email: "a@x.io", Phone: "1"}, "Ann", "1"},
		{"email fallback", Customer{ID: "u", Email: "a@x.io"}, "a@x.io", DefaultCustomerPhone},
		{"anonymous", Customer{ID: "u", DisplayName: "  "}, DefaultCustomerName, DefaultCustomerPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.customer, "r", testItems(), decimal.Zero)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, order.CustomerName)
			assert.Equal(t, tt.wantPhone, order.CustomerPhone)
		})
	}
}

func TestNewOrder_SnapshotIsDeepCopy(t *testing.T) {
	items := testItems()
	order, err := NewOrder(testCustomer(), "fresh-fusion", items, decimal.RequireFromString("24.97"))
	require.NoError(t, err)

	items[0].Price = decimal.NewFromInt(100)
	items[0].Name = "Changed"

	assert.Equal(t, "Salmon Nigiri", order.Items[0].Name)
	assert.True(t, decimal.RequireFromString("8.99").Equal(order.Items[0].Price))
}

func TestOrder_Verify(t *testing.T) {
	order := createTestOrder(t)
	assert.NoError(t, order.VerifyTotal())
	assert.NoError(t, order.VerifySingleRestaurant())

	order.Items[1].RestaurantID = "other"
	assertCode(t, order.VerifySingleRestaurant(), shared.CodeValidation)
}

// ============================================
// ChangeStatus Tests
// ============================================

func TestOrder_ChangeStatus_Strict(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		order := createTestOrder(t)
		order.ClearDomainEvents()

		for _, next := range []OrderStatus{OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered} {
			require.NoError(t, order.ChangeStatus(next, true))
			assert.Equal(t, next, order.Status)
		}
		assert.True(t, order.IsTerminal())
		assert.Len(t, order.GetDomainEvents(), 4)

		evt, ok := order.GetDomainEvents()[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, OrderStatusPending, evt.FromStatus)
		assert.Equal(t, OrderStatusConfirmed, evt.ToStatus)
	})

	t.Run("rejects illegal successor", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.ChangeStatus(OrderStatusReady, true)
		assertCode(t, err, shared.CodeInvalidState)
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("rejects leaving a terminal state", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled, true))
		assertCode(t, order.ChangeStatus(OrderStatusConfirmed, true), shared.CodeInvalidState)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		order := createTestOrder(t)
		assertCode(t, order.ChangeStatus("shipped", true), shared.CodeValidation)
	})
}

func TestOrder_ChangeStatus_Permissive(t *testing.T) {
	order := createTestOrder(t)

	require.NoError(t, order.ChangeStatus(OrderStatusCompleted, false))
	assert.Equal(t, OrderStatusCompleted, order.Status)

	require.NoError(t, order.ChangeStatus(OrderStatusPending, false))
	assert.Equal(t, OrderStatusPending, order.Status)

	assertCode(t, order.ChangeStatus("bogus", false), shared.CodeValidation)
}

func TestOrder_MarkReviewed(t *testing.T) {
	order := createTestOrder(t)
	before := order.UpdatedAt

	order.MarkReviewed()

	assert.True(t, order.IsReviewed)
	assert.False(t, order.UpdatedAt.Before(before))
}
