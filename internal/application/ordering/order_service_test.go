package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/identity"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID string) ([]ordering.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByRestaurant(ctx context.Context, filter ordering.OrderFilter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *ordering.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) MarkReviewed(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockOrderRepository) SummarizeByStatus(ctx context.Context, restaurantID string) ([]ordering.StatusSummary, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]ordering.StatusSummary), args.Error(1)
}

// MockRestaurantRepository is a mock implementation of catalog.RestaurantRepository
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) FindByID(ctx context.Context, id string) (*catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) FindByOwner(ctx context.Context, ownerID string) (*catalog.Restaurant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) FindActive(ctx context.Context) ([]catalog.Restaurant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) Save(ctx context.Context, r *catalog.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type fixture struct {
	svc         *OrderService
	orders      *MockOrderRepository
	restaurants *MockRestaurantRepository
	users       *MockUserRepository
	published   *capturingPublisher
}

func newFixture(cfg config.OrderingConfig) *fixture {
	f := &fixture{
		orders:      new(MockOrderRepository),
		restaurants: new(MockRestaurantRepository),
		users:       new(MockUserRepository),
		published:   &capturingPublisher{},
	}
	f.svc = NewOrderService(f.orders, f.restaurants, f.users, cfg, zap.NewNop())
	f.svc.SetEventPublisher(f.published)
	return f
}

func strictConfig() config.OrderingConfig {
	return config.OrderingConfig{StrictTransitions: true}
}

func customer() ordering.Customer {
	return ordering.Customer{ID: "user-1", DisplayName: "Jane Doe", Email: "jane@example.com", Phone: "+1 555-0101"}
}

func freshFusionCart() CreateOrderRequest {
	return CreateOrderRequest{
		Items: []OrderItemRequest{
			{ID: "a1", Name: "Salmon Nigiri", Price: decimal.RequireFromString("8.99"), Quantity: 1, RestaurantID: "fresh-fusion", RestaurantName: "Fresh Fusion"},
			{ID: "a2", Name: "California Roll", Price: decimal.RequireFromString("7.99"), Quantity: 2, RestaurantID: "fresh-fusion", RestaurantName: "Fresh Fusion"},
		},
		Total:        decimal.RequireFromString("24.97"),
		RestaurantID: "fresh-fusion",
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func ownedRestaurant(t *testing.T, owner string) *catalog.Restaurant {
	t.Helper()
	r, err := catalog.NewRestaurant("fresh-fusion", owner, "Fresh Fusion")
	require.NoError(t, err)
	return r
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newFixture(strictConfig())
	ctx := context.Background()
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

	order, err := f.svc.CreateOrder(ctx, customer(), freshFusionCart())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "pending", order.Status)
	assert.False(t, order.IsReviewed)
	assert.Equal(t, 24.97, order.Total)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Fresh Fusion", order.RestaurantName)
	assert.Equal(t, "Jane Doe", order.CustomerName)
	assert.Equal(t, "+1 555-0101", order.CustomerPhone)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)

	require.Len(t, f.published.events, 1)
	assert.Equal(t, ordering.EventTypeOrderPlaced, f.published.events[0].EventType())
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	f := newFixture(strictConfig())
	ctx := context.Background()

	empty := freshFusionCart()
	empty.Items = nil
	_, err := f.svc.CreateOrder(ctx, customer(), empty)
	assertCode(t, err, shared.CodeValidation)
	assert.Equal(t, "No items in order", err.Error())

	noRestaurant := freshFusionCart()
	noRestaurant.RestaurantID = ""
	_, err = f.svc.CreateOrder(ctx, customer(), noRestaurant)
	assertCode(t, err, shared.CodeValidation)
	assert.Equal(t, "Restaurant ID is required", err.Error())

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.published.events)
}

func TestOrderService_CreateOrder_TotalNotRevalidatedByDefault(t *testing.T) {
	f := newFixture(strictConfig())
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := freshFusionCart()
	req.Total = decimal.RequireFromString("1.00")
	order, err := f.svc.CreateOrder(context.Background(), customer(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.0, order.Total)
}

func TestOrderService_CreateOrder_Enforcement(t *testing.T) {
	f := newFixture(config.OrderingConfig{EnforceCartTotal: true, EnforceSingleRestaurant: true})

	wrongTotal := freshFusionCart()
	wrongTotal.Total = decimal.RequireFromString("20.00")
	_, err := f.svc.CreateOrder(context.Background(), customer(), wrongTotal)
	assertCode(t, err, shared.CodeValidation)

	mixed := freshFusionCart()
	mixed.Items[1].RestaurantID = "noodle-bar"
	_, err = f.svc.CreateOrder(context.Background(), customer(), mixed)
	assertCode(t, err, shared.CodeValidation)
}

func TestOrderService_CreateOrder_PersistenceError(t *testing.T) {
	f := newFixture(strictConfig())
	f.orders.On("Create", mock.Anything, mock.Anything).
		Return(shared.NewPersistenceError("create order", errors.New("connection refused")))

	_, err := f.svc.CreateOrder(context.Background(), customer(), freshFusionCart())
	assertCode(t, err, shared.CodePersistence)
	assert.Empty(t, f.published.events)
}

func pendingOrder(t *testing.T) *ordering.Order {
	t.Helper()
	req := freshFusionCart()
	o, err := ordering.NewOrder(customer(), req.RestaurantID, ToOrderItems(req.Items), req.Total)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderService_UpdateOrderStatus_NonOwner(t *testing.T) {
	f := newFixture(strictConfig())
	order := pendingOrder(t)
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.restaurants.On("FindByID", mock.Anything, "fresh-fusion").Return(ownedRestaurant(t, "merchant-1"), nil)

	for _, status := range []string{"confirmed", "", "bogus", "delivered"} {
		t.Run("status="+status, func(t *testing.T) {
			_, err := f.svc.UpdateOrderStatus(context.Background(), "merchant-2", order.ID, status)
			assertCode(t, err, shared.CodeAuthorization)
		})
	}
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_NotFound(t *testing.T) {
	f := newFixture(strictConfig())
	f.orders.On("FindByID", mock.Anything, "missing").Return(nil, shared.NewNotFoundError("Order not found"))

	_, err := f.svc.UpdateOrderStatus(context.Background(), "merchant-1", "missing", "confirmed")
	assertCode(t, err, shared.CodeNotFound)
}

func TestOrderService_UpdateOrderStatus_Sequence(t *testing.T) {
	f := newFixture(strictConfig())
	order := pendingOrder(t)
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("UpdateStatus", mock.Anything, order).Return(nil)
	f.restaurants.On("FindByID", mock.Anything, "fresh-fusion").Return(ownedRestaurant(t, "merchant-1"), nil)
	ctx := context.Background()

	res, err := f.svc.UpdateOrderStatus(ctx, "merchant-1", order.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusUpdateResponse{ID: order.ID, Status: "confirmed"}, *res)

	res, err = f.svc.UpdateOrderStatus(ctx, "merchant-1", order.ID, "preparing")
	require.NoError(t, err)
	assert.Equal(t, "preparing", res.Status)
	assert.Equal(t, ordering.OrderStatusPreparing, order.Status)

	require.Len(t, f.published.events, 2)
	changed := f.published.events[1].(*ordering.OrderStatusChangedEvent)
	assert.Equal(t, ordering.OrderStatusConfirmed, changed.FromStatus)
	assert.Equal(t, ordering.OrderStatusPreparing, changed.ToStatus)
}

func TestOrderService_UpdateOrderStatus_Rejections(t *testing.T) {
	f := newFixture(strictConfig())
	order := pendingOrder(t)
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.restaurants.On("FindByID", mock.Anything, "fresh-fusion").Return(ownedRestaurant(t, "merchant-1"), nil)
	ctx := context.Background()

	_, err := f.svc.UpdateOrderStatus(ctx, "merchant-1", order.ID, "")
	assertCode(t, err, shared.CodeValidation)
	assert.Equal(t, "Status is required", err.Error())

	_, err = f.svc.UpdateOrderStatus(ctx, "merchant-1", order.ID, "shipped")
	assertCode(t, err, shared.CodeValidation)
	assert.Equal(t, "Invalid status", err.Error())

	_, err = f.svc.UpdateOrderStatus(ctx, "merchant-1", order.ID, "delivered")
	assertCode(t, err, shared.CodeInvalidState)

	_, err = f.svc.UpdateOrderStatus(ctx, "merchant-1", order.ID, "completed")
	assertCode(t, err, shared.CodeInvalidState)

	assert.Equal(t, ordering.OrderStatusPending, order.Status)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_Permissive(t *testing.T) {
	f := newFixture(config.OrderingConfig{StrictTransitions: false})
	order := pendingOrder(t)
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("UpdateStatus", mock.Anything, order).Return(nil)
	f.restaurants.On("FindByID", mock.Anything, "fresh-fusion").Return(ownedRestaurant(t, "merchant-1"), nil)

	res, err := f.svc.UpdateOrderStatus(context.Background(), "merchant-1", order.ID, "delivering")
	require.NoError(t, err)
	assert.Equal(t, "delivering", res.Status)
}

func TestOrderService_UpdateOrderStatus_OrphanRestaurant(t *testing.T) {
	f := newFixture(strictConfig())
	order := pendingOrder(t)
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.restaurants.On("FindByID", mock.Anything, "fresh-fusion").Return(nil, shared.NewNotFoundError("Restaurant not found"))

	_, err := f.svc.UpdateOrderStatus(context.Background(), "merchant-1", order.ID, "confirmed")
	assertCode(t, err, shared.CodeAuthorization)
}

func TestOrderService_ListMyOrders(t *testing.T) {
	f := newFixture(strictConfig())
	first := pendingOrder(t)
	second := pendingOrder(t)
	f.orders.On("FindByUser", mock.Anything, "user-1").Return([]ordering.Order{*second, *first}, nil)

	orders, err := f.svc.ListMyOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
}

func TestOrderService_ListMerchantOrders(t *testing.T) {
	f := newFixture(strictConfig())
	ctx := context.Background()

	anonymous := pendingOrder(t)
	anonymous.UserID = "user-2"
	anonymous.CustomerName = ordering.DefaultCustomerName
	anonymous.CustomerPhone = ordering.DefaultCustomerPhone
	known := pendingOrder(t)

	user, err := identity.NewUser("sam@example.com", "password123", "Sam", "Lee", identity.RoleCustomer)
	require.NoError(t, err)
	user.ID = "user-2"
	user.Phone = "+1 555-0102"

	f.restaurants.On("FindByOwner", mock.Anything, "merchant-1").Return(ownedRestaurant(t, "merchant-1"), nil)
	f.orders.On("FindByRestaurant", mock.Anything, ordering.OrderFilter{RestaurantID: "fresh-fusion"}).
		Return([]ordering.Order{*anonymous, *known}, nil)
	f.users.On("FindByIDs", mock.Anything, []string{"user-2"}).Return(map[string]*identity.User{"user-2": user}, nil)

	orders, err := f.svc.ListMerchantOrders(ctx, "merchant-1", "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Sam Lee", orders[0].CustomerName)
	assert.Equal(t, "+1 555-0102", orders[0].CustomerPhone)
	assert.Equal(t, "Jane Doe", orders[1].CustomerName)

	_, err = f.svc.ListMerchantOrders(ctx, "merchant-1", "bogus")
	assertCode(t, err, shared.CodeValidation)
}

func TestOrderService_ListMerchantOrders_StatusFilter(t *testing.T) {
	f := newFixture(strictConfig())
	f.restaurants.On("FindByOwner", mock.Anything, "merchant-1").Return(ownedRestaurant(t, "merchant-1"), nil)
	f.orders.On("FindByRestaurant", mock.Anything, ordering.OrderFilter{RestaurantID: "fresh-fusion", Status: ordering.OrderStatusReady}).
		Return([]ordering.Order{}, nil)

	orders, err := f.svc.ListMerchantOrders(context.Background(), "merchant-1", "ready")
	require.NoError(t, err)
	assert.Empty(t, orders)
	f.orders.AssertExpectations(t)
}

func TestUpdateStatusRequest_StatusToken(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"status":"confirmed"}`, "confirmed"},
		{`{"status":123}`, "123"},
		{`{"status":null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req UpdateStatusRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.StatusToken())
		})
	}
}
