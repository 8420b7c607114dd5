package review

import (
	"context"
	"errors"
	"testing"

	"github.com/foodhub/backend/internal/domain/catalog"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/scheduler"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]review.Review, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByOrder(ctx context.Context, orderID string) ([]review.Review, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Summarize(ctx context.Context, restaurantID string) (review.RatingSummary, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(review.RatingSummary), args.Error(1)
}

func (m *MockReviewRepository) FindUnflaggedOrderIDs(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]string), args.Error(1)
}

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

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type reviewFixture struct {
	svc         *ReviewService
	reviews     *MockReviewRepository
	orders      *MockOrderRepository
	restaurants *MockRestaurantRepository
	published   *capturingPublisher
	order       *ordering.Order
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	order, err := ordering.NewOrder(
		ordering.Customer{ID: "user-1", DisplayName: "Jane Doe"},
		"fresh-fusion",
		[]ordering.OrderItem{{MenuItemID: "a1", Name: "Salmon Nigiri", Price: decimal.RequireFromString("8.99"), Quantity: 1}},
		decimal.RequireFromString("8.99"),
	)
	require.NoError(t, err)

	f := &reviewFixture{
		reviews:     new(MockReviewRepository),
		orders:      new(MockOrderRepository),
		restaurants: new(MockRestaurantRepository),
		published:   &capturingPublisher{},
		order:       order,
	}
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("FindByID", mock.Anything, "missing").Return(nil, shared.NewNotFoundError("Order not found"))
	f.svc = NewReviewService(f.reviews, f.orders, f.restaurants, zap.NewNop())
	f.svc.SetEventPublisher(f.published)
	return f
}

func (f *reviewFixture) request(rating int) SubmitReviewRequest {
	return SubmitReviewRequest{OrderID: f.order.ID, RestaurantID: "fresh-fusion", Rating: rating, Comment: "Great sushi"}
}

var jane = review.Author{ID: "user-1", DisplayName: "Jane Doe"}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestReviewService_SubmitReview(t *testing.T) {
	f := newReviewFixture(t)
	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil)
	f.orders.On("MarkReviewed", mock.Anything, f.order.ID).Return(nil)

	res, err := f.svc.SubmitReview(context.Background(), jane, f.request(5))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "Jane Doe", res.UserName)
	assert.Equal(t, 5, res.Rating)
	assert.Nil(t, res.Reply)

	f.orders.AssertCalled(t, "MarkReviewed", mock.Anything, f.order.ID)
	require.Len(t, f.published.events, 1)
	assert.Equal(t, review.EventTypeReviewSubmitted, f.published.events[0].EventType())
}

func TestReviewService_SecondReviewAccepted(t *testing.T) {
	f := newReviewFixture(t)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("MarkReviewed", mock.Anything, f.order.ID).Return(nil)
	ctx := context.Background()

	first, err := f.svc.SubmitReview(ctx, jane, f.request(4))
	require.NoError(t, err)
	second, err := f.svc.SubmitReview(ctx, jane, f.request(2))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	f.reviews.AssertNumberOfCalls(t, "Create", 2)
}

func TestReviewService_SubmitReview_Validation(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     SubmitReviewRequest
		message string
	}{
		{"missing order", SubmitReviewRequest{RestaurantID: "fresh-fusion", Rating: 4}, "Missing required fields"},
		{"missing restaurant", SubmitReviewRequest{OrderID: f.order.ID, Rating: 4}, "Missing required fields"},
		{"missing rating", SubmitReviewRequest{OrderID: f.order.ID, RestaurantID: "fresh-fusion"}, "Missing required fields"},
		{"rating too high", f.request(6), "Rating must be between 1 and 5"},
		{"rating negative", f.request(-1), "Rating must be between 1 and 5"},
		{"restaurant mismatch", SubmitReviewRequest{OrderID: f.order.ID, RestaurantID: "noodle-bar", Rating: 3}, "Restaurant does not match order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitReview(ctx, jane, tt.req)
			assertCode(t, err, shared.CodeValidation)
			assert.Equal(t, tt.message, err.Error())
		})
	}
	f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitReview_OrderChecks(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	req := f.request(4)
	req.OrderID = "missing"
	_, err := f.svc.SubmitReview(ctx, jane, req)
	assertCode(t, err, shared.CodeNotFound)

	_, err = f.svc.SubmitReview(ctx, review.Author{ID: "user-2"}, f.request(4))
	assertCode(t, err, shared.CodeAuthorization)
}

func TestReviewService_SubmitReview_FlagFailureIsReported(t *testing.T) {
	f := newReviewFixture(t)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("MarkReviewed", mock.Anything, f.order.ID).
		Return(shared.NewPersistenceError("mark reviewed", errors.New("store down")))

	res, err := f.svc.SubmitReview(context.Background(), jane, f.request(5))
	assert.Nil(t, res)
	assertCode(t, err, shared.CodePersistence)
	// The review row stays for the reconcile job to pick up
	f.reviews.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitReview_FlagFailureWithoutDomainError(t *testing.T) {
	f := newReviewFixture(t)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("MarkReviewed", mock.Anything, f.order.ID).Return(errors.New("connection reset"))

	_, err := f.svc.SubmitReview(context.Background(), jane, f.request(5))
	assertCode(t, err, shared.CodePersistence)
}

func TestReviewService_SubmitReview_CreateFailure(t *testing.T) {
	f := newReviewFixture(t)
	f.reviews.On("Create", mock.Anything, mock.Anything).
		Return(shared.NewPersistenceError("create review", errors.New("timeout")))

	_, err := f.svc.SubmitReview(context.Background(), jane, f.request(5))
	assertCode(t, err, shared.CodePersistence)
	f.orders.AssertNotCalled(t, "MarkReviewed", mock.Anything, mock.Anything)
	assert.Empty(t, f.published.events)
}

func TestReviewService_ListMerchantReviews(t *testing.T) {
	f := newReviewFixture(t)
	restaurant, err := catalog.NewRestaurant("fresh-fusion", "merchant-1", "Fresh Fusion")
	require.NoError(t, err)
	r, err := review.NewReview(jane, f.order.ID, "fresh-fusion", 5, "")
	require.NoError(t, err)

	f.restaurants.On("FindByOwner", mock.Anything, "merchant-1").Return(restaurant, nil)
	f.restaurants.On("FindByOwner", mock.Anything, "merchant-2").Return(nil, shared.NewNotFoundError("Restaurant not found"))
	f.reviews.On("FindByRestaurant", mock.Anything, "fresh-fusion").Return([]review.Review{*r}, nil)

	reviews, err := f.svc.ListMerchantReviews(context.Background(), "merchant-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, r.ID, reviews[0].ID)

	_, err = f.svc.ListMerchantReviews(context.Background(), "merchant-2")
	assertCode(t, err, shared.CodeNotFound)
}

func TestReconciler(t *testing.T) {
	reviews := new(MockReviewRepository)
	orders := new(MockOrderRepository)
	reviews.On("FindUnflaggedOrderIDs", mock.Anything, 10).Return([]string{"o1", "o2"}, nil)
	orders.On("MarkReviewed", mock.Anything, "o1").Return(nil)
	orders.On("MarkReviewed", mock.Anything, "o2").Return(nil)

	rec := NewReconciler(reviews, orders, 10, zap.NewNop())
	repaired, err := rec.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)

	require.NoError(t, rec.Execute(context.Background(), scheduler.NewJob(ReconcileJobName, 3)))
	orders.AssertNumberOfCalls(t, "MarkReviewed", 4)
}

func TestReconciler_StopsOnFailure(t *testing.T) {
	reviews := new(MockReviewRepository)
	orders := new(MockOrderRepository)
	reviews.On("FindUnflaggedOrderIDs", mock.Anything, 100).Return([]string{"o1", "o2"}, nil)
	orders.On("MarkReviewed", mock.Anything, "o1").Return(errors.New("connection reset"))

	repaired, err := NewReconciler(reviews, orders, 0, zap.NewNop()).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, repaired)
	orders.AssertNotCalled(t, "MarkReviewed", mock.Anything, "o2")
}
