package identity

import (
	"context"
	"testing"
	"time"

	"github.com/foodhub/backend/internal/domain/identity"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/auth"
	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
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

type recordingSessions struct {
	discarded []string
}

func (r *recordingSessions) Discard(sessionID string) {
	r.discarded = append(r.discarded, sessionID)
}

func newTestAuthService(t *testing.T) (*AuthService, *MockUserRepository, *recordingSessions) {
	t.Helper()
	repo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "foodhub-test",
	})
	sessions := &recordingSessions{}
	svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop()).
		WithSessionCloser(sessions)
	return svc, repo, sessions
}

func newMerchant(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("chef@example.com", "password123", "Kenji", "Sato", identity.RoleMerchant)
	require.NoError(t, err)
	require.NoError(t, u.SetPhone("+1 555-0100"))
	return u
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestAuthService_Register(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := svc.Register(ctx, RegisterRequest{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Phone:     "+1 555-0199",
		Role:      "merchant",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "Ada Lovelace", result.User.DisplayName)
	assert.Equal(t, "merchant", result.User.Role)
	assert.Equal(t, "+1 555-0199", result.User.Phone)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

	_, err := svc.Register(ctx, RegisterRequest{Email: "taken@example.com", Password: "password123"})
	assertCode(t, err, shared.CodeConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()
	user := newMerchant(t)

	repo.On("FindByEmail", ctx, "chef@example.com").Return(user, nil)
	repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.NewNotFoundError("User not found"))

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginRequest{Email: "chef@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "chef@example.com", Password: "wrong-pass1"})
		assertCode(t, err, shared.CodeAuthentication)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assertCode(t, err, shared.CodeAuthentication)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()
	user := newMerchant(t)

	repo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	result, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	principal, err := svc.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "Kenji Sato", principal.DisplayName)
	assert.Equal(t, "+1 555-0100", principal.Phone)
	assert.Equal(t, identity.RoleMerchant, principal.Role)
	assert.NotEmpty(t, principal.SessionID)
	assert.True(t, principal.CanManageRestaurant())

	_, err = svc.Authenticate(ctx, "")
	assertCode(t, err, shared.CodeAuthentication)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	assertCode(t, err, shared.CodeAuthentication)

	_, err = svc.Authenticate(ctx, result.RefreshToken)
	assertCode(t, err, shared.CodeAuthentication)
}

func TestAuthService_RefreshKeepsSession(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()
	user := newMerchant(t)

	repo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)
	before, err := svc.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	after, err := svc.Authenticate(ctx, refreshed.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, before.SessionID, after.SessionID)
	assert.NotEqual(t, before.TokenID, after.TokenID)
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo, sessions := newTestAuthService(t)
	ctx := context.Background()
	user := newMerchant(t)

	repo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)
	principal, err := svc.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, principal))
	assert.Equal(t, []string{principal.SessionID}, sessions.discarded)

	_, err = svc.Authenticate(ctx, login.AccessToken)
	assertCode(t, err, shared.CodeAuthentication)

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	assertCode(t, err, shared.CodeAuthentication)
}

func TestAuthService_Profile(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()
	user := newMerchant(t)

	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("FindByID", ctx, "missing").Return(nil, shared.NewNotFoundError("User not found"))

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", profile.Email)

	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
