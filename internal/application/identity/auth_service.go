package identity

import (
	"context"
	"errors"
	"time"

	"github.com/foodhub/backend/internal/domain/identity"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// SessionCloser releases per-session state when a caller logs out
type SessionCloser interface {
	Discard(sessionID string)
}

// AuthService handles registration, token issuing and token verification
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	sessions   SessionCloser
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// WithSessionCloser sets the component notified when a session ends
func (s *AuthService) WithSessionCloser(c SessionCloser) *AuthService {
	s.sessions = c
	return s
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Email is already registered")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FirstName, req.LastName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role.String()))

	return s.issue(user)
}

// Login authenticates by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, shared.NewAuthenticationError("Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID))
		return nil, shared.NewAuthenticationError("Invalid email or password")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return s.issue(user)
}

// Refresh issues a new token pair in the same session
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}

	if revoked, err := s.isRevoked(ctx, claims); err != nil {
		return nil, err
	} else if revoked {
		return nil, shared.NewAuthenticationError("Session has ended")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewAuthenticationError("User no longer exists")
		}
		return nil, err
	}

	pair, _, err := s.jwtService.RefreshTokenPair(req.RefreshToken, subjectOf(user))
	if err != nil {
		return nil, tokenError(err)
	}
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// Logout revokes the caller's access token, ends the session and discards
// the session cart
func (s *AuthService) Logout(ctx context.Context, p *Principal) error {
	if ttl := time.Until(p.ExpiresAt); ttl > 0 && p.TokenID != "" {
		if err := s.blacklist.Revoke(ctx, p.TokenID, ttl); err != nil {
			return shared.NewPersistenceError("revoke token", err)
		}
	}
	if p.SessionID != "" {
		if err := s.blacklist.Revoke(ctx, sessionKey(p.SessionID), s.jwtService.RefreshTokenExpiration()); err != nil {
			return shared.NewPersistenceError("end session", err)
		}
		if s.sessions != nil {
			s.sessions.Discard(p.SessionID)
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", p.UserID))
	return nil
}

// Profile returns the caller's account
func (s *AuthService) Profile(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Authenticate verifies an access token and resolves the caller from the
// users store. Role and profile claims always come from the stored user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*Principal, error) {
	if accessToken == "" {
		return nil, shared.NewAuthenticationError("Authorization token is required")
	}

	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err)
	}

	revoked, err := s.isRevoked(ctx, claims)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.NewAuthenticationError("Token has been revoked")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewAuthenticationError("User no longer exists")
		}
		return nil, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &Principal{
		UserID:      user.ID,
		SessionID:   claims.SessionID,
		TokenID:     claims.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Phone:       user.Phone,
		Role:        user.Role,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *AuthService) isRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	keys := []string{claims.ID}
	if claims.SessionID != "" {
		keys = append(keys, sessionKey(claims.SessionID))
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		revoked, err := s.blacklist.IsRevoked(ctx, key)
		if err != nil {
			return false, shared.NewPersistenceError("check token revocation", err)
		}
		if revoked {
			return true, nil
		}
	}
	return false, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(subjectOf(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

func subjectOf(u *identity.User) auth.Subject {
	return auth.Subject{UserID: u.ID, Email: u.Email, Role: u.Role.String()}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewAuthenticationError("Token has expired")
	case errors.Is(err, auth.ErrInvalidTokenType):
		return shared.NewAuthenticationError("Wrong token type")
	default:
		return shared.NewAuthenticationError("Invalid token")
	}
}
