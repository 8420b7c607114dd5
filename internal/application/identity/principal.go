package identity

import (
	"time"

	"github.com/foodhub/backend/internal/domain/identity"
)

// Principal is a verified caller. SessionID is stable for the lifetime of a
// login and survives token refreshes.
type Principal struct {
	UserID      string
	SessionID   string
	TokenID     string
	Email       string
	DisplayName string
	Phone       string
	Role        identity.Role
	ExpiresAt   time.Time
}

// CanManageRestaurant reports whether the caller may use merchant endpoints
func (p *Principal) CanManageRestaurant() bool {
	return p.Role.CanManageRestaurant()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
