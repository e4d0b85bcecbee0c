package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleBuyer  = "buyer"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// User is a local account synced from the external identity provider.
// The provider owns authentication; we only mirror profile fields.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"-"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsVendor reports whether the user may manage shops and stickers.
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor || u.Role == RoleAdmin
}

// IsAdmin reports whether the user has operator privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type contextKey string

const userContextKey contextKey = "user"

// NewContextWithUser returns a context carrying the authenticated user.
func NewContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userContextKey).(*User)
	return u, ok
}
