// Package identity verifies tokens issued by the external identity
// provider and mirrors provider accounts into local user rows. The API
// never stores credentials; it only consumes signed identity claims.
package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// Claims are the fields this service reads out of a provider token.
type Claims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"picture,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks provider token signatures and expiry.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for HS256 tokens signed with secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token, returning its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.Unauthorized("identity.verify", "token has expired")
		}
		return nil, domain.Unauthorized("identity.verify", "invalid token")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.Unauthorized("identity.verify", "invalid token")
	}
	return claims, nil
}

// Sign mints a token for the claims. Used by tests and local tooling;
// production tokens come from the provider.
func (v *Verifier) Sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// UserSyncStore is the persistence surface the syncer needs.
type UserSyncStore interface {
	UpsertUser(ctx context.Context, u *domain.User) (*domain.User, error)
}

// Syncer resolves verified claims to a local user, creating or
// refreshing the mirrored row on the way.
type Syncer struct {
	store UserSyncStore
}

// NewSyncer creates a new Syncer.
func NewSyncer(store UserSyncStore) *Syncer {
	return &Syncer{store: store}
}

// Resolve maps claims to the local user they belong to. The provider's
// subject is the stable key; profile fields are refreshed on every
// call so the mirror tracks the provider. The role only applies on
// first sight of a user, later role changes are managed locally.
func (s *Syncer) Resolve(ctx context.Context, claims *Claims) (*domain.User, error) {
	role := claims.Role
	switch role {
	case domain.RoleBuyer, domain.RoleVendor, domain.RoleAdmin:
	default:
		role = domain.RoleBuyer
	}

	return s.store.UpsertUser(ctx, &domain.User{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		AvatarURL:  claims.AvatarURL,
		Role:       role,
	})
}
