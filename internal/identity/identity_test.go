package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickervalley/stickervalley/internal/domain"
)

type fakeSyncStore struct {
	upserted *domain.User
}

func (f *fakeSyncStore) UpsertUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	f.upserted = u
	out := *u
	return &out, nil
}

func testClaims(subject string) *Claims {
	return &Claims{
		Email: "fox@example.com",
		Name:  "Fox Buyer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Sign(testClaims("auth0|abc123"))
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc123", claims.Subject)
	assert.Equal(t, "fox@example.com", claims.Email)
}

func TestVerifyRejections(t *testing.T) {
	v := NewVerifier("test-secret")

	t.Run("wrong secret", func(t *testing.T) {
		other := NewVerifier("different-secret")
		token, err := other.Sign(testClaims("auth0|abc123"))
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	})

	t.Run("expired token", func(t *testing.T) {
		claims := testClaims("auth0|abc123")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token, err := v.Sign(claims)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := v.Sign(testClaims(""))
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	})
}

func TestSyncerResolve(t *testing.T) {
	store := &fakeSyncStore{}
	syncer := NewSyncer(store)

	claims := testClaims("auth0|abc123")
	claims.Role = domain.RoleVendor

	user, err := syncer.Resolve(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc123", user.ExternalID)
	assert.Equal(t, domain.RoleVendor, user.Role)
	assert.Equal(t, "fox@example.com", store.upserted.Email)
}

func TestSyncerDefaultsUnknownRole(t *testing.T) {
	syncer := NewSyncer(&fakeSyncStore{})

	claims := testClaims("auth0|abc123")
	claims.Role = "superuser"

	user, err := syncer.Resolve(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBuyer, user.Role)
}
