package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// GetUserByExternalID looks up a user by the identity provider's id.
func (s *Store) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, external_id, email, name, avatar_url, role, created_at
		FROM users
		WHERE external_id = $1`,
		externalID)

	var u domain.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.AvatarURL, &u.Role, &u.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, domain.NotFound("user.get_by_external_id", "user", externalID)
		}
		return nil, domain.Internal(err, "user.get_by_external_id", "failed to get user")
	}
	return &u, nil
}

// GetUser retrieves a user by local id.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, external_id, email, name, avatar_url, role, created_at
		FROM users
		WHERE id = $1`,
		id)

	var u domain.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.AvatarURL, &u.Role, &u.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, domain.NotFound("user.get", "user", id.String())
		}
		return nil, domain.Internal(err, "user.get", "failed to get user")
	}
	return &u, nil
}

// UpsertUser creates a local user row for an external identity, or
// refreshes the mirrored profile fields if the row already exists.
// This is the opportunistic sync path: provider records land here the
// first time their owner calls an authenticated endpoint.
func (s *Store) UpsertUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (external_id, email, name, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) DO UPDATE
		SET email = EXCLUDED.email, name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url
		RETURNING id, external_id, email, name, avatar_url, role, created_at`,
		u.ExternalID, u.Email, u.Name, u.AvatarURL, u.Role)

	var out domain.User
	err := row.Scan(&out.ID, &out.ExternalID, &out.Email, &out.Name, &out.AvatarURL, &out.Role, &out.CreatedAt)
	if err != nil {
		return nil, domain.Internal(err, "user.upsert", "failed to sync user")
	}
	return &out, nil
}
