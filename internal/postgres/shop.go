package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// CreateShop inserts a new shop for a vendor.
func (s *Store) CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO shops (owner_id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, name, slug, description, created_at`,
		shop.OwnerID, shop.Name, shop.Slug, shop.Description)

	var out domain.Shop
	err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.Slug, &out.Description, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict("shop.create", "shop slug already exists")
		}
		return nil, domain.Internal(err, "shop.create", "failed to create shop")
	}
	return &out, nil
}

// GetShop retrieves a shop by id.
func (s *Store) GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	return s.scanShop(s.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, slug, description, created_at
		FROM shops WHERE id = $1`, id))
}

// GetShopBySlug retrieves a shop by its public slug.
func (s *Store) GetShopBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	return s.scanShop(s.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, slug, description, created_at
		FROM shops WHERE slug = $1`, slug))
}

func (s *Store) scanShop(row interface{ Scan(dest ...any) error }) (*domain.Shop, error) {
	var out domain.Shop
	err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.Slug, &out.Description, &out.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, domain.ErrShopNotFound
		}
		return nil, domain.Internal(err, "shop.get", "failed to get shop")
	}
	return &out, nil
}

// ListShops returns all shops, newest first.
func (s *Store) ListShops(ctx context.Context) ([]domain.Shop, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, name, slug, description, created_at
		FROM shops
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "shop.list", "failed to list shops")
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		var sh domain.Shop
		if err := rows.Scan(&sh.ID, &sh.OwnerID, &sh.Name, &sh.Slug, &sh.Description, &sh.CreatedAt); err != nil {
			return nil, domain.Internal(err, "shop.list", "failed to scan shop")
		}
		shops = append(shops, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "shop.list", "failed to read shops")
	}
	return shops, nil
}

// UpdateShop replaces a shop's editable fields.
func (s *Store) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE shops
		SET name = $2, description = $3
		WHERE id = $1`,
		shop.ID, shop.Name, shop.Description)
	if err != nil {
		return domain.Internal(err, "shop.update", "failed to update shop")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

// DeleteShop removes a shop and, via cascade, its stickers.
func (s *Store) DeleteShop(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "shop.delete", "failed to delete shop")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}
