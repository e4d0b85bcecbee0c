package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// CreateSticker inserts a new sticker listing.
func (s *Store) CreateSticker(ctx context.Context, st *domain.Sticker) (*domain.Sticker, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO stickers (shop_id, name, description, price_cents, stock, type, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, shop_id, name, description, price_cents, stock, type, image_url, created_at, updated_at`,
		st.ShopID, st.Name, st.Description, st.Price, st.Stock, st.Type, st.ImageURL)

	var out domain.Sticker
	err := row.Scan(&out.ID, &out.ShopID, &out.Name, &out.Description, &out.Price, &out.Stock, &out.Type, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, domain.Internal(err, "sticker.create", "failed to create sticker")
	}
	return &out, nil
}

// GetSticker retrieves a sticker by id.
func (s *Store) GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, shop_id, name, description, price_cents, stock, type, image_url, created_at, updated_at
		FROM stickers
		WHERE id = $1`,
		id)

	var out domain.Sticker
	err := row.Scan(&out.ID, &out.ShopID, &out.Name, &out.Description, &out.Price, &out.Stock, &out.Type, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, domain.ErrStickerNotFound
		}
		return nil, domain.Internal(err, "sticker.get", "failed to get sticker")
	}
	return &out, nil
}

// ListStickers returns catalog listings matching the filter.
// The WHERE clause is assembled from the populated filter fields only.
func (s *Store) ListStickers(ctx context.Context, filter domain.StickerFilter) ([]domain.Sticker, error) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ShopID != uuid.Nil {
		conds = append(conds, "shop_id = "+arg(filter.ShopID))
	}
	if filter.Type != "" {
		conds = append(conds, "type = "+arg(filter.Type))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price_cents >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price_cents <= "+arg(*filter.MaxPrice))
	}
	if filter.Search != "" {
		conds = append(conds, "(name ILIKE "+arg("%"+filter.Search+"%")+" OR description ILIKE "+arg("%"+filter.Search+"%")+")")
	}

	query := `
		SELECT id, shop_id, name, description, price_cents, stock, type, image_url, created_at, updated_at
		FROM stickers`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += " LIMIT " + arg(limit)
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "sticker.list", "failed to list stickers")
	}
	defer rows.Close()

	var stickers []domain.Sticker
	for rows.Next() {
		var st domain.Sticker
		if err := rows.Scan(&st.ID, &st.ShopID, &st.Name, &st.Description, &st.Price, &st.Stock, &st.Type, &st.ImageURL, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, domain.Internal(err, "sticker.list", "failed to scan sticker")
		}
		stickers = append(stickers, st)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "sticker.list", "failed to read stickers")
	}
	return stickers, nil
}

// UpdateSticker replaces a sticker's editable fields.
func (s *Store) UpdateSticker(ctx context.Context, st *domain.Sticker) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE stickers
		SET name = $2, description = $3, price_cents = $4, stock = $5, image_url = $6, updated_at = now()
		WHERE id = $1`,
		st.ID, st.Name, st.Description, st.Price, st.Stock, st.ImageURL)
	if err != nil {
		return domain.Internal(err, "sticker.update", "failed to update sticker")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStickerNotFound
	}
	return nil
}

// DeleteSticker removes a sticker listing.
func (s *Store) DeleteSticker(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM stickers WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "sticker.delete", "failed to delete sticker")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStickerNotFound
	}
	return nil
}
