package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// AddWishlistItem saves a sticker to the user's wishlist. Saving an
// already wishlisted sticker is a no-op.
func (s *Store) AddWishlistItem(ctx context.Context, userID, stickerID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, sticker_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, sticker_id) DO NOTHING`,
		userID, stickerID)
	if err != nil {
		return domain.Internal(err, "wishlist.add", "failed to add wishlist item")
	}
	return nil
}

// ListWishlist returns the user's wishlist with each saved sticker's
// current listing attached, newest saves first.
func (s *Store) ListWishlist(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT wi.id, wi.user_id, wi.sticker_id, wi.created_at,
		       st.id, st.shop_id, st.name, st.description, st.price_cents, st.stock, st.type, st.image_url, st.created_at, st.updated_at
		FROM wishlist_items wi
		JOIN stickers st ON st.id = wi.sticker_id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC`,
		userID)
	if err != nil {
		return nil, domain.Internal(err, "wishlist.list", "failed to list wishlist")
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var (
			it domain.WishlistItem
			st domain.Sticker
		)
		err := rows.Scan(
			&it.ID, &it.UserID, &it.StickerID, &it.CreatedAt,
			&st.ID, &st.ShopID, &st.Name, &st.Description, &st.Price, &st.Stock, &st.Type, &st.ImageURL, &st.CreatedAt, &st.UpdatedAt,
		)
		if err != nil {
			return nil, domain.Internal(err, "wishlist.list", "failed to scan wishlist item")
		}
		it.Sticker = &st
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "wishlist.list", "failed to read wishlist")
	}
	return items, nil
}

// RemoveWishlistItem deletes a saved sticker from the user's wishlist.
func (s *Store) RemoveWishlistItem(ctx context.Context, userID, stickerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND sticker_id = $2`,
		userID, stickerID)
	if err != nil {
		return domain.Internal(err, "wishlist.remove", "failed to remove wishlist item")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWishlistItemNotFound
	}
	return nil
}
