package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// GetOrCreateCart returns the user's cart, creating it on first access.
// The unique constraint on user_id makes the insert race-safe.
func (s *Store) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING id, user_id, created_at, updated_at`,
		userID)

	var c domain.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, domain.Internal(err, "cart.get_or_create", "failed to get cart")
	}
	return &c, nil
}

// GetCartByUser retrieves the user's cart without creating one.
func (s *Store) GetCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1`,
		userID)

	var c domain.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if noRows(err) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get", "failed to get cart")
	}
	return &c, nil
}

// ListCartItems returns the cart's line items joined with each referenced
// sticker's current name, price, stock, and type. This is the point-in-time
// read order placement starts from.
func (s *Store) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ci.id, ci.sticker_id, st.name, st.type, st.price_cents, st.stock, ci.quantity
		FROM cart_items ci
		JOIN stickers st ON st.id = ci.sticker_id
		WHERE ci.cart_id = $1
		ORDER BY st.name`,
		cartID)
	if err != nil {
		return nil, domain.Internal(err, "cart.list_items", "failed to list cart items")
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.StickerID, &it.StickerName, &it.StickerType, &it.UnitPrice, &it.Stock, &it.Quantity); err != nil {
			return nil, domain.Internal(err, "cart.list_items", "failed to scan cart item")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "cart.list_items", "failed to read cart items")
	}
	return items, nil
}

// UpsertCartItem adds a sticker to the cart or, if the sticker is already
// carted, increments the existing row's quantity. One row per
// (cart, sticker) is an invariant the unique constraint enforces.
func (s *Store) UpsertCartItem(ctx context.Context, cartID, stickerID uuid.UUID, quantity int32) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cart_items (cart_id, sticker_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, sticker_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, stickerID, quantity)
	if err != nil {
		return domain.Internal(err, "cart.add_item", "failed to add cart item")
	}
	return nil
}

// SetCartItemQuantity replaces a line item's quantity.
func (s *Store) SetCartItemQuantity(ctx context.Context, cartID, stickerID uuid.UUID, quantity int32) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE cart_items
		SET quantity = $3
		WHERE cart_id = $1 AND sticker_id = $2`,
		cartID, stickerID, quantity)
	if err != nil {
		return domain.Internal(err, "cart.set_quantity", "failed to update cart item")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// RemoveCartItem deletes a single line item.
func (s *Store) RemoveCartItem(ctx context.Context, cartID, stickerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND sticker_id = $2`,
		cartID, stickerID)
	if err != nil {
		return domain.Internal(err, "cart.remove_item", "failed to remove cart item")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// ClearCart deletes all line items from a cart.
func (s *Store) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart")
	}
	return nil
}
