package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

// InsertOrder writes a new order row and fills in the generated fields.
func (t *Tx) InsertOrder(ctx context.Context, userID uuid.UUID, total money.Cents) (*domain.Order, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_cents, status)
		VALUES ($1, $2, 'PENDING')
		RETURNING id, user_id, total_cents, status, created_at, updated_at`,
		userID, total)

	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, domain.Internal(err, "order.insert", "failed to create order")
	}
	return &o, nil
}

// InsertOrderItem snapshots one cart line into the order.
func (t *Tx) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO order_items (order_id, sticker_id, sticker_name, quantity, price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.OrderID, item.StickerID, item.StickerName, item.Quantity, item.Price)
	if err := row.Scan(&item.ID); err != nil {
		return domain.Internal(err, "order.insert_item", "failed to create order item")
	}
	return nil
}

// DecrementStock atomically takes quantity units off a sticker's stock.
// The conditional WHERE is the oversell guard: the update only lands when
// enough stock remains (digital stickers always pass), so two concurrent
// orders can never both drain the same units. Returns false when the
// guard rejected the decrement.
func (t *Tx) DecrementStock(ctx context.Context, stickerID uuid.UUID, quantity int32) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE stickers
		SET stock = CASE WHEN type = 'PHYSICAL' THEN stock - $2 ELSE stock END,
		    updated_at = now()
		WHERE id = $1 AND (type = 'DIGITAL' OR stock >= $2)`,
		stickerID, quantity)
	if err != nil {
		return false, domain.Internal(err, "order.decrement_stock", "failed to decrement stock")
	}
	return tag.RowsAffected() == 1, nil
}

// StickerStock reads a sticker's current stock inside the transaction,
// used to report how many units remain after a shortage.
func (t *Tx) StickerStock(ctx context.Context, stickerID uuid.UUID) (int32, error) {
	var stock int32
	err := t.tx.QueryRow(ctx, `SELECT stock FROM stickers WHERE id = $1`, stickerID).Scan(&stock)
	if err != nil {
		if noRows(err) {
			return 0, domain.ErrStickerNotFound
		}
		return 0, domain.Internal(err, "order.sticker_stock", "failed to read stock")
	}
	return stock, nil
}

// DeleteCartItems removes every line item from the source cart so the
// cart cannot be spent into a second order.
func (t *Tx) DeleteCartItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return domain.Internal(err, "order.clear_cart", "failed to clear cart")
	}
	return nil
}

// GetOrder retrieves a single order row.
func (s *Store) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, total_cents, status, created_at, updated_at
		FROM orders
		WHERE id = $1`,
		orderID)

	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if noRows(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to get order")
	}
	return &o, nil
}

// GetOrderDetail retrieves an order with its items.
func (s *Store) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, sticker_id, sticker_name, quantity, price_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY sticker_name`,
		orderID)
	if err != nil {
		return nil, domain.Internal(err, "order.get_detail", "failed to list order items")
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.StickerID, &it.StickerName, &it.Quantity, &it.Price); err != nil {
			return nil, domain.Internal(err, "order.get_detail", "failed to scan order item")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.get_detail", "failed to read order items")
	}

	return &domain.OrderDetail{Order: *order, Items: items}, nil
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, total_cents, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, domain.Internal(err, "order.list", "failed to list orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, domain.Internal(err, "order.list", "failed to scan order")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list", "failed to read orders")
	}
	return orders, nil
}

// TransitionOrderStatus moves an order from one status to another with a
// guarded conditional update. Returns false when the order was no longer
// in the expected from status, which makes concurrent double-pay calls
// resolve to exactly one winner.
func (s *Store) TransitionOrderStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		orderID, from, to)
	if err != nil {
		return false, domain.Internal(err, "order.transition", "failed to update order status")
	}
	return tag.RowsAffected() == 1, nil
}
