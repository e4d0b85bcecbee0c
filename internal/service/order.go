package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/billing"
	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/events"
	"github.com/stickervalley/stickervalley/internal/money"
)

// OrderTx is the set of writes available inside the order placement
// transaction. Every method runs against the same database transaction,
// so an error from the callback rolls all of them back together.
type OrderTx interface {
	InsertOrder(ctx context.Context, userID uuid.UUID, total money.Cents) (*domain.Order, error)
	InsertOrderItem(ctx context.Context, item *domain.OrderItem) error
	DecrementStock(ctx context.Context, stickerID uuid.UUID, quantity int32) (bool, error)
	StickerStock(ctx context.Context, stickerID uuid.UUID) (int32, error)
	DeleteCartItems(ctx context.Context, cartID uuid.UUID) error
}

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	ListCartItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	TransitionOrderStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) (bool, error)
	InTx(ctx context.Context, fn func(tx OrderTx) error) error
}

// OrderService provides business logic for order placement and the
// order status lifecycle.
type OrderService interface {
	// PlaceOrder converts the user's cart into a PENDING order. The
	// conversion is atomic: stock decrements, order rows, and the cart
	// wipe all commit together or not at all.
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.OrderDetail, error)

	// Pay charges the order and moves it from PENDING to PAID.
	Pay(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)

	// Cancel moves a PENDING order to CANCELLED.
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)

	// UpdateStatus advances an order along the fulfillment path
	// (PAID to SHIPPED, SHIPPED to DELIVERED). Caller authorization is
	// the router's responsibility.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) (*domain.Order, error)

	// GetOrder returns one of the user's orders with its items.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.OrderDetail, error)

	// ListOrders returns the user's order history, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

type orderService struct {
	store     OrderStore
	billing   billing.Provider
	publisher *events.Publisher
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store OrderStore, provider billing.Provider, publisher *events.Publisher, logger *slog.Logger) OrderService {
	return &orderService{
		store:     store,
		billing:   provider,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder snapshots the cart into an order inside one transaction.
//
// The cart read happens first and fixes the prices and names the order
// will carry. Inside the transaction each physical sticker's stock is
// decremented with a guarded update; a rejected decrement means another
// order got the units first, and the whole transaction rolls back with
// a StockShortageError naming the sticker. On success the cart is
// emptied in the same transaction so it cannot buy a second order.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.OrderDetail, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var total money.Cents
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		total += it.LineTotal()
	}

	var detail *domain.OrderDetail
	err = s.store.InTx(ctx, func(tx OrderTx) error {
		order, err := tx.InsertOrder(ctx, userID, total)
		if err != nil {
			return err
		}

		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, it := range items {
			ok, err := tx.DecrementStock(ctx, it.StickerID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, err := tx.StickerStock(ctx, it.StickerID)
				if err != nil {
					return err
				}
				return &domain.StockShortageError{
					StickerID: it.StickerID,
					Name:      it.StickerName,
					Requested: it.Quantity,
					Available: available,
				}
			}

			item := domain.OrderItem{
				OrderID:     order.ID,
				StickerID:   it.StickerID,
				StickerName: it.StickerName,
				Quantity:    it.Quantity,
				Price:       it.UnitPrice,
			}
			if err := tx.InsertOrderItem(ctx, &item); err != nil {
				return err
			}
			orderItems = append(orderItems, item)
		}

		if err := tx.DeleteCartItems(ctx, cart.ID); err != nil {
			return err
		}

		detail = &domain.OrderDetail{Order: *order, Items: orderItems}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", detail.Order.ID,
		"user_id", userID,
		"total", detail.Order.TotalAmount,
		"items", len(detail.Items))

	s.publisher.OrderCreated(events.OrderCreated{
		OrderID:     detail.Order.ID,
		UserID:      userID,
		TotalAmount: detail.Order.TotalAmount,
		ItemCount:   len(detail.Items),
		CreatedAt:   detail.Order.CreatedAt,
	})

	return detail, nil
}

// Pay charges the order's total and transitions PENDING to PAID. The
// guarded transition makes concurrent payment attempts resolve to one
// winner; the loser's charge is refunded and it gets a conflict, so the
// order is never paid for twice.
func (s *orderService) Pay(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending {
		return nil, domain.ErrOrderNotPending
	}

	charge, err := s.billing.Charge(ctx, billing.ChargeParams{
		OrderID: order.ID,
		UserID:  userID,
		Amount:  order.TotalAmount,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, order, domain.OrderPending, domain.OrderPaid)
	if err != nil {
		// Another Pay won the race after we charged. Hand the money back.
		if refundErr := s.billing.Refund(ctx, charge.ID); refundErr != nil {
			s.logger.Error("failed to refund charge for lost payment race",
				"order_id", order.ID,
				"charge_id", charge.ID,
				"error", refundErr)
		}
		return nil, err
	}
	return updated, nil
}

// Cancel transitions a PENDING order to CANCELLED. Paid orders cannot
// be cancelled; they move through the fulfillment path instead.
func (s *orderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending {
		return nil, domain.ErrOrderNotPending
	}
	return s.transition(ctx, order, domain.OrderPending, domain.OrderCancelled)
}

// UpdateStatus moves an order to the given status when the state
// machine allows it from the order's current status.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(to) {
		return nil, domain.Errorf(domain.EINVALID, "order.update_status", "invalid order status: %s", to)
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, to) {
		return nil, domain.Errorf(domain.ECONFLICT, "order.update_status",
			"cannot transition order from %s to %s", order.Status, to)
	}
	return s.transition(ctx, order, order.Status, to)
}

// GetOrder returns the order with items, enforcing ownership.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.OrderDetail, error) {
	if _, err := s.ownedOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return s.store.GetOrderDetail(ctx, orderID)
}

// ListOrders returns the user's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.store.ListOrdersByUser(ctx, userID)
}

// ownedOrder fetches the order and verifies the caller owns it. Orders
// belonging to other users read as not found rather than forbidden, so
// order ids cannot be probed.
func (s *orderService) ownedOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) transition(ctx context.Context, order *domain.Order, from, to domain.OrderStatus) (*domain.Order, error) {
	ok, err := s.store.TransitionOrderStatus(ctx, order.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Errorf(domain.ECONFLICT, "order.transition",
			"order is no longer %s", from)
	}

	s.logger.Info("order status changed", "order_id", order.ID, "from", from, "to", to)
	s.publisher.OrderStatusChanged(events.OrderStatusChanged{
		OrderID:   order.ID,
		From:      from,
		To:        to,
		ChangedAt: time.Now().UTC(),
	})

	updated := *order
	updated.Status = to
	return &updated, nil
}
