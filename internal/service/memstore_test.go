package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

// memStore is an in-memory OrderStore used to exercise the order
// service's transaction logic, including rollback and the oversell
// guard, without a database. InTx serializes transactions under one
// lock and restores a snapshot when the callback fails, mirroring the
// all-or-nothing behavior of the real store.
type memStore struct {
	mu         sync.Mutex
	carts      map[uuid.UUID]*domain.Cart
	cartItems  map[uuid.UUID][]domain.CartItem
	stickers   map[uuid.UUID]*domain.Sticker
	orders     map[uuid.UUID]*domain.Order
	orderItems map[uuid.UUID][]domain.OrderItem
}

func newMemStore() *memStore {
	return &memStore{
		carts:      make(map[uuid.UUID]*domain.Cart),
		cartItems:  make(map[uuid.UUID][]domain.CartItem),
		stickers:   make(map[uuid.UUID]*domain.Sticker),
		orders:     make(map[uuid.UUID]*domain.Order),
		orderItems: make(map[uuid.UUID][]domain.OrderItem),
	}
}

func (m *memStore) addSticker(name, typ string, price money.Cents, stock int32) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.stickers[id] = &domain.Sticker{ID: id, Name: name, Type: typ, Price: price, Stock: stock}
	return id
}

func (m *memStore) addCartItem(userID, stickerID uuid.UUID, quantity int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := m.cartLocked(userID)
	st := m.stickers[stickerID]
	m.cartItems[cart.ID] = append(m.cartItems[cart.ID], domain.CartItem{
		ID:          uuid.New(),
		StickerID:   stickerID,
		StickerName: st.Name,
		StickerType: st.Type,
		UnitPrice:   st.Price,
		Stock:       st.Stock,
		Quantity:    quantity,
	})
}

func (m *memStore) stock(stickerID uuid.UUID) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stickers[stickerID].Stock
}

func (m *memStore) cartLocked(userID uuid.UUID) *domain.Cart {
	if cart, ok := m.carts[userID]; ok {
		return cart
	}
	cart := &domain.Cart{ID: uuid.New(), UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.carts[userID] = cart
	return cart
}

func (m *memStore) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := *m.cartLocked(userID)
	return &cart, nil
}

func (m *memStore) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.CartItem, len(m.cartItems[cartID]))
	copy(items, m.cartItems[cartID])
	return items, nil
}

func (m *memStore) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := *order
	return &out, nil
}

func (m *memStore) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	order, err := m.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.OrderItem, len(m.orderItems[orderID]))
	copy(items, m.orderItems[orderID])
	return &domain.OrderDetail{Order: *order, Items: items}, nil
}

func (m *memStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *memStore) TransitionOrderStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	return true, nil
}

func (m *memStore) InTx(ctx context.Context, fn func(tx OrderTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshotLocked()
	if err := fn(&memTx{store: m}); err != nil {
		m.restoreLocked(snapshot)
		return err
	}
	return nil
}

type memSnapshot struct {
	cartItems  map[uuid.UUID][]domain.CartItem
	stickers   map[uuid.UUID]*domain.Sticker
	orders     map[uuid.UUID]*domain.Order
	orderItems map[uuid.UUID][]domain.OrderItem
}

func (m *memStore) snapshotLocked() memSnapshot {
	s := memSnapshot{
		cartItems:  make(map[uuid.UUID][]domain.CartItem, len(m.cartItems)),
		stickers:   make(map[uuid.UUID]*domain.Sticker, len(m.stickers)),
		orders:     make(map[uuid.UUID]*domain.Order, len(m.orders)),
		orderItems: make(map[uuid.UUID][]domain.OrderItem, len(m.orderItems)),
	}
	for k, v := range m.cartItems {
		items := make([]domain.CartItem, len(v))
		copy(items, v)
		s.cartItems[k] = items
	}
	for k, v := range m.stickers {
		st := *v
		s.stickers[k] = &st
	}
	for k, v := range m.orders {
		o := *v
		s.orders[k] = &o
	}
	for k, v := range m.orderItems {
		items := make([]domain.OrderItem, len(v))
		copy(items, v)
		s.orderItems[k] = items
	}
	return s
}

func (m *memStore) restoreLocked(s memSnapshot) {
	m.cartItems = s.cartItems
	m.stickers = s.stickers
	m.orders = s.orders
	m.orderItems = s.orderItems
}

// memTx mutates the store directly; InTx already holds the lock and
// rolls back via snapshot on error.
type memTx struct {
	store *memStore
}

func (t *memTx) InsertOrder(ctx context.Context, userID uuid.UUID, total money.Cents) (*domain.Order, error) {
	order := &domain.Order{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: total,
		Status:      domain.OrderPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	t.store.orders[order.ID] = order
	out := *order
	return &out, nil
}

func (t *memTx) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	item.ID = uuid.New()
	t.store.orderItems[item.OrderID] = append(t.store.orderItems[item.OrderID], *item)
	return nil
}

func (t *memTx) DecrementStock(ctx context.Context, stickerID uuid.UUID, quantity int32) (bool, error) {
	st, ok := t.store.stickers[stickerID]
	if !ok {
		return false, nil
	}
	if st.Type == domain.StickerTypeDigital {
		return true, nil
	}
	if st.Stock < quantity {
		return false, nil
	}
	st.Stock -= quantity
	return true, nil
}

func (t *memTx) StickerStock(ctx context.Context, stickerID uuid.UUID) (int32, error) {
	st, ok := t.store.stickers[stickerID]
	if !ok {
		return 0, domain.ErrStickerNotFound
	}
	return st.Stock, nil
}

func (t *memTx) DeleteCartItems(ctx context.Context, cartID uuid.UUID) error {
	delete(t.store.cartItems, cartID)
	return nil
}
