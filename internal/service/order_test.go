package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickervalley/stickervalley/internal/billing"
	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

func newTestOrderService(store *memStore) (OrderService, *billing.SimulatedProvider) {
	provider := billing.NewSimulatedProvider()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrderService(store, provider, nil, logger), provider
}

func TestPlaceOrderTotalsAndSnapshot(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)
	userID := uuid.New()

	vinyl := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	pixel := store.addSticker("Pixel Heart", domain.StickerTypeDigital, money.MustParse("1.00"), 0)
	store.addCartItem(userID, vinyl, 3)
	store.addCartItem(userID, pixel, 2)

	detail, err := svc.PlaceOrder(context.Background(), userID)
	require.NoError(t, err)

	// 2.50 x 3 + 1.00 x 2 = 9.50, exactly.
	assert.Equal(t, money.MustParse("9.50"), detail.Order.TotalAmount)
	assert.Equal(t, domain.OrderPending, detail.Order.Status)
	assert.Equal(t, userID, detail.Order.UserID)
	require.Len(t, detail.Items, 2)

	byName := map[string]domain.OrderItem{}
	for _, it := range detail.Items {
		byName[it.StickerName] = it
	}
	assert.Equal(t, money.MustParse("2.50"), byName["Vinyl Fox"].Price)
	assert.Equal(t, int32(3), byName["Vinyl Fox"].Quantity)
	assert.Equal(t, money.MustParse("1.00"), byName["Pixel Heart"].Price)

	// Physical stock decremented, digital untouched.
	assert.Equal(t, int32(7), store.stock(vinyl))
	assert.Equal(t, int32(0), store.stock(pixel))

	// Cart emptied in the same transaction.
	cart, err := store.GetOrCreateCart(context.Background(), userID)
	require.NoError(t, err)
	items, err := store.ListCartItems(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)

	_, err := svc.PlaceOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestPlaceOrderStockShortageRollsBack(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)
	userID := uuid.New()

	vinyl := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	holo := store.addSticker("Holo Moon", domain.StickerTypePhysical, money.MustParse("4.00"), 2)
	store.addCartItem(userID, vinyl, 3)
	store.addCartItem(userID, holo, 5)

	_, err := svc.PlaceOrder(context.Background(), userID)
	require.Error(t, err)

	shortage, ok := domain.IsStockShortage(err)
	require.True(t, ok)
	assert.Equal(t, holo, shortage.StickerID)
	assert.Equal(t, "Holo Moon", shortage.Name)
	assert.Equal(t, int32(5), shortage.Requested)
	assert.Equal(t, int32(2), shortage.Available)

	// Nothing changed: no partial decrement, cart intact, no orders.
	assert.Equal(t, int32(10), store.stock(vinyl))
	assert.Equal(t, int32(2), store.stock(holo))

	cart, _ := store.GetOrCreateCart(context.Background(), userID)
	items, _ := store.ListCartItems(context.Background(), cart.ID)
	assert.Len(t, items, 2)

	orders, _ := store.ListOrdersByUser(context.Background(), userID)
	assert.Empty(t, orders)
}

func TestPlaceOrderConcurrentNoOversell(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)

	const stock = 5
	const buyers = 12
	sticker := store.addSticker("Limited Run", domain.StickerTypePhysical, money.MustParse("3.00"), stock)

	users := make([]uuid.UUID, buyers)
	for i := range users {
		users[i] = uuid.New()
		store.addCartItem(users[i], sticker, 1)
	}

	var wg sync.WaitGroup
	results := make([]error, buyers)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.PlaceOrder(context.Background(), users[i])
		}(i)
	}
	wg.Wait()

	var succeeded, shortages int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		_, ok := domain.IsStockShortage(err)
		require.True(t, ok, "unexpected error: %v", err)
		shortages++
	}

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, buyers-stock, shortages)
	assert.Equal(t, int32(0), store.stock(sticker))
}

func TestOrderItemPriceImmutable(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)
	userID := uuid.New()

	sticker := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	store.addCartItem(userID, sticker, 1)

	detail, err := svc.PlaceOrder(context.Background(), userID)
	require.NoError(t, err)

	// Vendor reprices the sticker after the order was placed.
	store.mu.Lock()
	store.stickers[sticker].Price = money.MustParse("99.99")
	store.stickers[sticker].Name = "Renamed Fox"
	store.mu.Unlock()

	got, err := svc.GetOrder(context.Background(), userID, detail.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, money.MustParse("2.50"), got.Items[0].Price)
	assert.Equal(t, "Vinyl Fox", got.Items[0].StickerName)
	assert.Equal(t, money.MustParse("2.50"), got.Order.TotalAmount)
}

func TestPayTransitionsAndCharges(t *testing.T) {
	store := newMemStore()
	svc, provider := newTestOrderService(store)
	userID := uuid.New()

	sticker := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	store.addCartItem(userID, sticker, 2)

	detail, err := svc.PlaceOrder(context.Background(), userID)
	require.NoError(t, err)

	order, err := svc.Pay(context.Background(), userID, detail.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, order.Status)
	assert.Equal(t, 1, provider.ChargeCount())

	// Paying again conflicts instead of double charging.
	_, err = svc.Pay(context.Background(), userID, detail.Order.ID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
	assert.Equal(t, 1, provider.ChargeCount())
}

// rendezvousProvider holds every Charge call until two callers have
// arrived, forcing concurrent payments past the status pre-check so
// the guarded transition has to break the tie.
type rendezvousProvider struct {
	inner *billing.SimulatedProvider
	gate  *sync.WaitGroup
}

func (p *rendezvousProvider) Charge(ctx context.Context, params billing.ChargeParams) (*billing.Charge, error) {
	p.gate.Done()
	p.gate.Wait()
	return p.inner.Charge(ctx, params)
}

func (p *rendezvousProvider) Refund(ctx context.Context, chargeID string) error {
	return p.inner.Refund(ctx, chargeID)
}

func TestPayConcurrentRefundsLoser(t *testing.T) {
	store := newMemStore()
	inner := billing.NewSimulatedProvider()
	var gate sync.WaitGroup
	gate.Add(2)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewOrderService(store, &rendezvousProvider{inner: inner, gate: &gate}, nil, logger)
	userID := uuid.New()

	sticker := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	store.addCartItem(userID, sticker, 2)
	detail, err := svc.PlaceOrder(context.Background(), userID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Pay(context.Background(), userID, detail.Order.ID)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
		conflicts++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)

	// The losing charge was refunded, so the order was paid for once.
	assert.Equal(t, 1, inner.ChargeCount())

	order, err := store.GetOrder(context.Background(), detail.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, order.Status)
}

func TestCancelOnlyFromPending(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)
	userID := uuid.New()

	sticker := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	store.addCartItem(userID, sticker, 1)
	detail, err := svc.PlaceOrder(context.Background(), userID)
	require.NoError(t, err)

	order, err := svc.Cancel(context.Background(), userID, detail.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, order.Status)

	// A cancelled order cannot be paid.
	_, err = svc.Pay(context.Background(), userID, detail.Order.ID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)
	userID := uuid.New()

	sticker := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	store.addCartItem(userID, sticker, 1)
	detail, err := svc.PlaceOrder(context.Background(), userID)
	require.NoError(t, err)
	orderID := detail.Order.ID

	// Shipping before payment is rejected.
	_, err = svc.UpdateStatus(context.Background(), orderID, domain.OrderShipped)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	_, err = svc.Pay(context.Background(), userID, orderID)
	require.NoError(t, err)

	order, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, order.Status)

	order, err = svc.UpdateStatus(context.Background(), orderID, domain.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, order.Status)

	// Delivered is terminal.
	_, err = svc.UpdateStatus(context.Background(), orderID, domain.OrderShipped)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	// Unknown statuses are invalid, not conflicts.
	_, err = svc.UpdateStatus(context.Background(), orderID, domain.OrderStatus("REFUNDED"))
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestOrderService(store)
	owner := uuid.New()
	stranger := uuid.New()

	sticker := store.addSticker("Vinyl Fox", domain.StickerTypePhysical, money.MustParse("2.50"), 10)
	store.addCartItem(owner, sticker, 1)
	detail, err := svc.PlaceOrder(context.Background(), owner)
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), stranger, detail.Order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = svc.Pay(context.Background(), stranger, detail.Order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
