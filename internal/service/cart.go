package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// CartStore is the persistence surface the cart service needs.
type CartStore interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	ListCartItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
	UpsertCartItem(ctx context.Context, cartID, stickerID uuid.UUID, quantity int32) error
	SetCartItemQuantity(ctx context.Context, cartID, stickerID uuid.UUID, quantity int32) error
	RemoveCartItem(ctx context.Context, cartID, stickerID uuid.UUID) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
	GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error)
}

// CartService provides business logic for shopping cart operations.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*domain.CartSummary, error)
	AddItem(ctx context.Context, userID, stickerID uuid.UUID, quantity int32) (*domain.CartSummary, error)
	UpdateItemQuantity(ctx context.Context, userID, stickerID uuid.UUID, quantity int32) (*domain.CartSummary, error)
	RemoveItem(ctx context.Context, userID, stickerID uuid.UUID) (*domain.CartSummary, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	store CartStore
}

// NewCartService creates a new CartService instance.
func NewCartService(store CartStore) CartService {
	return &cartService{store: store}
}

// Summarize folds a cart's line items into a summary view. Totals are
// computed in integer cents, so an empty slice yields exact zeros and
// no rounding ever occurs.
func Summarize(cart domain.Cart, items []domain.CartItem) *domain.CartSummary {
	summary := &domain.CartSummary{
		Cart:  cart,
		Items: items,
	}
	for _, it := range items {
		summary.TotalItems += it.Quantity
		summary.TotalAmount += it.LineTotal()
	}
	return summary
}

// GetCart returns the user's cart summary, creating the cart lazily on
// first access.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.CartSummary, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, cart)
}

// AddItem puts quantity units of a sticker in the cart. Adding a
// sticker that is already carted increments the existing line.
func (s *cartService) AddItem(ctx context.Context, userID, stickerID uuid.UUID, quantity int32) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// Reject unknown stickers up front rather than surfacing a
	// foreign key violation.
	if _, err := s.store.GetSticker(ctx, stickerID); err != nil {
		return nil, err
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertCartItem(ctx, cart.ID, stickerID, quantity); err != nil {
		return nil, err
	}
	return s.summary(ctx, cart)
}

// UpdateItemQuantity replaces a line item's quantity. Zero removes the
// line entirely.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, stickerID uuid.UUID, quantity int32) (*domain.CartSummary, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		err = s.store.RemoveCartItem(ctx, cart.ID, stickerID)
	} else {
		err = s.store.SetCartItemQuantity(ctx, cart.ID, stickerID, quantity)
	}
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, cart)
}

// RemoveItem deletes a line item from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, stickerID uuid.UUID) (*domain.CartSummary, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.RemoveCartItem(ctx, cart.ID, stickerID); err != nil {
		return nil, err
	}
	return s.summary(ctx, cart)
}

// ClearCart empties the cart without placing an order.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.store.ClearCart(ctx, cart.ID)
}

func (s *cartService) summary(ctx context.Context, cart *domain.Cart) (*domain.CartSummary, error) {
	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return Summarize(*cart, items), nil
}
