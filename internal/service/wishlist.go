package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// WishlistStore is the persistence surface the wishlist service needs.
type WishlistStore interface {
	AddWishlistItem(ctx context.Context, userID, stickerID uuid.UUID) error
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, userID, stickerID uuid.UUID) error
	GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error)
}

// WishlistService provides business logic for saved stickers.
type WishlistService interface {
	// Save adds a sticker to the user's wishlist. Saving twice is a no-op.
	Save(ctx context.Context, userID, stickerID uuid.UUID) error

	// List returns the user's saved stickers, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error)

	// Remove drops a sticker from the user's wishlist.
	Remove(ctx context.Context, userID, stickerID uuid.UUID) error
}

type wishlistService struct {
	store WishlistStore
}

// NewWishlistService creates a new WishlistService instance.
func NewWishlistService(store WishlistStore) WishlistService {
	return &wishlistService{store: store}
}

func (s *wishlistService) Save(ctx context.Context, userID, stickerID uuid.UUID) error {
	if _, err := s.store.GetSticker(ctx, stickerID); err != nil {
		return err
	}
	return s.store.AddWishlistItem(ctx, userID, stickerID)
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error) {
	return s.store.ListWishlist(ctx, userID)
}

func (s *wishlistService) Remove(ctx context.Context, userID, stickerID uuid.UUID) error {
	return s.store.RemoveWishlistItem(ctx, userID, stickerID)
}
