package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem marks a sticker a user wants to come back to.
type WishlistItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	StickerID uuid.UUID `json:"stickerId"`
	Sticker   *Sticker  `json:"sticker,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrWishlistItemNotFound = &Error{Code: ENOTFOUND, Message: "Wishlist item not found"}
