package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/money"
)

// Cart domain errors.
var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrEmptyCart        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// Cart is a user's mutable pre-checkout collection. One per user,
// created lazily on first access.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItem is a cart line item joined with the referenced sticker's
// current price, stock, and type. Price here is the live catalog price;
// it only becomes a snapshot when the cart converts to an order.
type CartItem struct {
	ID          uuid.UUID   `json:"id"`
	StickerID   uuid.UUID   `json:"stickerId"`
	StickerName string      `json:"stickerName"`
	StickerType string      `json:"stickerType"`
	UnitPrice   money.Cents `json:"unitPrice"`
	Stock       int32       `json:"-"`
	Quantity    int32       `json:"quantity"`
}

// LineTotal is the item's price multiplied by its quantity.
func (i CartItem) LineTotal() money.Cents {
	return i.UnitPrice.Mul(i.Quantity)
}

// CartSummary aggregates a cart with its items and derived totals.
// Totals are always computed, never stored.
type CartSummary struct {
	Cart        Cart        `json:"cart"`
	Items       []CartItem  `json:"items"`
	TotalItems  int32       `json:"totalItems"`
	TotalAmount money.Cents `json:"totalAmount"`
}
