package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/money"
)

// Sticker product types. Stock is only meaningful for physical stickers;
// digital stickers never run out.
const (
	StickerTypeDigital  = "DIGITAL"
	StickerTypePhysical = "PHYSICAL"
)

// Sticker is a product listed in a shop.
type Sticker struct {
	ID          uuid.UUID   `json:"id"`
	ShopID      uuid.UUID   `json:"shopId"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       money.Cents `json:"price"`
	Stock       int32       `json:"stock"`
	Type        string      `json:"type"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// IsPhysical reports whether stock accounting applies to this sticker.
func (s *Sticker) IsPhysical() bool {
	return s.Type == StickerTypePhysical
}

// ValidStickerType reports whether t is a known sticker type.
func ValidStickerType(t string) bool {
	return t == StickerTypeDigital || t == StickerTypePhysical
}

// StickerFilter narrows catalog listings.
type StickerFilter struct {
	ShopID   uuid.UUID
	Type     string
	MinPrice *money.Cents
	MaxPrice *money.Cents
	Search   string
	Limit    int32
	Offset   int32
}

var ErrStickerNotFound = &Error{Code: ENOTFOUND, Message: "Sticker not found"}
