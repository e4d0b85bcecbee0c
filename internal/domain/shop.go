package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a vendor storefront. A vendor may own multiple shops; each
// sticker belongs to exactly one shop.
type Shop struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrShopNotFound = &Error{Code: ENOTFOUND, Message: "Shop not found"}
