package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating of a sticker. One review per user per sticker.
type Review struct {
	ID        uuid.UUID `json:"id"`
	StickerID uuid.UUID `json:"stickerId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewSummary pairs a sticker's reviews with the derived average rating.
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
}

var (
	ErrReviewNotFound  = &Error{Code: ENOTFOUND, Message: "Review not found"}
	ErrDuplicateReview = &Error{Code: ECONFLICT, Message: "You have already reviewed this sticker"}
)
