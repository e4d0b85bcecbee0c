package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// ReviewStore is the persistence surface the review service needs.
type ReviewStore interface {
	CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error)
	ListReviewsBySticker(ctx context.Context, stickerID uuid.UUID) (*domain.ReviewSummary, error)
	DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error
	UserHasPaidOrderFor(ctx context.Context, userID, stickerID uuid.UUID) (bool, error)
	GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error)
}

// ReviewService provides business logic for sticker reviews.
type ReviewService interface {
	// CreateReview posts a review. Only verified buyers may review, and
	// each user gets one review per sticker.
	CreateReview(ctx context.Context, userID, stickerID uuid.UUID, rating int32, comment string) (*domain.Review, error)

	// ListReviews returns a sticker's reviews with the average rating.
	ListReviews(ctx context.Context, stickerID uuid.UUID) (*domain.ReviewSummary, error)

	// DeleteReview removes the user's own review.
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}

type reviewService struct {
	store ReviewStore
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(store ReviewStore) ReviewService {
	return &reviewService{store: store}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, stickerID uuid.UUID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Invalid("review.create", "rating must be between 1 and 5")
	}

	if _, err := s.store.GetSticker(ctx, stickerID); err != nil {
		return nil, err
	}

	purchased, err := s.store.UserHasPaidOrderFor(ctx, userID, stickerID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, domain.Forbidden("review.create", "only buyers with a paid order can review")
	}

	return s.store.CreateReview(ctx, &domain.Review{
		StickerID: stickerID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
}

func (s *reviewService) ListReviews(ctx context.Context, stickerID uuid.UUID) (*domain.ReviewSummary, error) {
	if _, err := s.store.GetSticker(ctx, stickerID); err != nil {
		return nil, err
	}
	return s.store.ListReviewsBySticker(ctx, stickerID)
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	return s.store.DeleteReview(ctx, reviewID, userID)
}
