package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// CreateReview inserts a review. One review per (sticker, user) is
// enforced by the unique constraint.
func (s *Store) CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO reviews (sticker_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sticker_id, user_id, rating, comment, created_at`,
		r.StickerID, r.UserID, r.Rating, r.Comment)

	var out domain.Review
	err := row.Scan(&out.ID, &out.StickerID, &out.UserID, &out.Rating, &out.Comment, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, domain.Internal(err, "review.create", "failed to create review")
	}
	return &out, nil
}

// ListReviewsBySticker returns a sticker's reviews, newest first, along
// with the average rating across all of them.
func (s *Store) ListReviewsBySticker(ctx context.Context, stickerID uuid.UUID) (*domain.ReviewSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sticker_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE sticker_id = $1
		ORDER BY created_at DESC`,
		stickerID)
	if err != nil {
		return nil, domain.Internal(err, "review.list", "failed to list reviews")
	}
	defer rows.Close()

	summary := &domain.ReviewSummary{}
	var total int64
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.StickerID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, domain.Internal(err, "review.list", "failed to scan review")
		}
		summary.Reviews = append(summary.Reviews, r)
		total += int64(r.Rating)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "review.list", "failed to read reviews")
	}

	if n := len(summary.Reviews); n > 0 {
		summary.AverageRating = float64(total) / float64(n)
	}
	return summary, nil
}

// DeleteReview removes a user's own review.
func (s *Store) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM reviews
		WHERE id = $1 AND user_id = $2`,
		reviewID, userID)
	if err != nil {
		return domain.Internal(err, "review.delete", "failed to delete review")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// UserHasPaidOrderFor reports whether the user has ever bought the
// sticker in an order that reached PAID or beyond.
func (s *Store) UserHasPaidOrderFor(ctx context.Context, userID, stickerID uuid.UUID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.user_id = $1
			  AND oi.sticker_id = $2
			  AND o.status IN ('PAID', 'SHIPPED', 'DELIVERED')
		)`,
		userID, stickerID).Scan(&exists)
	if err != nil {
		return false, domain.Internal(err, "review.check_purchase", "failed to check purchase history")
	}
	return exists, nil
}
