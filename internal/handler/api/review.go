package api

import (
	"log/slog"
	"net/http"

	"github.com/stickervalley/stickervalley/internal/service"
)

// ReviewHandler serves sticker reviews.
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{reviews: reviews, logger: logger}
}

type createReviewRequest struct {
	Rating  int32  `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// Create handles POST /api/v1/stickers/{stickerID}/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	stickerID, err := PathUUID(r, "stickerID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req createReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), user.ID, stickerID, req.Rating, req.Comment)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, review)
}

// List handles GET /api/v1/stickers/{stickerID}/reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	stickerID, err := PathUUID(r, "stickerID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	summary, err := h.reviews.ListReviews(r.Context(), stickerID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// Delete handles DELETE /api/v1/reviews/{reviewID}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	reviewID, err := PathUUID(r, "reviewID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), user.ID, reviewID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
