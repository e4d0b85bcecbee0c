package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/service"
)

// WishlistHandler serves the authenticated user's saved stickers.
type WishlistHandler struct {
	wishlist service.WishlistService
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlist service.WishlistService, logger *slog.Logger) *WishlistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

type saveWishlistRequest struct {
	StickerID uuid.UUID `json:"sticker_id" validate:"required"`
}

// Save handles POST /api/v1/wishlist.
func (h *WishlistHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req saveWishlistRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.wishlist.Save(r.Context(), user.ID, req.StickerID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	items, err := h.wishlist.List(r.Context(), user.ID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Remove handles DELETE /api/v1/wishlist/{stickerID}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.wishlist.Remove(r.Context(), user.ID, stickerID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
