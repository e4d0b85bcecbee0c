package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/service"
)

// CartHandler serves the authenticated user's shopping cart.
type CartHandler struct {
	carts  service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{carts: carts, logger: logger}
}

type addCartItemRequest struct {
	StickerID uuid.UUID `json:"sticker_id" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity" validate:"gte=0"`
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	summary, err := h.carts.GetCart(r.Context(), user.ID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req addCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	summary, err := h.carts.AddItem(r.Context(), user.ID, req.StickerID, req.Quantity)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// UpdateItem handles PUT /api/v1/cart/items/{stickerID}.
// A quantity of zero removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	var req updateCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	summary, err := h.carts.UpdateItemQuantity(r.Context(), user.ID, stickerID, req.Quantity)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /api/v1/cart/items/{stickerID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.carts.RemoveItem(r.Context(), user.ID, stickerID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.carts.ClearCart(r.Context(), user.ID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
